package orders

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrDishNotFound       = errors.New("a dish in the cart no longer exists")
	ErrRestaurantNotFound = errors.New("a restaurant in the cart no longer exists")
	ErrCartChanged        = errors.New("cart changed during checkout")
	ErrOrderNoConflict    = errors.New("could not generate a unique order number")
	ErrOrderNotFound      = errors.New("order not found")
	ErrItemNotFound       = errors.New("order item not found")
	ErrForbidden          = errors.New("order does not belong to you")
	ErrInvalidState       = errors.New("operation not allowed in the order's current state")
	ErrBadQuantity        = errors.New("quantity must be at least 1")
	ErrBadStatus          = errors.New("unknown order status")
)
