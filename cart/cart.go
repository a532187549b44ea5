// Package cart implements the per-user shopping cart: a mapping of dish
// to desired quantity, plus the grouped-by-restaurant view model. Prices
// shown here are always live; freezing only happens at checkout.
package cart

import (
	"errors"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

var (
	ErrDishNotFound    = errors.New("dish not found")
	ErrDishUnavailable = errors.New("dish is not available for ordering")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
)

// Add puts quantity units of a dish into the user's cart. If the dish is
// already in the cart the quantity is added, not replaced. Returns the
// new cart item count.
func Add(db *gorm.DB, userID, dishID uint, quantity int) (int64, error) {
	if quantity < 1 {
		return 0, ErrBadQuantity
	}

	var dish models.Dish
	if err := db.First(&dish, dishID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrDishNotFound
		}
		return 0, err
	}
	if !dish.Available {
		return 0, ErrDishUnavailable
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND dish_id = ?", userID, dishID).First(&item).Error
	switch {
	case err == nil:
		if err := db.Model(&item).
			Update("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
			return 0, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, DishID: dishID, Quantity: quantity}
		if err := db.Create(&item).Error; err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	return Count(db, userID)
}

// SetQuantity replaces the quantity of one cart item and returns the
// recomputed line subtotal at the dish's current price. A cart entry
// whose dish has left the catalog is ErrDishNotFound, same as checkout.
func SetQuantity(db *gorm.DB, userID, itemID uint, quantity int) (float64, error) {
	if quantity < 1 {
		return 0, ErrBadQuantity
	}

	var item models.CartItem
	err := db.Preload("Dish").
		Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrItemNotFound
		}
		return 0, err
	}
	if item.Dish.ID == 0 {
		return 0, ErrDishNotFound
	}

	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return 0, err
	}

	return item.Dish.Price * float64(quantity), nil
}

// Remove deletes one cart item owned by the user
func Remove(db *gorm.DB, userID, itemID uint) error {
	res := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear empties the user's cart. Clearing an already-empty cart is not
// an error.
func Clear(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// Count returns the number of cart rows for the user
func Count(db *gorm.DB, userID uint) (int64, error) {
	var n int64
	err := db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// Line is one cart entry with its live line total
type Line struct {
	Item      models.CartItem `json:"item"`
	LineTotal float64         `json:"line_total"`
}

// RestaurantGroup holds one restaurant's slice of the cart
type RestaurantGroup struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Items      []Line            `json:"items"`
	Subtotal   float64           `json:"subtotal"`
}

// ViewModel is the grouped cart projection: one group per restaurant,
// plus the aggregate totals across all of them.
type ViewModel struct {
	Groups           []RestaurantGroup `json:"groups"`
	ItemsSubtotal    float64           `json:"items_subtotal"`
	DeliveryFeeTotal float64           `json:"delivery_fee_total"`
	GrandTotal       float64           `json:"grand_total"`
}

// View recomputes the grouped cart projection from current catalog
// state. It never mutates storage; cart contents can change between this
// call and checkout. Entries whose dish has been deleted are dropped
// from the view (checkout fails fast on them instead).
func View(db *gorm.DB, userID uint) (*ViewModel, error) {
	var items []models.CartItem
	err := db.Preload("Dish").Preload("Dish.Restaurant").
		Where("user_id = ?", userID).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}

	vm := &ViewModel{}
	index := map[uint]int{}
	for _, item := range items {
		if item.Dish.ID == 0 {
			continue
		}
		rid := item.Dish.RestaurantID
		pos, ok := index[rid]
		if !ok {
			pos = len(vm.Groups)
			index[rid] = pos
			vm.Groups = append(vm.Groups, RestaurantGroup{Restaurant: item.Dish.Restaurant})
			vm.DeliveryFeeTotal += item.Dish.Restaurant.DeliveryFee
		}
		lineTotal := item.Dish.Price * float64(item.Quantity)
		vm.Groups[pos].Items = append(vm.Groups[pos].Items, Line{Item: item, LineTotal: lineTotal})
		vm.Groups[pos].Subtotal += lineTotal
		vm.ItemsSubtotal += lineTotal
	}
	vm.GrandTotal = vm.ItemsSubtotal + vm.DeliveryFeeTotal
	return vm, nil
}
