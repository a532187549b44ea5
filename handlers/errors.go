package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/cart"
	"food-ordering-api/orders"
	"food-ordering-api/reviews"

	"github.com/gin-gonic/gin"
)

// respondError translates domain sentinel errors into HTTP responses.
// Nothing here is fatal to the process; unknown errors become a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrDishNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, orders.ErrDishNotFound),
		errors.Is(err, orders.ErrRestaurantNotFound),
		errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, orders.ErrItemNotFound),
		errors.Is(err, reviews.ErrRestaurantNotFound),
		errors.Is(err, reviews.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrDishUnavailable),
		errors.Is(err, cart.ErrBadQuantity),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrBadQuantity),
		errors.Is(err, orders.ErrBadStatus),
		errors.Is(err, reviews.ErrBadRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrInvalidState),
		errors.Is(err, reviews.ErrOrderNotReviewable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrCartChanged),
		errors.Is(err, orders.ErrOrderNoConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
