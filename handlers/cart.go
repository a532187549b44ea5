package handlers

import (
	"net/http"

	"food-ordering-api/cache"
	"food-ordering-api/cart"
	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/orders"

	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	DishID   uint `json:"dish_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart puts a dish into the caller's cart
func AddToCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := cart.Add(config.DB, userID, req.DishID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	cache.InvalidateCartCount(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Added to cart",
		"cart_count": count,
	})
}

type UpdateCartRequest struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// UpdateCartItem sets a cart item's quantity and returns the live line
// subtotal at the dish's current price.
func UpdateCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtotal, err := cart.SetQuantity(config.DB, userID, req.CartItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "subtotal": subtotal})
}

type RemoveFromCartRequest struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
}

// RemoveFromCart deletes one cart item
func RemoveFromCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cart.Remove(config.DB, userID, req.CartItemID); err != nil {
		respondError(c, err)
		return
	}
	cache.InvalidateCartCount(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from cart"})
}

// ClearCart empties the caller's cart; idempotent
func ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := cart.Clear(config.DB, userID); err != nil {
		respondError(c, err)
		return
	}
	cache.InvalidateCartCount(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

// ViewCart returns the cart grouped by restaurant with per-restaurant
// subtotals and the grand total including delivery fees.
func ViewCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	vm, err := cart.View(config.DB, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": vm})
}

// CartCount returns the number of items in the caller's cart, served
// from the redis cache when possible.
func CartCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	if count, ok := cache.GetCartCount(ctx, userID); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "cached": true})
		return
	}

	count, err := cart.Count(config.DB, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	cache.SetCartCount(ctx, userID, count)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

type CheckoutRequest struct {
	AddressID uint   `json:"address_id" binding:"required"`
	Remark    string `json:"remark"`
}

// Checkout converts the caller's entire cart into one order per
// restaurant, all-or-nothing. The delivery address is snapshotted onto
// each order.
func Checkout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	created, err := orders.Checkout(config.DB, userID, orders.AddressSnapshot{
		Name:    address.Name,
		Phone:   address.Phone,
		Address: address.Address,
	}, req.Remark)
	if err != nil {
		respondError(c, err)
		return
	}
	cache.InvalidateCartCount(c.Request.Context(), userID)

	summaries := make([]gin.H, 0, len(created))
	for i := range created {
		events.PublishOrder(c.Request.Context(), events.TypeOrderCreated, &created[i])
		summaries = append(summaries, gin.H{
			"id":           created[i].ID,
			"order_no":     created[i].OrderNo,
			"total_amount": created[i].TotalAmount,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Orders placed successfully",
		"order_count": len(created),
		"orders":      summaries,
	})
}
