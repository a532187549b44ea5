package handlers

import (
	"net/http"
	"strconv"

	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/orders"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

func actorFrom(c *gin.Context) orders.Actor {
	return orders.Actor{UserID: middleware.GetUserID(c), Role: middleware.GetRole(c)}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// ListOrders returns the caller's orders, newest first. Admins see all
// orders.
func ListOrders(c *gin.Context) {
	query := config.DB.Preload("Items.Dish").Preload("Restaurant")
	if !middleware.IsAdmin(c) {
		query = query.Where("user_id = ?", middleware.GetUserID(c))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var result []models.Order
	if err := query.Order("created_at desc").Find(&result).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(result), "orders": result})
}

// GetOrder returns a single order with its items
func GetOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := orders.Get(config.DB, actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels an order while it is still pending or preparing
func CancelOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := orders.Cancel(config.DB, actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	events.PublishOrder(c.Request.Context(), events.TypeStatusChanged, order)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order cancelled successfully",
		"order_id": order.ID,
		"status":   order.Status,
	})
}

type UpdateOrderItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateOrderItem changes an order item's quantity before the order is
// confirmed. The frozen unit price never changes; totals are recomputed
// from it.
func UpdateOrderItem(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order item id"})
		return
	}

	var req UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orders.UpdateItemQuantity(config.DB, actorFrom(c), id, uint(itemID), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": order})
}

// DeleteOrder removes a pending order and its items
func DeleteOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	if err := orders.Delete(config.DB, actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// OrderQRCode renders the order number as a QR code PNG for pickup
func OrderQRCode(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := orders.Get(config.DB, actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	png, err := qrcode.Encode(order.OrderNo, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
