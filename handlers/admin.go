package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/events"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/orders"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders with filters and a revenue
// summary for the dashboard.
func AdminGetAllOrders(c *gin.Context) {
	query := config.DB.Preload("Items.Dish").Preload("User").Preload("Restaurant")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var result []models.Order
	if err := query.Order("created_at desc").Find(&result).Error; err != nil {
		respondError(c, err)
		return
	}

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range result {
		summary[string(o.Status)]++
		if o.Status == models.StatusCompleted && o.PaymentStatus == models.PaymentPaid {
			totalRevenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(result),
		"orders":        result,
	})
}

type AdminUpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus moves an order forward through the lifecycle.
// Backward transitions are rejected; cancellation follows the same
// side-branch rules as for users.
func AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req AdminUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orders.SetStatus(config.DB, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	events.PublishOrder(c.Request.Context(), events.TypeStatusChanged, order)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.ID,
		"current_status": order.Status,
	})
}

type AdminUpdatePaymentRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required"`
}

// AdminUpdatePaymentStatus moves payment forward: unpaid → paid → refunded
func AdminUpdatePaymentStatus(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req AdminUpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orders.SetPaymentStatus(config.DB, id, req.PaymentStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	events.PublishOrder(c.Request.Context(), events.TypePaymentChanged, order)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment status updated",
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}

// AdminDeleteOrder removes an order in any status, cascading to items
func AdminDeleteOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := orders.AdminDelete(config.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order " + order.OrderNo + " deleted",
		"order_id": order.ID,
	})
}

// AdminGetAllUsers returns all users, optionally filtered by role
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminToggleUserRole flips a user between user and admin. Admins may
// not change their own role.
func AdminToggleUserRole(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.ID == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own role"})
		return
	}

	newRole := models.RoleAdmin
	if user.Role == models.RoleAdmin {
		newRole = models.RoleUser
	}
	config.DB.Model(&user).Update("role", newRole)
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user_id": user.ID, "role": newRole})
}

// AdminDeleteUser removes a user account. Self-deletion is refused.
func AdminDeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.ID == middleware.GetUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}
	config.DB.Delete(&user)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted", "user_id": user.ID})
}
