package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

type AddressRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// ListAddresses returns the caller's address book
func ListAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var addresses []models.Address
	config.DB.Where("user_id = ?", userID).Order("is_default desc, id").Find(&addresses)
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

// AddAddress creates a new delivery address. Marking it default clears
// the previous default.
func AddAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.IsDefault {
		config.DB.Model(&models.Address{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false)
	}

	address := models.Address{
		UserID:    userID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		IsDefault: req.IsDefault,
	}
	if err := config.DB.Create(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "address": address})
}

// UpdateAddress edits one of the caller's addresses
func UpdateAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.IsDefault && !address.IsDefault {
		config.DB.Model(&models.Address{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false)
	}

	config.DB.Model(&address).Updates(map[string]interface{}{
		"name":       req.Name,
		"phone":      req.Phone,
		"address":    req.Address,
		"is_default": req.IsDefault,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": address})
}

// DeleteAddress removes one of the caller's addresses
func DeleteAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	res := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Address{})
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// SetDefaultAddress marks one address as the default
func SetDefaultAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	config.DB.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false)
	config.DB.Model(&address).Update("is_default", true)

	c.JSON(http.StatusOK, gin.H{"message": "Default address set", "address": address})
}
