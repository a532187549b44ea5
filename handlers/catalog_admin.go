package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant management ───────────────────────────────────────────

type RestaurantRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	CuisineType   string  `json:"cuisine_type"`
	BusinessHours string  `json:"business_hours"`
	DeliveryFee   float64 `json:"delivery_fee" binding:"gte=0"`
	MinOrder      float64 `json:"min_order" binding:"gte=0"`
}

// AdminCreateRestaurant adds a restaurant to the catalog
func AdminCreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant := models.Restaurant{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Phone:         req.Phone,
		CuisineType:   req.CuisineType,
		BusinessHours: req.BusinessHours,
		DeliveryFee:   req.DeliveryFee,
		MinOrder:      req.MinOrder,
		Status:        models.RestaurantOpen,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// AdminUpdateRestaurant edits restaurant details or status
func AdminUpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{
		"name": true, "description": true, "address": true, "phone": true,
		"cuisine_type": true, "business_hours": true, "delivery_fee": true,
		"min_order": true, "status": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&restaurant).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// AdminDeleteRestaurant removes a restaurant, refused while dishes
// still reference it.
func AdminDeleteRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var dishCount int64
	config.DB.Model(&models.Dish{}).Where("restaurant_id = ?", restaurant.ID).Count(&dishCount)
	if dishCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete: restaurant still has dishes"})
		return
	}

	config.DB.Delete(&restaurant)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

// ── Dish management ─────────────────────────────────────────────────

type DishRequest struct {
	RestaurantID  uint    `json:"restaurant_id" binding:"required"`
	CategoryID    *uint   `json:"category_id"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Ingredients   string  `json:"ingredients"`
	IsRecommended bool    `json:"is_recommended"`
	IsSpicy       bool    `json:"is_spicy"`
	Available     *bool   `json:"available"`
}

// AdminCreateDish adds a dish to a restaurant's menu
func AdminCreateDish(c *gin.Context) {
	var req DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	dish := models.Dish{
		RestaurantID:  req.RestaurantID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Ingredients:   req.Ingredients,
		IsRecommended: req.IsRecommended,
		IsSpicy:       req.IsSpicy,
		Available:     available,
	}
	if err := config.DB.Create(&dish).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish created", "dish": dish})
}

// AdminUpdateDish edits a dish. Changing the price here never touches
// existing orders: their item prices were frozen at checkout.
func AdminUpdateDish(c *gin.Context) {
	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "ingredients": true,
		"category_id": true, "is_recommended": true, "is_spicy": true, "available": true,
		"rating": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	config.DB.Model(&dish).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

// AdminDeleteDish removes a dish from the catalog. Historical order
// items keep their frozen copies and are unaffected.
func AdminDeleteDish(c *gin.Context) {
	var dish models.Dish
	if err := config.DB.First(&dish, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
		return
	}
	config.DB.Delete(&dish)
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}

// ── Category management ─────────────────────────────────────────────

type CategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// AdminCreateCategory adds a dish category
func AdminCreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Category
	if result := config.DB.Where("name = ?", req.Name).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	category := models.Category{Name: req.Name, SortOrder: req.SortOrder}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// AdminUpdateCategory edits a category's name or display order
func AdminUpdateCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Model(&category).Updates(map[string]interface{}{
		"name":       req.Name,
		"sort_order": req.SortOrder,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// AdminDeleteCategory removes a category, refused while dishes still
// reference it.
func AdminDeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var dishCount int64
	config.DB.Model(&models.Dish{}).Where("category_id = ?", category.ID).Count(&dishCount)
	if dishCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete: category still has dishes"})
		return
	}

	config.DB.Delete(&category)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
