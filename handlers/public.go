package handlers

import (
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/reviews"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns open restaurants with simple filters:
// keyword (matches restaurant or dish name), category and sort order.
func ListRestaurants(c *gin.Context) {
	query := config.DB.Model(&models.Restaurant{}).Where("status = ?", models.RestaurantOpen)

	if keyword := c.Query("keyword"); keyword != "" {
		dishRestaurants := config.DB.Model(&models.Dish{}).
			Select("restaurant_id").
			Where("name LIKE ? AND available = ?", "%"+keyword+"%", true)
		query = query.Where("name LIKE ? OR id IN (?)", "%"+keyword+"%", dishRestaurants)
	}
	if categoryID := c.Query("category"); categoryID != "" {
		inCategory := config.DB.Model(&models.Dish{}).
			Select("restaurant_id").
			Where("category_id = ? AND available = ?", categoryID, true)
		query = query.Where("id IN (?)", inCategory)
	}

	switch c.Query("sort") {
	case "sales":
		query = query.Order("review_count desc")
	case "newest":
		query = query.Order("created_at desc")
	default:
		query = query.Order("rating desc")
	}

	var restaurants []models.Restaurant
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurant returns one restaurant with its recommended dishes and
// newest reviews
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var recommended []models.Dish
	config.DB.Where("restaurant_id = ? AND is_recommended = ? AND available = ?",
		restaurant.ID, true, true).
		Order("sales_count desc").Limit(6).Find(&recommended)

	recent, err := reviews.Recent(config.DB, restaurant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":  restaurant,
		"recommended": recommended,
		"reviews":     recent,
	})
}

// GetMenu returns a restaurant's available dishes, optionally filtered
// by category, best sellers first.
func GetMenu(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	query := config.DB.Preload("Category").
		Where("restaurant_id = ? AND available = ?", restaurant.ID, true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var dishes []models.Dish
	query.Order("sales_count desc").Find(&dishes)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(dishes),
		"menu":       dishes,
	})
}

// ListCategories returns all dish categories in display order
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Order("sort_order, id").Find(&categories)
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// GetStateMachineInfo returns the order lifecycle for documentation
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"payment_states":  []string{"unpaid", "paid", "refunded"},
		"terminal_states": []string{"completed", "cancelled"},
		"description":     "Order lifecycle state machine",
	})
}
