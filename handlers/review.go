package handlers

import (
	"net/http"
	"strconv"

	"food-ordering-api/config"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/reviews"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content"`
	Images  string `json:"images"`
	OrderID *uint  `json:"order_id"`
}

// CreateReview records the caller's review of a restaurant and refreshes
// the restaurant's rating aggregate
func CreateReview(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant id"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := reviews.Create(config.DB, middleware.GetUserID(c), uint(id), reviews.Input{
		Rating:  req.Rating,
		Content: req.Content,
		Images:  req.Images,
		OrderID: req.OrderID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted", "review": review})
}

// ListReviews returns a restaurant's newest reviews with its current
// rating aggregate
func ListReviews(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	list, err := reviews.Recent(config.DB, restaurant.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant":   restaurant.Name,
		"rating":       restaurant.Rating,
		"review_count": restaurant.ReviewCount,
		"count":        len(list),
		"reviews":      list,
	})
}
