// Package reviews implements restaurant reviews and keeps the
// restaurant's rating aggregate in step with them.
package reviews

import (
	"errors"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

var (
	ErrBadRating          = errors.New("rating must be between 1 and 5")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotReviewable = errors.New("only your own completed orders for this restaurant can be reviewed")
)

const recentLimit = 10

// Input carries one new review
type Input struct {
	Rating  int
	Content string
	Images  string
	OrderID *uint
}

// Create stores a review and folds its rating into the restaurant's
// running average and review count, all in one transaction. A linked
// order must be the reviewer's own completed order at this restaurant.
func Create(db *gorm.DB, userID, restaurantID uint, in Input) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrBadRating
	}

	var review models.Review
	err := db.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRestaurantNotFound
			}
			return err
		}

		if in.OrderID != nil {
			var order models.Order
			if err := tx.First(&order, *in.OrderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderNotFound
				}
				return err
			}
			if order.UserID != userID || order.RestaurantID != restaurantID ||
				order.Status != models.StatusCompleted {
				return ErrOrderNotReviewable
			}
		}

		review = models.Review{
			UserID:       userID,
			RestaurantID: restaurantID,
			OrderID:      in.OrderID,
			Rating:       in.Rating,
			Content:      in.Content,
			Images:       in.Images,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// Running average over recorded reviews only; the seeded default
		// rating carries no weight once real reviews exist
		newCount := restaurant.ReviewCount + 1
		newRating := (restaurant.Rating*float64(restaurant.ReviewCount) + float64(in.Rating)) /
			float64(newCount)
		return tx.Model(&restaurant).Updates(map[string]interface{}{
			"rating":       newRating,
			"review_count": newCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Recent returns the restaurant's newest reviews with their authors
func Recent(db *gorm.DB, restaurantID uint) ([]models.Review, error) {
	var list []models.Review
	err := db.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc, id desc").Limit(recentLimit).Find(&list).Error
	return list, err
}
