package models

import "time"

// Review is a customer's rating of a restaurant, optionally tied to one
// of their completed orders. Restaurant.Rating and Restaurant.ReviewCount
// are maintained from these rows.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	OrderID      *uint     `json:"order_id"`
	Rating       int       `json:"rating" gorm:"not null"`
	Content      string    `json:"content"`
	Images       string    `json:"images"` // JSON array of image URLs
	CreatedAt    time.Time `json:"created_at"`
}
