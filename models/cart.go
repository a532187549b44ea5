package models

import "time"

// CartItem maps a user to a desired dish quantity. It holds a weak
// reference to the dish: price is re-read at checkout, never stored here.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_dish"`
	DishID    uint      `json:"dish_id" gorm:"not null;uniqueIndex:idx_cart_user_dish"`
	Dish      Dish      `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
}
