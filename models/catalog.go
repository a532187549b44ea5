package models

import "time"

// RestaurantStatus represents whether a restaurant is taking orders
type RestaurantStatus string

const (
	RestaurantOpen   RestaurantStatus = "open"
	RestaurantClosed RestaurantStatus = "closed"
	RestaurantBusy   RestaurantStatus = "busy"
)

type Restaurant struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"not null"`
	Description   string           `json:"description"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone"`
	CuisineType   string           `json:"cuisine_type"`
	BusinessHours string           `json:"business_hours"`
	DeliveryFee   float64          `json:"delivery_fee" gorm:"default:0"`
	MinOrder      float64          `json:"min_order" gorm:"default:0"`
	Rating        float64          `json:"rating" gorm:"default:5"`
	ReviewCount   int              `json:"review_count" gorm:"default:0"`
	Status        RestaurantStatus `json:"status" gorm:"not null;default:'open'"`
	Dishes        []Dish           `json:"dishes,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Category groups dishes across restaurants (e.g. noodles, desserts)
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

type Dish struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	RestaurantID  uint       `json:"restaurant_id" gorm:"not null;index"`
	Restaurant    Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	CategoryID    *uint      `json:"category_id"`
	Category      *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name          string     `json:"name" gorm:"not null"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" gorm:"not null"`
	Ingredients   string     `json:"ingredients"`
	SalesCount    int        `json:"sales_count" gorm:"default:0"`
	Rating        float64    `json:"rating" gorm:"default:5"`
	IsRecommended bool       `json:"is_recommended" gorm:"default:false"`
	IsSpicy       bool       `json:"is_spicy" gorm:"default:false"`
	Available     bool       `json:"available" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
