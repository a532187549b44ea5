package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is an axis orthogonal to OrderStatus
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is a per-restaurant commitment to purchase. Everything except
// status, payment status and the two lifecycle timestamps is immutable
// after creation; the delivery fields are a snapshot of the address used
// at checkout.
type Order struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	OrderNo         string        `json:"order_no" gorm:"uniqueIndex;size:32;not null"`
	UserID          uint          `json:"user_id" gorm:"not null;index"`
	User            User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID    uint          `json:"restaurant_id" gorm:"not null;index"`
	Restaurant      Restaurant    `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DeliveryName    string        `json:"delivery_name" gorm:"not null"`
	DeliveryPhone   string        `json:"delivery_phone" gorm:"not null"`
	DeliveryAddress string        `json:"delivery_address" gorm:"not null"`
	Subtotal        float64       `json:"subtotal" gorm:"not null"`
	DeliveryFee     float64       `json:"delivery_fee" gorm:"default:0"`
	TotalAmount     float64       `json:"total_amount" gorm:"not null"`
	Status          OrderStatus   `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"not null;default:'unpaid'"`
	Remark          string        `json:"remark"`
	Items           []OrderItem   `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time     `json:"created_at"`
	ConfirmedAt     *time.Time    `json:"confirmed_at"`
	DeliveredAt     *time.Time    `json:"delivered_at"`
}

// OrderItem freezes the dish price at order-creation time. Price and
// Subtotal must never change when the catalog price does.
type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null;index"`
	DishID   uint    `json:"dish_id" gorm:"not null"`
	Dish     Dish    `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"not null"`
	Subtotal float64 `json:"subtotal" gorm:"not null"`
}
