// Package orders owns the cart-to-order transition and the order
// lifecycle. Checkout converts the whole cart into one order per
// restaurant inside a single transaction; lifecycle operations enforce
// the status state machine after creation.
package orders

import (
	"errors"
	"strings"
	"time"

	"food-ordering-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressSnapshot is the delivery target copied verbatim onto every
// order created by a checkout.
type AddressSnapshot struct {
	Name    string
	Phone   string
	Address string
}

const orderNoAttempts = 3

// Checkout atomically converts the user's entire cart into one order per
// restaurant. Dish prices are read inside the transaction and frozen
// onto the order items; each dish's sales count is incremented by the
// ordered quantity. On any failure nothing is committed: no orders, no
// sales-count changes, cart untouched.
func Checkout(db *gorm.DB, userID uint, addr AddressSnapshot, remark string) ([]models.Order, error) {
	var created []models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		// Snapshot the cart. This read is the pricing source of truth
		// for the whole checkout.
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Resolve dishes and restaurants, failing fast on dangling
		// references rather than silently skipping entries.
		dishes := map[uint]models.Dish{}
		restaurants := map[uint]models.Restaurant{}
		grouped := map[uint][]models.CartItem{}
		var restaurantIDs []uint
		for _, item := range items {
			dish, ok := dishes[item.DishID]
			if !ok {
				if err := tx.First(&dish, item.DishID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrDishNotFound
					}
					return err
				}
				dishes[item.DishID] = dish
			}
			if _, ok := restaurants[dish.RestaurantID]; !ok {
				var restaurant models.Restaurant
				if err := tx.First(&restaurant, dish.RestaurantID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrRestaurantNotFound
					}
					return err
				}
				restaurants[dish.RestaurantID] = restaurant
				restaurantIDs = append(restaurantIDs, dish.RestaurantID)
			}
			grouped[dish.RestaurantID] = append(grouped[dish.RestaurantID], item)
		}

		// One order per restaurant, with frozen item prices
		for _, rid := range restaurantIDs {
			restaurant := restaurants[rid]
			group := grouped[rid]

			var subtotal float64
			orderItems := make([]models.OrderItem, 0, len(group))
			for _, item := range group {
				dish := dishes[item.DishID]
				lineTotal := dish.Price * float64(item.Quantity)
				subtotal += lineTotal
				orderItems = append(orderItems, models.OrderItem{
					DishID:   dish.ID,
					Quantity: item.Quantity,
					Price:    dish.Price,
					Subtotal: lineTotal,
				})
			}

			order := models.Order{
				UserID:          userID,
				RestaurantID:    rid,
				DeliveryName:    addr.Name,
				DeliveryPhone:   addr.Phone,
				DeliveryAddress: addr.Address,
				Subtotal:        subtotal,
				DeliveryFee:     restaurant.DeliveryFee,
				TotalAmount:     subtotal + restaurant.DeliveryFee,
				Status:          models.StatusPending,
				PaymentStatus:   models.PaymentUnpaid,
				Remark:          remark,
				Items:           orderItems,
			}
			if err := createWithOrderNo(tx, &order); err != nil {
				return err
			}

			// Sales counts are monotonic: incremented here, never
			// decremented on later edit or cancellation.
			for _, item := range group {
				err := tx.Model(&models.Dish{}).Where("id = ?", item.DishID).
					Update("sales_count", gorm.Expr("sales_count + ?", item.Quantity)).Error
				if err != nil {
					return err
				}
			}

			created = append(created, order)
		}

		// Delete exactly the snapshotted cart rows. If another checkout
		// raced us and already consumed some of them, roll everything
		// back so no duplicate orders are committed.
		ids := make([]uint, len(items))
		for i, item := range items {
			ids[i] = item.ID
		}
		res := tx.Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return ErrCartChanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// createWithOrderNo inserts the order, regenerating the order number on
// the rare unique-constraint collision.
func createWithOrderNo(tx *gorm.DB, order *models.Order) error {
	for attempt := 0; attempt < orderNoAttempts; attempt++ {
		order.OrderNo = GenerateOrderNo()
		err := tx.Create(order).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
	}
	return ErrOrderNoConflict
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

// GenerateOrderNo builds a human-readable order number: a second-precision
// timestamp prefix for sortability plus a random suffix making collisions
// negligible under concurrent checkouts in the same second.
func GenerateOrderNo() string {
	timestamp := time.Now().Format("20060102150405")
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strings.ToUpper("ORD" + timestamp + random)
}
