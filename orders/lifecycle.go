package orders

import (
	"errors"
	"fmt"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"gorm.io/gorm"
)

// Actor identifies who is driving a lifecycle operation
type Actor struct {
	UserID uint
	Role   models.UserRole
}

func (a Actor) machineRole() string {
	if a.Role == models.RoleAdmin {
		return "admin"
	}
	return "user"
}

// Get loads one order with its items, enforcing ownership: non-admin
// actors may only see their own orders.
func Get(db *gorm.DB, actor Actor, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items.Dish").Preload("Restaurant").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != actor.UserID && actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return &order, nil
}

// Cancel moves an order to cancelled. Permitted only while the order is
// pending or preparing.
func Cancel(db *gorm.DB, actor Actor, orderID uint) (*models.Order, error) {
	order, err := Get(db, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, actor.machineRole()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := db.Model(order).Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	order.Status = models.StatusCancelled
	return order, nil
}

// UpdateItemQuantity changes one order item's quantity before the order
// has been confirmed. The frozen unit price is kept; the item subtotal
// and the order totals are recomputed from it. Sales counts are not
// adjusted.
func UpdateItemQuantity(db *gorm.DB, actor Actor, orderID, itemID uint, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, ErrBadQuantity
	}

	var updated *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := Get(tx, actor, orderID)
		if err != nil {
			return err
		}
		if !statemachine.Editable(order.Status) {
			return ErrInvalidState
		}

		var item models.OrderItem
		err = tx.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		newSubtotal := item.Price * float64(quantity)
		delta := newSubtotal - item.Subtotal

		err = tx.Model(&item).Updates(map[string]interface{}{
			"quantity": quantity,
			"subtotal": newSubtotal,
		}).Error
		if err != nil {
			return err
		}

		err = tx.Model(order).Updates(map[string]interface{}{
			"subtotal":     order.Subtotal + delta,
			"total_amount": order.Subtotal + delta + order.DeliveryFee,
		}).Error
		if err != nil {
			return err
		}

		updated, err = Get(tx, actor, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an order and its items. Only pending orders may be
// deleted through this path; AdminDelete bypasses the status check.
func Delete(db *gorm.DB, actor Actor, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		order, err := Get(tx, actor, orderID)
		if err != nil {
			return err
		}
		if !statemachine.UserDeletable(order.Status) {
			return ErrInvalidState
		}
		return deleteCascade(tx, order)
	})
}

// AdminDelete removes an order regardless of status, cascading to its
// items.
func AdminDelete(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		return deleteCascade(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func deleteCascade(tx *gorm.DB, order *models.Order) error {
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(order).Error
}

// SetStatus performs an admin status transition, restricted to forward
// transitions plus cancellation. Lifecycle timestamps are stamped on the
// way through.
func SetStatus(db *gorm.DB, orderID uint, status models.OrderStatus) (*models.Order, error) {
	if !statemachine.KnownStatus(status) {
		return nil, ErrBadStatus
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := statemachine.CanTransition(order.Status, status, "admin"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	updates := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case models.StatusConfirmed:
		updates["confirmed_at"] = &now
	case models.StatusCompleted:
		updates["delivered_at"] = &now
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return &order, nil
}

// SetPaymentStatus performs a forward-only payment transition
func SetPaymentStatus(db *gorm.DB, orderID uint, status models.PaymentStatus) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := statemachine.CanTransitionPayment(order.PaymentStatus, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := db.Model(&order).Update("payment_status", status).Error; err != nil {
		return nil, err
	}
	order.PaymentStatus = status
	return &order, nil
}
