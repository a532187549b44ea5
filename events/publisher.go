// Package events publishes best-effort order events to kafka for
// downstream consumers (analytics, dashboards). Publishing happens only
// after the database transaction has committed and never blocks the
// order path on failure. Disabled unless ORDER_EVENTS_BROKER is set.
package events

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"food-ordering-api/models"

	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated   = "order.created"
	TypeStatusChanged  = "order.status_changed"
	TypePaymentChanged = "order.payment_changed"
)

// OrderEvent is the wire format for order lifecycle events
type OrderEvent struct {
	Type          string               `json:"type"`
	OrderID       uint                 `json:"order_id"`
	OrderNo       string               `json:"order_no"`
	UserID        uint                 `json:"user_id"`
	RestaurantID  uint                 `json:"restaurant_id"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	TotalAmount   float64              `json:"total_amount"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

var writer *kafka.Writer

// Init configures the kafka writer when ORDER_EVENTS_BROKER is set
func Init() {
	broker := os.Getenv("ORDER_EVENTS_BROKER")
	if broker == "" {
		return
	}
	topic := os.Getenv("ORDER_EVENTS_TOPIC")
	if topic == "" {
		topic = "orders"
	}
	writer = &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Println("✅ Order event publishing enabled to", broker, "topic", topic)
}

// PublishOrder emits one event for an order, keyed by order id.
// Failures are logged and swallowed: events are strictly best-effort.
func PublishOrder(ctx context.Context, eventType string, order *models.Order) {
	if writer == nil {
		return
	}
	payload, _ := json.Marshal(OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		UserID:        order.UserID,
		RestaurantID:  order.RestaurantID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
		OccurredAt:    time.Now(),
	})
	err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(order.ID), 10)),
		Value: payload,
	})
	if err != nil {
		log.Println("Failed to publish order event:", err)
	}
}
