package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "user", "admin"
}

// validTransitions is the authoritative state machine definition.
// Admin transitions are forward-only along the main chain; arbitrary
// backward overwrites are rejected. Cancellation is a side branch
// reachable only from pending or preparing.
var validTransitions = []Transition{
	// Admin drives fulfilment forward
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "admin"},
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "admin"},
	{From: models.StatusPreparing, To: models.StatusDelivering, Actor: "admin"},
	{From: models.StatusDelivering, To: models.StatusCompleted, Actor: "admin"},
	// Cancellation side branch
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "user"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "user"},
}

// paymentTransitions: unpaid → paid → refunded, forward-only
var paymentTransitions = map[models.PaymentStatus]models.PaymentStatus{
	models.PaymentUnpaid: models.PaymentPaid,
	models.PaymentPaid:   models.PaymentRefunded,
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// KnownStatus reports whether s is a member of the closed status set
func KnownStatus(s models.OrderStatus) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusDelivering, models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

// CanTransitionPayment checks a payment-status change for legality
func CanTransitionPayment(from, to models.PaymentStatus) error {
	if paymentTransitions[from] == to {
		return nil
	}
	return errors.New("invalid payment transition: " + string(from) + " -> " + string(to))
}

// Editable reports whether the user may still change order-item
// quantities, i.e. before the order is confirmed by an admin.
func Editable(status models.OrderStatus) bool {
	return status == models.StatusPending || status == models.StatusPreparing
}

// UserDeletable is stricter than cancellation: only untouched orders
// may be removed by their owner.
func UserDeletable(status models.OrderStatus) bool {
	return status == models.StatusPending
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
