// Package queue connects the scheduler to RabbitMQ.  Booking lifecycle
// events are published to a topic exchange; consumers append them to the
// booking log and turn payment.paid messages into confirmations.
package queue

import (
	"encoding/json"
	"fmt"
)

// Routing keys consumed from the payment exchange.
const (
	RKPaymentPaid = "payment.paid"
)

// RKAllBookings binds a queue to every booking.* event.
const RKAllBookings = "booking.#"

// PaymentPaid is published by the payment collaborator once a booking has
// been paid.  Either BookingID or BookingReference identifies the booking.
// EventID is unique per message and is the idempotency key; PaymentID is
// used when the sender leaves EventID empty.
type PaymentPaid struct {
	EventID          string `json:"event_id"`
	PaymentID        string `json:"payment_id"`
	BookingID        uint64 `json:"booking_id"`
	BookingReference string `json:"booking_reference"`
	AmountCents      int64  `json:"amount_cents"`
	Currency         string `json:"currency"`
	PaidAt           string `json:"paid_at"`
}

// Key returns the idempotency key of the message.
func (p PaymentPaid) Key() string {
	if p.EventID != "" {
		return p.EventID
	}
	if p.PaymentID != "" {
		return "payment:" + p.PaymentID
	}
	return ""
}

func decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
