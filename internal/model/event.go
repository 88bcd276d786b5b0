package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType doubles as the routing key on the booking exchange.
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingCompleted EventType = "booking.completed"
	EventBookingOverdue   EventType = "booking.overdue"
)

// BookingEvent is published whenever a booking enters a new state or is
// reported overdue.  It carries enough data for notification and
// analytics consumers to work without reading the primary database.
type BookingEvent struct {
	ID               string    `json:"event_id"`
	Type             EventType `json:"type"`
	BookingID        uint64    `json:"booking_id"`
	Reference        string    `json:"booking_reference"`
	UserID           uint64    `json:"user_id"`
	CourtID          uint64    `json:"court_id"`
	BookingDate      string    `json:"booking_date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Status           Status    `json:"status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	ActorID          uint64    `json:"actor_id"`
	OccurredAt       string    `json:"occurred_at"`
}

// NewBookingEvent snapshots b for the given event type.
func NewBookingEvent(t EventType, b *Booking, actorID uint64, at time.Time) BookingEvent {
	return BookingEvent{
		ID:               uuid.NewString(),
		Type:             t,
		BookingID:        b.ID,
		Reference:        b.Reference,
		UserID:           b.UserID,
		CourtID:          b.CourtID,
		BookingDate:      b.BookingDate.Format(DateLayout),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Status:           b.Status,
		TotalAmountCents: b.TotalAmountCents,
		ActorID:          actorID,
		OccurredAt:       at.UTC().Format(time.RFC3339),
	}
}
