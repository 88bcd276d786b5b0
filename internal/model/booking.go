package model

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// ActiveStatuses are the statuses that hold a slot on the court calendar.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// RevenueStatuses are the statuses that count towards revenue.
var RevenueStatuses = []Status{StatusConfirmed, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether a booking in status s blocks its slot.
func (s Status) Active() bool { return s == StatusPending || s == StatusConfirmed }

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool { return s == StatusCancelled || s == StatusCompleted }

// Booking is a reservation of one court for one time interval on one
// day.  It corresponds to a row in the `bookings` table.  Bookings are
// never deleted; CANCELLED and COMPLETED are terminal statuses.
//
// Fields:
//
//	ID               – bookings.id
//	Reference        – bookings.booking_reference, unique and immutable
//	UserID           – user who made the booking
//	CourtID          – booked court
//	BookingDate      – calendar day, midnight UTC
//	StartTime        – inclusive start of the slot
//	EndTime          – exclusive end of the slot
//	TotalAmountCents – price computed by the payment/discount collaborator
//	Status           – lifecycle state
//	Notes            – optional free text
type Booking struct {
	ID               uint64
	Reference        string
	UserID           uint64
	CourtID          uint64
	BookingDate      time.Time
	StartTime        ClockTime
	EndTime          ClockTime
	TotalAmountCents int64
	Status           Status
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Slot returns the booked interval.
func (b *Booking) Slot() Interval { return Interval{Start: b.StartTime, End: b.EndTime} }

// SameDay reports whether b is on the given court and day.
func (b *Booking) SameDay(courtID uint64, day time.Time) bool {
	return b.CourtID == courtID && b.BookingDate.Equal(day)
}
