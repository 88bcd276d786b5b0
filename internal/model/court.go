package model

import "time"

// CourtStatus tells whether a court accepts new bookings.
type CourtStatus string

const (
	CourtActive   CourtStatus = "ACTIVE"
	CourtInactive CourtStatus = "INACTIVE"
)

// Court is the read-only view of a court that the scheduling core needs.
// Courts are managed elsewhere; this struct mirrors the `courts` table.
type Court struct {
	ID          uint64
	OwnerID     uint64
	Name        string
	Status      CourtStatus
	OpeningTime ClockTime
	ClosingTime ClockTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the court can be booked.
func (c *Court) IsActive() bool { return c.Status == CourtActive }

// Hours returns the operating interval of the court.
func (c *Court) Hours() Interval { return Interval{Start: c.OpeningTime, End: c.ClosingTime} }
