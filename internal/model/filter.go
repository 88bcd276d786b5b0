package model

import "time"

// DefaultPageSize and MaxPageSize bound paginated listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// BookingFilter selects bookings for paginated listings.  Zero values mean
// "no constraint".  From and To bound booking_date inclusively.
type BookingFilter struct {
	UserID  uint64
	CourtID uint64
	OwnerID uint64
	Status  Status
	From    *time.Time
	To      *time.Time
	Page    int
	Size    int
}

// Normalize clamps page and size into their valid ranges.
func (f *BookingFilter) Normalize() {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.Size <= 0 {
		f.Size = DefaultPageSize
	}
	if f.Size > MaxPageSize {
		f.Size = MaxPageSize
	}
}

// Offset is the number of rows skipped for the current page.
func (f BookingFilter) Offset() int { return f.Page * f.Size }

// Page is one page of a listing.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}
