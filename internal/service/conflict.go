package service

import (
	"context"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// ConflictDetector answers whether a candidate slot is free.  It issues a
// single counting query and has no side effects; the atomic guarantee at
// creation time comes from BookingStore.Create.
type ConflictDetector struct {
	store BookingStore
}

// NewConflictDetector returns a detector reading from store.
func NewConflictDetector(store BookingStore) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// HasConflict reports whether any PENDING or CONFIRMED booking on the same
// court and date overlaps [start, end).  excludeID, when non-zero, ignores
// that booking so it does not conflict with itself.
func (d *ConflictDetector) HasConflict(ctx context.Context, courtID uint64, date time.Time, start, end model.ClockTime, excludeID uint64) (bool, error) {
	n, err := d.store.CountConflicting(ctx, courtID, date, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Overlapping filters existing down to the active bookings whose slot
// overlaps candidate.
func Overlapping(existing []model.Booking, candidate model.Interval, excludeID uint64) []model.Booking {
	var out []model.Booking
	for i := range existing {
		b := &existing[i]
		if b.ID == excludeID && excludeID != 0 {
			continue
		}
		if b.Status.Active() && b.Slot().Overlaps(candidate) {
			out = append(out, *b)
		}
	}
	return out
}

// FreeIntervals returns the gaps inside hours not covered by booked, which
// must be sorted by start time.
func FreeIntervals(hours model.Interval, booked []model.Interval) []model.Interval {
	free := []model.Interval{}
	cursor := hours.Start
	for _, b := range booked {
		if b.End <= cursor {
			continue
		}
		if b.Start > cursor {
			end := b.Start
			if end > hours.End {
				end = hours.End
			}
			if end > cursor {
				free = append(free, model.Interval{Start: cursor, End: end})
			}
		}
		if b.End > cursor {
			cursor = b.End
		}
		if cursor >= hours.End {
			return free
		}
	}
	if cursor < hours.End {
		free = append(free, model.Interval{Start: cursor, End: hours.End})
	}
	return free
}
