package service

import (
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// DefaultSlotMinutes is the time-bucket granularity used when Rules does
// not set one.
const DefaultSlotMinutes = 30

// Rules are the temporal business rules applied to a candidate slot.
// Validate is a pure function of its inputs and the supplied "now".
type Rules struct {
	// Location defines "today" and the instant a slot starts.
	Location *time.Location
	// MinLead is the minimum time between now and the slot start.
	MinLead time.Duration
	// MaxAdvanceDays limits how far ahead a booking can be made; 0 means
	// no limit.
	MaxAdvanceDays int
	// SlotMinutes is the size of the uniqueness buckets.  Slots need not
	// align to it.
	SlotMinutes int
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r Rules) slotMinutes() int {
	if r.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return r.SlotMinutes
}

// Validate checks a candidate slot on court for date (midnight UTC) from
// start to end.  court may be nil when operating hours are unknown.
func (r Rules) Validate(now time.Time, court *model.Court, date time.Time, start, end model.ClockTime) error {
	loc := r.location()
	today := model.Day(now, loc)
	if date.Before(today) {
		return newError(KindPastDate, "booking date %s is in the past", date.Format(model.DateLayout))
	}
	if !start.Valid() || !end.Valid() || start >= end {
		return newError(KindInvalidTimeRange, "start time %s must be before end time %s", start, end)
	}
	if court != nil && court.ClosingTime > court.OpeningTime {
		hours := court.Hours()
		if start < hours.Start || end > hours.End {
			return newError(KindInvalidTimeRange, "slot %s-%s is outside operating hours %s-%s", start, end, hours.Start, hours.End)
		}
	}
	startsAt := start.On(date, loc)
	if startsAt.Before(now) {
		return newError(KindPastDate, "slot start %s %s has already passed", date.Format(model.DateLayout), start)
	}
	if r.MinLead > 0 && startsAt.Before(now.Add(r.MinLead)) {
		return newError(KindInvalidTimeRange, "booking must be made at least %s before the slot starts", r.MinLead)
	}
	if r.MaxAdvanceDays > 0 && date.After(today.AddDate(0, 0, r.MaxAdvanceDays)) {
		return newError(KindInvalidTimeRange, "booking date must be within %d days", r.MaxAdvanceDays)
	}
	return nil
}

// Buckets returns the start of every bucket lying wholly inside
// [start, end).  These are the keys of the uniqueness constraint in
// booking_slots.  Two overlapping bookings that share a whole bucket
// collide on the key; partial edges such as 09:15-09:30 are guarded only
// by the locking conflict count in the same transaction.  Slots that do
// not overlap never share a bucket.
func (r Rules) Buckets(start, end model.ClockTime) []model.ClockTime {
	step := model.ClockTime(r.slotMinutes())
	first := start
	if rem := start % step; rem != 0 {
		first += step - rem
	}
	var out []model.ClockTime
	for t := first; t+step <= end; t += step {
		out = append(out, t)
	}
	return out
}
