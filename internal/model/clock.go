package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

// EndOfDay is the largest ClockTime, 24:00.  It is only valid as the end
// of an interval.
const EndOfDay ClockTime = 24 * 60

// ClockTime is a wall-clock time of day expressed in minutes since
// midnight.  It maps to a MySQL TIME column and to "HH:MM" in JSON.
// Seconds are not tracked; bookings are made on minute boundaries.
type ClockTime int

// Clock builds a ClockTime from hours and minutes.
func Clock(hour, minute int) ClockTime { return ClockTime(hour*60 + minute) }

// ParseClock accepts "HH:MM" or "HH:MM:SS" (seconds must be zero).
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time of day out of range %q", s)
	}
	return Clock(h, m), nil
}

// Hour returns the hour component.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c ClockTime) Minute() int { return int(c) % 60 }

// Valid reports whether c lies in [00:00, 24:00].
func (c ClockTime) Valid() bool { return c >= 0 && c <= EndOfDay }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute()) }

// On returns the instant at which c occurs on the given day in loc.
func (c ClockTime) On(day time.Time, loc *time.Location) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc).Add(time.Duration(c) * time.Minute)
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) ClockTime { return Clock(t.Hour(), t.Minute()) }

func (c ClockTime) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Value stores c as a TIME literal.
func (c ClockTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute()), nil
}

// Scan reads a TIME column.  The MySQL driver returns TIME as text even
// with parseTime enabled.
func (c *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	case time.Time:
		*c = ClockOf(v)
		return nil
	case nil:
		return fmt.Errorf("clock time: NULL value")
	}
	return fmt.Errorf("clock time: unsupported type %T", src)
}

func (c *ClockTime) scanString(s string) error {
	// MySQL may render fractional seconds
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Interval is a half-open range [Start, End) of wall-clock time.
type Interval struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Overlaps reports whether the two half-open intervals share any instant.
// Intervals that only touch (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(o Interval) bool { return i.Start < o.End && o.Start < i.End }

// Day truncates t to midnight UTC of its calendar date in loc.  Booking
// dates are carried as midnight UTC so they round-trip through DATE columns
// unchanged.
func Day(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a DateLayout string into a midnight UTC day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
