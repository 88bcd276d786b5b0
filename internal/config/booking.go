package config

import (
	"fmt"
	"time"
)

// BookingConfig carries the scheduling rules.
//
//	APP_TIMEZONE              location that defines "today" (default UTC)
//	BOOKING_MIN_LEAD          minimum time between now and slot start (default 0)
//	BOOKING_MAX_ADVANCE_DAYS  furthest bookable day, 0 for no limit (default 30)
//	BOOKING_SLOT_MINUTES      uniqueness bucket size in minutes (default 30)
//	BOOKING_OVERDUE_CUTOFF    age after which a PENDING booking is overdue (default 24h)
//	OVERDUE_REPORT_SPEC       cron spec of the overdue report, empty disables it
type BookingConfig struct {
	Location          *time.Location
	MinLead           time.Duration
	MaxAdvanceDays    int
	SlotMinutes       int
	OverdueCutoff     time.Duration
	OverdueReportSpec string
}

// LoadBookingConfig reads the booking rules from the environment.
func LoadBookingConfig() (BookingConfig, error) {
	tz := envStr("APP_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return BookingConfig{}, fmt.Errorf("APP_TIMEZONE %q: %w", tz, err)
	}
	cfg := BookingConfig{
		Location:          loc,
		MinLead:           envDur("BOOKING_MIN_LEAD", 0),
		MaxAdvanceDays:    envInt("BOOKING_MAX_ADVANCE_DAYS", 30),
		SlotMinutes:       envInt("BOOKING_SLOT_MINUTES", 30),
		OverdueCutoff:     envDur("BOOKING_OVERDUE_CUTOFF", 24*time.Hour),
		OverdueReportSpec: envStr("OVERDUE_REPORT_SPEC", "@every 15m"),
	}
	if cfg.SlotMinutes <= 0 || 60%cfg.SlotMinutes != 0 && cfg.SlotMinutes%60 != 0 {
		return BookingConfig{}, fmt.Errorf("BOOKING_SLOT_MINUTES must divide an hour or be whole hours, got %d", cfg.SlotMinutes)
	}
	if cfg.MinLead < 0 || cfg.MaxAdvanceDays < 0 {
		return BookingConfig{}, fmt.Errorf("booking lead and advance window must not be negative")
	}
	if cfg.OverdueCutoff <= 0 {
		cfg.OverdueCutoff = 24 * time.Hour
	}
	return cfg, nil
}
