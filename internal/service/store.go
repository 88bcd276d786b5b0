package service

import (
	"context"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// BookingStore is the persistence contract of the scheduling core.
// repository.BookingRepo implements it on MySQL.
//
// Create must perform the conflict check and the insert as one atomic
// unit and return repository.ErrConflict when another active booking
// overlaps or any bucket is already claimed.  UpdateStatus is a
// compare-and-set on the current status and returns
// repository.ErrStaleStatus when the row is no longer in from.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking, buckets []model.ClockTime) error
	FindByID(ctx context.Context, id uint64) (*model.Booking, error)
	FindByCourtAndDate(ctx context.Context, courtID uint64, date time.Time) ([]model.Booking, error)
	CountConflicting(ctx context.Context, courtID uint64, date time.Time, start, end model.ClockTime, excludeID uint64) (int64, error)
	FindByStatusCreatedBefore(ctx context.Context, status model.Status, before time.Time, ownerID uint64) ([]model.Booking, error)
	FindUpcoming(ctx context.Context, userID uint64, date time.Time, from, to model.ClockTime) ([]model.Booking, error)
	List(ctx context.Context, f model.BookingFilter) ([]model.Booking, int64, error)
	SumAmountByCourt(ctx context.Context, ownerID uint64, start, end time.Time, statuses []model.Status) ([]model.CourtRevenue, error)
	CountByStatus(ctx context.Context, courtID uint64) (map[model.Status]int64, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.Status) (*model.Booking, error)
}

// CourtRegistry is the read-only view of court management.
type CourtRegistry interface {
	FindByID(ctx context.Context, id uint64) (*model.Court, error)
}

// EventPublisher receives lifecycle events.  Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev model.BookingEvent) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, model.BookingEvent) error { return nil }
