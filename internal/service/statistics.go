package service

import (
	"context"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// RevenueStatistics sums the amounts of CONFIRMED and COMPLETED bookings
// on ownerID's courts with a booking date in [start, end], grouped by
// court.  Courts with no qualifying bookings are omitted.
func (s *Scheduler) RevenueStatistics(ctx context.Context, actor model.Principal, ownerID uint64, start, end time.Time) (*model.RevenueReport, error) {
	if !canManage(actor, ownerID) {
		return nil, newError(KindAccessDenied, "not allowed to read revenue of owner %d", ownerID)
	}
	start = model.Day(start, time.UTC)
	end = model.Day(end, time.UTC)
	if end.Before(start) {
		return nil, newError(KindInvalidTimeRange, "end date %s is before start date %s",
			end.Format(model.DateLayout), start.Format(model.DateLayout))
	}
	rows, err := s.bookings.SumAmountByCourt(ctx, ownerID, start, end, model.RevenueStatuses)
	if err != nil {
		return nil, s.storeErr("sum revenue", err)
	}
	report := &model.RevenueReport{
		OwnerID:   ownerID,
		StartDate: start.Format(model.DateLayout),
		EndDate:   end.Format(model.DateLayout),
		Courts:    []model.CourtRevenue{},
	}
	for _, r := range rows {
		report.Courts = append(report.Courts, r)
		report.Bookings += r.Bookings
		report.TotalCents += r.TotalCents
	}
	return report, nil
}

// CourtStatistics counts the bookings of a court per status.  Every status
// is present in the result, zero when unused.
func (s *Scheduler) CourtStatistics(ctx context.Context, actor model.Principal, courtID uint64) (*model.CourtStatistics, error) {
	court, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, court.OwnerID) {
		return nil, newError(KindAccessDenied, "not allowed to read statistics of court %d", courtID)
	}
	counts, err := s.bookings.CountByStatus(ctx, courtID)
	if err != nil {
		return nil, s.storeErr("count bookings", err)
	}
	stats := &model.CourtStatistics{
		CourtID:   court.ID,
		CourtName: court.Name,
		ByStatus:  map[model.Status]int64{},
	}
	for _, st := range []model.Status{model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted} {
		stats.ByStatus[st] = counts[st]
		stats.Total += counts[st]
	}
	return stats, nil
}
