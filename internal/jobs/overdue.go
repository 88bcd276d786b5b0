// Package jobs holds the periodic background work of the server.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueSource reports PENDING bookings past their payment cutoff and
// returns how many were found.  *service.Scheduler implements it.
type OverdueSource interface {
	ReportOverdue(ctx context.Context) (int, error)
}

// OverdueReporter runs the overdue report on a cron schedule.  It never
// changes a booking; it only publishes booking.overdue events.
type OverdueReporter struct {
	source  OverdueSource
	log     *zap.Logger
	timeout time.Duration

	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
}

// NewOverdueReporter schedules the report with the given cron spec, for
// example "@every 15m" or "*/10 * * * *".
func NewOverdueReporter(spec string, source OverdueSource, log *zap.Logger) (*OverdueReporter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &OverdueReporter{
		source:  source,
		log:     log.Named("overdue"),
		timeout: time.Minute,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	r.ctx, r.stop = context.WithCancel(context.Background())
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		r.stop()
		return nil, fmt.Errorf("overdue report spec %q: %w", spec, err)
	}
	return r, nil
}

// Start launches the scheduler in its own goroutine.
func (r *OverdueReporter) Start() {
	r.cron.Start()
	r.log.Info("overdue report scheduled", zap.Int("entries", len(r.cron.Entries())))
}

// Stop cancels a running report and waits for it to return or for ctx to
// expire, whichever comes first.
func (r *OverdueReporter) Stop(ctx context.Context) {
	r.stop()
	select {
	case <-r.cron.Stop().Done():
	case <-ctx.Done():
		r.log.Warn("overdue report still running at shutdown")
	}
}

// Run executes one report.  It is exported so an operator command or a
// test can trigger it outside the schedule.
func (r *OverdueReporter) Run() {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()
	start := time.Now()
	n, err := r.source.ReportOverdue(ctx)
	if err != nil {
		r.log.Error("overdue report failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.log.Info("overdue bookings reported", zap.Int("count", n), zap.Duration("took", time.Since(start)))
		return
	}
	r.log.Debug("no overdue bookings")
}
