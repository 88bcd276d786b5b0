package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/repository"
)

// DefaultOverdueCutoff is how long a booking may stay PENDING before it
// is reported as overdue.
const DefaultOverdueCutoff = 24 * time.Hour

// createAttempts bounds the writes tried for one CreateBooking call when
// the store reports a transient failure.
const createAttempts = 2

// publishTimeout caps how long an operation waits on the event publisher
// after its write has committed.
const publishTimeout = 2 * time.Second

// Options tunes a Scheduler.  Zero values select the defaults.
type Options struct {
	Rules         Rules
	OverdueCutoff time.Duration
	Lifecycle     *Lifecycle
	Now           func() time.Time
}

// Scheduler is the court booking core.  It validates requests, prevents
// double booking, drives the lifecycle and answers calendar and revenue
// queries.  Every operation takes the acting principal explicitly.
type Scheduler struct {
	bookings      BookingStore
	courts        CourtRegistry
	events        EventPublisher
	lifecycle     *Lifecycle
	detector      *ConflictDetector
	rules         Rules
	overdueCutoff time.Duration
	now           func() time.Time
	log           *zap.Logger
}

// NewScheduler wires a Scheduler.  events and log may be nil.
func NewScheduler(bookings BookingStore, courts CourtRegistry, events EventPublisher, log *zap.Logger, opts Options) *Scheduler {
	if events == nil {
		events = noopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Lifecycle == nil {
		opts.Lifecycle = DefaultLifecycle()
	}
	if opts.OverdueCutoff <= 0 {
		opts.OverdueCutoff = DefaultOverdueCutoff
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scheduler{
		bookings:      bookings,
		courts:        courts,
		events:        events,
		lifecycle:     opts.Lifecycle,
		detector:      NewConflictDetector(bookings),
		rules:         opts.Rules,
		overdueCutoff: opts.OverdueCutoff,
		now:           opts.Now,
		log:           log.Named("scheduler"),
	}
}

// CreateRequest describes a new booking.  Date is a calendar day; only its
// year, month and day are used.
type CreateRequest struct {
	CourtID          uint64
	Date             time.Time
	Start            model.ClockTime
	End              model.ClockTime
	TotalAmountCents int64
	Notes            *string
}

// CreateBooking validates req and stores a PENDING booking for actor.  The
// conflict check and the insert happen atomically in the store, so two
// concurrent requests for overlapping slots cannot both succeed.
func (s *Scheduler) CreateBooking(ctx context.Context, actor model.Principal, req CreateRequest) (*model.Booking, error) {
	if actor.UserID == 0 {
		return nil, newError(KindAccessDenied, "an authenticated user is required to book")
	}
	if req.TotalAmountCents < 0 {
		return nil, newError(KindInvalidInput, "total amount must not be negative")
	}
	court, err := s.court(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.IsActive() {
		return nil, newError(KindCourtUnavailable, "court %d is not accepting bookings", court.ID)
	}

	date := model.Day(req.Date, time.UTC)
	now := s.now()
	if err := s.rules.Validate(now, court, date, req.Start, req.End); err != nil {
		return nil, err
	}
	busy, err := s.detector.HasConflict(ctx, court.ID, date, req.Start, req.End, 0)
	if err != nil {
		return nil, s.storeErr("check conflicts", err)
	}
	if busy {
		return nil, conflictError(court.ID, date, req.Start, req.End)
	}

	b := &model.Booking{
		UserID:           actor.UserID,
		CourtID:          court.ID,
		BookingDate:      date,
		StartTime:        req.Start,
		EndTime:          req.End,
		TotalAmountCents: req.TotalAmountCents,
		Status:           s.lifecycle.InitialStatus(),
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	buckets := s.rules.Buckets(req.Start, req.End)
	for attempt := 1; ; attempt++ {
		b.Reference = NewReference(date)
		err = s.bookings.Create(ctx, b, buckets)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrConflict) {
			s.log.Info("booking lost slot race",
				zap.Uint64("court_id", court.ID),
				zap.String("date", date.Format(model.DateLayout)),
				zap.Stringer("start", req.Start),
				zap.Stringer("end", req.End))
			return nil, conflictError(court.ID, date, req.Start, req.End)
		}
		if !errors.Is(err, repository.ErrRetryable) || attempt >= createAttempts {
			return nil, s.storeErr("create booking", err)
		}
		s.log.Warn("retrying booking insert", zap.Int("attempt", attempt), zap.Error(err))
	}

	s.log.Info("booking created",
		zap.Uint64("booking_id", b.ID),
		zap.String("reference", b.Reference),
		zap.Uint64("court_id", b.CourtID),
		zap.Uint64("user_id", b.UserID))
	s.publish(ctx, model.EventBookingCreated, b, actor.UserID)
	return b, nil
}

// HasConflict reports whether [start, end) on courtID and date overlaps an
// active booking other than excludeID.  It does not write anything.
func (s *Scheduler) HasConflict(ctx context.Context, courtID uint64, date time.Time, start, end model.ClockTime, excludeID uint64) (bool, error) {
	if !start.Valid() || !end.Valid() || start >= end {
		return false, newError(KindInvalidTimeRange, "start time %s must be before end time %s", start, end)
	}
	busy, err := s.detector.HasConflict(ctx, courtID, model.Day(date, time.UTC), start, end, excludeID)
	if err != nil {
		return false, s.storeErr("check conflicts", err)
	}
	return busy, nil
}

// GetBooking returns a booking visible to actor: its user, the owner of
// its court or an admin.
func (s *Scheduler) GetBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error) {
	b, err := s.booking(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.relation(ctx, actor, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus moves a booking to status to, if the lifecycle has an edge
// from its current status and actor may take it.
func (s *Scheduler) UpdateStatus(ctx context.Context, actor model.Principal, id uint64, to model.Status) (*model.Booking, error) {
	return s.move(ctx, actor, id, func(from model.Status) (Transition, error) {
		return s.lifecycle.Resolve(from, to)
	})
}

// ConfirmBooking moves a PENDING booking to CONFIRMED.
func (s *Scheduler) ConfirmBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error) {
	return s.fire(ctx, actor, id, EventConfirm)
}

// CancelBooking moves a PENDING or CONFIRMED booking to CANCELLED and
// frees its slot.
func (s *Scheduler) CancelBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error) {
	return s.fire(ctx, actor, id, EventCancel)
}

// CompleteBooking moves a CONFIRMED booking to COMPLETED.
func (s *Scheduler) CompleteBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error) {
	return s.fire(ctx, actor, id, EventComplete)
}

func (s *Scheduler) fire(ctx context.Context, actor model.Principal, id uint64, ev Event) (*model.Booking, error) {
	return s.move(ctx, actor, id, func(from model.Status) (Transition, error) {
		return s.lifecycle.Fire(from, ev)
	})
}

// move applies one lifecycle edge.  Visibility is checked first so that a
// stranger learns nothing about the booking's status.
func (s *Scheduler) move(ctx context.Context, actor model.Principal, id uint64, edge func(model.Status) (Transition, error)) (*model.Booking, error) {
	b, err := s.booking(ctx, id)
	if err != nil {
		return nil, err
	}
	rel, err := s.relation(ctx, actor, b)
	if err != nil {
		return nil, err
	}
	t, err := edge(b.Status)
	if err != nil {
		return nil, err
	}
	if err := s.lifecycle.Authorize(t, rel); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, b.ID, t.From, t.To)
	switch {
	case errors.Is(err, repository.ErrStaleStatus):
		// someone else moved it first
		return nil, newError(KindInvalidTransition, "booking %d is no longer %s", b.ID, t.From)
	case err != nil:
		return nil, s.storeErr("update booking status", err)
	}

	s.log.Info("booking status changed",
		zap.Uint64("booking_id", updated.ID),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
		zap.Uint64("actor_id", actor.UserID))
	s.publish(ctx, eventFor(t.To), updated, actor.UserID)
	return updated, nil
}

// ListMine pages through actor's own bookings, newest first.
func (s *Scheduler) ListMine(ctx context.Context, actor model.Principal, page, size int) (model.Page[model.Booking], error) {
	if actor.UserID == 0 {
		return model.Page[model.Booking]{}, newError(KindAccessDenied, "an authenticated user is required")
	}
	return s.list(ctx, model.BookingFilter{UserID: actor.UserID, Page: page, Size: size})
}

// ListByUser pages through the bookings of userID.  Only that user or an
// admin may call it.
func (s *Scheduler) ListByUser(ctx context.Context, actor model.Principal, userID uint64, page, size int) (model.Page[model.Booking], error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return model.Page[model.Booking]{}, newError(KindAccessDenied, "not allowed to list bookings of user %d", userID)
	}
	return s.list(ctx, model.BookingFilter{UserID: userID, Page: page, Size: size})
}

// ListByCourt pages through the bookings of a court for its owner or an
// admin.
func (s *Scheduler) ListByCourt(ctx context.Context, actor model.Principal, courtID uint64, page, size int) (model.Page[model.Booking], error) {
	court, err := s.court(ctx, courtID)
	if err != nil {
		return model.Page[model.Booking]{}, err
	}
	if !canManage(actor, court.OwnerID) {
		return model.Page[model.Booking]{}, newError(KindAccessDenied, "not allowed to list bookings of court %d", courtID)
	}
	return s.list(ctx, model.BookingFilter{CourtID: courtID, Page: page, Size: size})
}

// ListByOwner pages through bookings across all courts of ownerID whose
// date falls in [from, to].  Nil bounds default to one year back and
// thirty days ahead.
func (s *Scheduler) ListByOwner(ctx context.Context, actor model.Principal, ownerID uint64, from, to *time.Time, page, size int) (model.Page[model.Booking], error) {
	if !canManage(actor, ownerID) {
		return model.Page[model.Booking]{}, newError(KindAccessDenied, "not allowed to list bookings of owner %d", ownerID)
	}
	today := model.Day(s.now(), s.rules.location())
	start := today.AddDate(-1, 0, 0)
	end := today.AddDate(0, 0, 30)
	if from != nil {
		start = model.Day(*from, time.UTC)
	}
	if to != nil {
		end = model.Day(*to, time.UTC)
	}
	if end.Before(start) {
		return model.Page[model.Booking]{}, newError(KindInvalidTimeRange, "end date %s is before start date %s",
			end.Format(model.DateLayout), start.Format(model.DateLayout))
	}
	return s.list(ctx, model.BookingFilter{OwnerID: ownerID, From: &start, To: &end, Page: page, Size: size})
}

func (s *Scheduler) list(ctx context.Context, f model.BookingFilter) (model.Page[model.Booking], error) {
	f.Normalize()
	items, total, err := s.bookings.List(ctx, f)
	if err != nil {
		return model.Page[model.Booking]{}, s.storeErr("list bookings", err)
	}
	if items == nil {
		items = []model.Booking{}
	}
	return model.Page[model.Booking]{Items: items, Total: total, Page: f.Page, Size: f.Size}, nil
}

// FindUpcoming returns userID's CONFIRMED bookings for today that start at
// or after the current time, in start order.
func (s *Scheduler) FindUpcoming(ctx context.Context, actor model.Principal, userID uint64) ([]model.Booking, error) {
	if !actor.IsAdmin() && (actor.UserID == 0 || actor.UserID != userID) {
		return nil, newError(KindAccessDenied, "not allowed to read upcoming bookings of user %d", userID)
	}
	loc := s.rules.location()
	now := s.now().In(loc)
	list, err := s.bookings.FindUpcoming(ctx, userID, model.Day(now, loc), model.ClockOf(now), model.EndOfDay)
	if err != nil {
		return nil, s.storeErr("find upcoming bookings", err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].StartTime < list[j].StartTime })
	return list, nil
}

// FindOverdue returns PENDING bookings created more than cutoff ago.  A
// cutoff of zero selects the configured default.  Admins see every court;
// court owners see only their own courts.
func (s *Scheduler) FindOverdue(ctx context.Context, actor model.Principal, cutoff time.Duration) ([]model.Booking, error) {
	var ownerID uint64
	switch {
	case actor.IsAdmin():
	case actor.HasRole(model.RoleCourtOwner) && actor.UserID != 0:
		ownerID = actor.UserID
	default:
		return nil, newError(KindAccessDenied, "not allowed to read overdue bookings")
	}
	if cutoff <= 0 {
		cutoff = s.overdueCutoff
	}
	list, err := s.bookings.FindByStatusCreatedBefore(ctx, model.StatusPending, s.now().Add(-cutoff), ownerID)
	if err != nil {
		return nil, s.storeErr("find overdue bookings", err)
	}
	return list, nil
}

// ReportOverdue publishes a booking.overdue event for every overdue
// booking and returns how many were reported.  It runs as the system.
func (s *Scheduler) ReportOverdue(ctx context.Context) (int, error) {
	list, err := s.FindOverdue(ctx, model.SystemPrincipal, 0)
	if err != nil {
		return 0, err
	}
	for i := range list {
		s.publish(ctx, model.EventBookingOverdue, &list[i], model.SystemPrincipal.UserID)
	}
	return len(list), nil
}

// Availability returns the booked and free intervals of a court on date.
// Courts without configured hours are treated as open all day.
func (s *Scheduler) Availability(ctx context.Context, courtID uint64, date time.Time) (*model.DayAvailability, error) {
	court, err := s.court(ctx, courtID)
	if err != nil {
		return nil, err
	}
	day := model.Day(date, time.UTC)
	list, err := s.bookings.FindByCourtAndDate(ctx, courtID, day)
	if err != nil {
		return nil, s.storeErr("load court calendar", err)
	}
	hours := court.Hours()
	if hours.End <= hours.Start {
		hours = model.Interval{Start: 0, End: model.EndOfDay}
	}
	booked := []model.Interval{}
	for _, b := range Overlapping(list, model.Interval{Start: 0, End: model.EndOfDay}, 0) {
		booked = append(booked, b.Slot())
	}
	sort.Slice(booked, func(i, j int) bool { return booked[i].Start < booked[j].Start })
	free := []model.Interval{}
	if court.IsActive() {
		free = FreeIntervals(hours, booked)
	}
	return &model.DayAvailability{
		CourtID: courtID,
		Date:    day.Format(model.DateLayout),
		Hours:   hours,
		Booked:  booked,
		Free:    free,
	}, nil
}

func (s *Scheduler) booking(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(KindNotFound, "booking %d not found", id)
	}
	if err != nil {
		return nil, s.storeErr("load booking", err)
	}
	return b, nil
}

func (s *Scheduler) court(ctx context.Context, id uint64) (*model.Court, error) {
	c, err := s.courts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(KindNotFound, "court %d not found", id)
	}
	if err != nil {
		return nil, s.storeErr("load court", err)
	}
	return c, nil
}

// relation resolves how actor relates to b and rejects strangers.
func (s *Scheduler) relation(ctx context.Context, actor model.Principal, b *model.Booking) (Relation, error) {
	var ownerID uint64
	c, err := s.courts.FindByID(ctx, b.CourtID)
	switch {
	case err == nil:
		ownerID = c.OwnerID
	case errors.Is(err, repository.ErrNotFound):
	default:
		return 0, s.storeErr("load court", err)
	}
	rel := RelationOf(actor, b, ownerID)
	if rel == 0 {
		return 0, newError(KindAccessDenied, "not allowed to access booking %d", b.ID)
	}
	return rel, nil
}

func (s *Scheduler) storeErr(op string, err error) error {
	s.log.Error(op, zap.Error(err))
	return unavailable(op, err)
}

func (s *Scheduler) publish(ctx context.Context, t model.EventType, b *model.Booking, actorID uint64) {
	ev := model.NewBookingEvent(t, b, actorID, s.now())
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish booking event",
			zap.String("type", string(t)),
			zap.Uint64("booking_id", b.ID),
			zap.Error(err))
	}
}

func canManage(actor model.Principal, ownerID uint64) bool {
	return actor.IsAdmin() || (actor.UserID != 0 && actor.UserID == ownerID)
}

func conflictError(courtID uint64, date time.Time, start, end model.ClockTime) error {
	return newError(KindBookingConflict, "court %d is already booked on %s between %s and %s",
		courtID, date.Format(model.DateLayout), start, end)
}

func eventFor(st model.Status) model.EventType {
	switch st {
	case model.StatusConfirmed:
		return model.EventBookingConfirmed
	case model.StatusCancelled:
		return model.EventBookingCancelled
	case model.StatusCompleted:
		return model.EventBookingCompleted
	}
	return model.EventBookingCreated
}

// NewReference returns a human readable booking reference such as
// BK-20250610-3F9A2C1D.
func NewReference(date time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("BK-%s-%s", date.Format("20060102"), id[:8])
}
