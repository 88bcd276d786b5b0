package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/service"
)

// Scheduler is the part of *service.Scheduler the HTTP layer uses.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Scheduler
type Scheduler interface {
	CreateBooking(ctx context.Context, actor model.Principal, req service.CreateRequest) (*model.Booking, error)
	GetBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, actor model.Principal, id uint64, to model.Status) (*model.Booking, error)
	ConfirmBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error)
	CancelBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error)
	CompleteBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error)
	ListMine(ctx context.Context, actor model.Principal, page, size int) (model.Page[model.Booking], error)
	ListByUser(ctx context.Context, actor model.Principal, userID uint64, page, size int) (model.Page[model.Booking], error)
	ListByCourt(ctx context.Context, actor model.Principal, courtID uint64, page, size int) (model.Page[model.Booking], error)
	ListByOwner(ctx context.Context, actor model.Principal, ownerID uint64, from, to *time.Time, page, size int) (model.Page[model.Booking], error)
	FindUpcoming(ctx context.Context, actor model.Principal, userID uint64) ([]model.Booking, error)
	FindOverdue(ctx context.Context, actor model.Principal, cutoff time.Duration) ([]model.Booking, error)
	HasConflict(ctx context.Context, courtID uint64, date time.Time, start, end model.ClockTime, excludeID uint64) (bool, error)
	Availability(ctx context.Context, courtID uint64, date time.Time) (*model.DayAvailability, error)
	RevenueStatistics(ctx context.Context, actor model.Principal, ownerID uint64, start, end time.Time) (*model.RevenueReport, error)
	CourtStatistics(ctx context.Context, actor model.Principal, courtID uint64) (*model.CourtStatistics, error)
}

// BookingHandler serves the /v1/bookings and /v1/users routes.  All
// methods expect JWTAuth to have run; access rules beyond the role guard
// are enforced by the scheduler.
type BookingHandler struct {
	svc Scheduler
	log *zap.Logger
}

// NewBookingHandler constructs a BookingHandler and panics if svc is nil.
func NewBookingHandler(svc Scheduler, log *zap.Logger) *BookingHandler {
	if svc == nil {
		panic("nil scheduler passed to NewBookingHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{svc: svc, log: log.Named("http")}
}

// Create handles POST /v1/bookings.  It returns 201 with the new PENDING
// booking, 409 when the slot is taken and 400 for time rule violations.
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return errUnauthorized
	}
	var body createBookingRequest
	if msg := bindValid(c, &body); msg != "" {
		return badRequest(c, msg)
	}
	date, err := model.ParseDay(body.BookingDate)
	if err != nil {
		return badRequest(c, "booking_date must be a date in YYYY-MM-DD format")
	}
	start, err := model.ParseClock(body.StartTime)
	if err != nil {
		return badRequest(c, "start_time must be a time in HH:MM format")
	}
	end, err := model.ParseClock(body.EndTime)
	if err != nil {
		return badRequest(c, "end_time must be a time in HH:MM format")
	}

	b, err := h.svc.CreateBooking(c.Request().Context(), actor, service.CreateRequest{
		CourtID:          body.CourtID,
		Date:             date,
		Start:            start,
		End:              end,
		TotalAmountCents: body.TotalAmountCents,
		Notes:            body.Notes,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	actor, id, err := target(c)
	if err != nil {
		return err
	}
	b, err := h.svc.GetBooking(c.Request().Context(), actor, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// UpdateStatus handles PATCH /v1/bookings/:id/status with a body like
// {"status":"CONFIRMED"}.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	actor, id, err := target(c)
	if err != nil {
		return err
	}
	var body updateStatusRequest
	if msg := bindValid(c, &body); msg != "" {
		return badRequest(c, msg)
	}
	to := model.Status(strings.ToUpper(strings.TrimSpace(body.Status)))
	b, err := h.svc.UpdateStatus(c.Request().Context(), actor, id, to)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Confirm handles PATCH /v1/bookings/:id/confirm.
func (h *BookingHandler) Confirm(c echo.Context) error { return h.transition(c, h.svc.ConfirmBooking) }

// Cancel handles PATCH /v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error { return h.transition(c, h.svc.CancelBooking) }

// Complete handles PATCH /v1/bookings/:id/complete.
func (h *BookingHandler) Complete(c echo.Context) error { return h.transition(c, h.svc.CompleteBooking) }

func (h *BookingHandler) transition(c echo.Context, op func(context.Context, model.Principal, uint64) (*model.Booking, error)) error {
	actor, id, err := target(c)
	if err != nil {
		return err
	}
	b, err := op(c.Request().Context(), actor, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Mine handles GET /v1/bookings/me?page=&size=.
func (h *BookingHandler) Mine(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return errUnauthorized
	}
	page, size := pageParams(c)
	res, err := h.svc.ListMine(c.Request().Context(), actor, page, size)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingPage(res))
}

// Upcoming handles GET /v1/bookings/upcoming.  Admins may pass ?user_id=
// to look at another user.
func (h *BookingHandler) Upcoming(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return errUnauthorized
	}
	userID := actor.UserID
	if raw := c.QueryParam("user_id"); raw != "" {
		if userID, err = strconv.ParseUint(raw, 10, 64); err != nil || userID == 0 {
			return badRequest(c, "invalid user_id")
		}
	}
	list, err := h.svc.FindUpcoming(c.Request().Context(), actor, userID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toBookingList(list)})
}

// Overdue handles GET /v1/bookings/overdue?cutoff=24h.  Without cutoff the
// configured default applies.
func (h *BookingHandler) Overdue(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return errUnauthorized
	}
	var cutoff time.Duration
	if raw := c.QueryParam("cutoff"); raw != "" {
		if cutoff, err = time.ParseDuration(raw); err != nil || cutoff <= 0 {
			return badRequest(c, "cutoff must be a positive duration such as 24h")
		}
	}
	list, err := h.svc.FindOverdue(c.Request().Context(), actor, cutoff)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toBookingList(list)})
}

// ListByUser handles GET /v1/users/:id/bookings.
func (h *BookingHandler) ListByUser(c echo.Context) error {
	actor, userID, err := target(c)
	if err != nil {
		return err
	}
	page, size := pageParams(c)
	res, err := h.svc.ListByUser(c.Request().Context(), actor, userID, page, size)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingPage(res))
}
