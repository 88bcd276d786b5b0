package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CourtHandler serves the court and owner scoped routes: the public day
// calendar, conflict probes, per-court statistics and owner reports.
type CourtHandler struct {
	svc Scheduler
	log *zap.Logger
}

// NewCourtHandler constructs a CourtHandler and panics if svc is nil.
func NewCourtHandler(svc Scheduler, log *zap.Logger) *CourtHandler {
	if svc == nil {
		panic("nil scheduler passed to NewCourtHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CourtHandler{svc: svc, log: log.Named("http")}
}

// Availability handles GET /v1/courts/:id/availability?date=YYYY-MM-DD.
// It is public and served through the response cache.
func (h *CourtHandler) Availability(c echo.Context) error {
	courtID, err := pathID(c, "id")
	if err != nil {
		return invalidParam(err)
	}
	date, err := dateParam(c, "date")
	if err != nil {
		return invalidParam(err)
	}
	if date == nil {
		return badRequest(c, "date is required")
	}
	day, err := h.svc.Availability(c.Request().Context(), courtID, *date)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, day)
}

// Conflicts handles GET /v1/courts/:id/conflicts?date=&start=&end=&exclude=.
// It answers {"conflict": true} when an active booking overlaps the slot.
func (h *CourtHandler) Conflicts(c echo.Context) error {
	if _, err := principal(c); err != nil {
		return errUnauthorized
	}
	courtID, err := pathID(c, "id")
	if err != nil {
		return invalidParam(err)
	}
	date, err := dateParam(c, "date")
	if err != nil {
		return invalidParam(err)
	}
	if date == nil {
		return badRequest(c, "date is required")
	}
	start, err := clockParam(c, "start")
	if err != nil {
		return invalidParam(err)
	}
	end, err := clockParam(c, "end")
	if err != nil {
		return invalidParam(err)
	}
	var exclude uint64
	if raw := c.QueryParam("exclude"); raw != "" {
		if exclude, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return badRequest(c, "invalid exclude")
		}
	}
	busy, err := h.svc.HasConflict(c.Request().Context(), courtID, *date, start, end, exclude)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"conflict": busy})
}

// Bookings handles GET /v1/courts/:id/bookings?page=&size=.
func (h *CourtHandler) Bookings(c echo.Context) error {
	actor, courtID, err := target(c)
	if err != nil {
		return err
	}
	page, size := pageParams(c)
	res, err := h.svc.ListByCourt(c.Request().Context(), actor, courtID, page, size)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingPage(res))
}

// Statistics handles GET /v1/courts/:id/statistics.
func (h *CourtHandler) Statistics(c echo.Context) error {
	actor, courtID, err := target(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.CourtStatistics(c.Request().Context(), actor, courtID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// OwnerBookings handles GET /v1/owners/:id/bookings?start=&end=&page=&size=.
// Missing dates select the default window of the scheduler.
func (h *CourtHandler) OwnerBookings(c echo.Context) error {
	actor, ownerID, err := target(c)
	if err != nil {
		return err
	}
	from, err := dateParam(c, "start")
	if err != nil {
		return invalidParam(err)
	}
	to, err := dateParam(c, "end")
	if err != nil {
		return invalidParam(err)
	}
	page, size := pageParams(c)
	res, err := h.svc.ListByOwner(c.Request().Context(), actor, ownerID, from, to, page, size)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, toBookingPage(res))
}

// Revenue handles GET /v1/owners/:id/revenue?start=&end=.  Both dates are
// required and inclusive.
func (h *CourtHandler) Revenue(c echo.Context) error {
	actor, ownerID, err := target(c)
	if err != nil {
		return err
	}
	from, err := dateParam(c, "start")
	if err != nil {
		return invalidParam(err)
	}
	to, err := dateParam(c, "end")
	if err != nil {
		return invalidParam(err)
	}
	if from == nil || to == nil {
		return badRequest(c, "start and end are required")
	}
	report, err := h.svc.RevenueStatistics(c.Request().Context(), actor, ownerID, *from, *to)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, report)
}
