package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iliyamo/court-reservation/internal/handler/mocks"
	"github.com/iliyamo/court-reservation/internal/middleware"
	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/service"
)

var (
	player = model.Principal{UserID: 100, Roles: []model.Role{model.RoleUser}}
	owner  = model.Principal{UserID: 5, Roles: []model.Role{model.RoleCourtOwner}}
	june1  = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func sampleBooking() *model.Booking {
	created := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	return &model.Booking{
		ID:               7,
		Reference:        "BK-20250601-ABCDEF12",
		UserID:           100,
		CourtID:          1,
		BookingDate:      june1,
		StartTime:        model.Clock(9, 0),
		EndTime:          model.Clock(10, 30),
		TotalAmountCents: 2500,
		Status:           model.StatusPending,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

// newServer registers every handler behind a middleware that installs
// actor, standing in for JWTAuth.  A zero actor means anonymous.
func newServer(t *testing.T, svc Scheduler, actor model.Principal) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	log := zaptest.NewLogger(t)
	bh := NewBookingHandler(svc, log)
	ch := NewCourtHandler(svc, log)

	auth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if actor.UserID != 0 {
				middleware.SetPrincipal(c, actor)
			}
			return next(c)
		}
	}
	e.GET("/v1/courts/:id/availability", ch.Availability)
	g := e.Group("/v1", auth)
	g.POST("/bookings", bh.Create)
	g.GET("/bookings/me", bh.Mine)
	g.GET("/bookings/upcoming", bh.Upcoming)
	g.GET("/bookings/overdue", bh.Overdue)
	g.GET("/bookings/:id", bh.Get)
	g.PATCH("/bookings/:id/status", bh.UpdateStatus)
	g.PATCH("/bookings/:id/confirm", bh.Confirm)
	g.PATCH("/bookings/:id/cancel", bh.Cancel)
	g.PATCH("/bookings/:id/complete", bh.Complete)
	g.GET("/users/:id/bookings", bh.ListByUser)
	g.GET("/courts/:id/conflicts", ch.Conflicts)
	g.GET("/courts/:id/bookings", ch.Bookings)
	g.GET("/courts/:id/statistics", ch.Statistics)
	g.GET("/owners/:id/bookings", ch.OwnerBookings)
	g.GET("/owners/:id/revenue", ch.Revenue)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateBooking(t *testing.T) {
	const valid = `{"court_id":1,"booking_date":"2025-06-01","start_time":"09:00","end_time":"10:30","total_amount_cents":2500,"notes":"doubles"}`

	t.Run("created", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("CreateBooking", mock.Anything, player, mock.MatchedBy(func(r service.CreateRequest) bool {
			return r.CourtID == 1 && r.Date.Equal(june1) && r.Start == model.Clock(9, 0) &&
				r.End == model.Clock(10, 30) && r.TotalAmountCents == 2500 && r.Notes != nil && *r.Notes == "doubles"
		})).Return(sampleBooking(), nil)

		rec := do(newServer(t, svc, player), http.MethodPost, "/v1/bookings", valid)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{
			"id": 7, "booking_reference": "BK-20250601-ABCDEF12", "user_id": 100, "court_id": 1,
			"booking_date": "2025-06-01", "start_time": "09:00", "end_time": "10:30",
			"total_amount_cents": 2500, "status": "PENDING",
			"created_at": "2025-05-30T08:00:00Z", "updated_at": "2025-05-30T08:00:00Z"
		}`, rec.Body.String())
	})

	t.Run("slot taken", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("CreateBooking", mock.Anything, player, mock.Anything).
			Return(nil, &service.Error{Kind: service.KindBookingConflict, Message: "court 1 is already booked on 2025-06-01 between 09:00 and 10:30"})

		rec := do(newServer(t, svc, player), http.MethodPost, "/v1/bookings", valid)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"court 1 is already booked on 2025-06-01 between 09:00 and 10:30","kind":"BOOKING_CONFLICT"}`, rec.Body.String())
	})

	t.Run("store down hides cause", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("CreateBooking", mock.Anything, player, mock.Anything).
			Return(nil, &service.Error{Kind: service.KindUnavailable, Message: "create booking failed", Err: errors.New("dial tcp: refused")})

		rec := do(newServer(t, svc, player), http.MethodPost, "/v1/bookings", valid)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "refused")
	})

	rejects := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"court_id":`, "invalid request body"},
		{"missing court", `{"booking_date":"2025-06-01","start_time":"09:00","end_time":"10:00"}`, "court_id"},
		{"bad date", `{"court_id":1,"booking_date":"01/06/2025","start_time":"09:00","end_time":"10:00"}`, "booking_date"},
		{"bad start", `{"court_id":1,"booking_date":"2025-06-01","start_time":"9am","end_time":"10:00"}`, "start_time"},
		{"bad end", `{"court_id":1,"booking_date":"2025-06-01","start_time":"09:00","end_time":"25:00"}`, "end_time"},
		{"negative amount", `{"court_id":1,"booking_date":"2025-06-01","start_time":"09:00","end_time":"10:00","total_amount_cents":-1}`, "total_amount_cents"},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewScheduler(t)
			rec := do(newServer(t, svc, player), http.MethodPost, "/v1/bookings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), `"kind":"INVALID_INPUT"`)
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		rec := do(newServer(t, svc, model.Principal{}), http.MethodPost, "/v1/bookings", valid)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestStatusFor(t *testing.T) {
	tests := map[service.Kind]int{
		service.KindNotFound:          http.StatusNotFound,
		service.KindCourtUnavailable:  http.StatusConflict,
		service.KindPastDate:          http.StatusBadRequest,
		service.KindInvalidTimeRange:  http.StatusBadRequest,
		service.KindBookingConflict:   http.StatusConflict,
		service.KindInvalidTransition: http.StatusConflict,
		service.KindAccessDenied:      http.StatusForbidden,
		service.KindInvalidInput:      http.StatusBadRequest,
		service.KindUnavailable:       http.StatusServiceUnavailable,
	}
	for kind, want := range tests {
		assert.Equal(t, want, statusFor(kind), kind)
	}
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		path   string
		method string
	}{
		{"/v1/bookings/7/confirm", "ConfirmBooking"},
		{"/v1/bookings/7/cancel", "CancelBooking"},
		{"/v1/bookings/7/complete", "CompleteBooking"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			svc := mocks.NewScheduler(t)
			b := sampleBooking()
			b.Status = model.StatusConfirmed
			svc.On(tt.method, mock.Anything, owner, uint64(7)).Return(b, nil)

			rec := do(newServer(t, svc, owner), http.MethodPatch, tt.path, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"CONFIRMED"`)
		})
	}

	t.Run("invalid transition", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("CompleteBooking", mock.Anything, owner, uint64(7)).
			Return(nil, &service.Error{Kind: service.KindInvalidTransition, Message: "cannot complete a PENDING booking"})
		rec := do(newServer(t, svc, owner), http.MethodPatch, "/v1/bookings/7/complete", "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"kind":"INVALID_TRANSITION"`)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		rec := do(newServer(t, svc, owner), http.MethodPatch, "/v1/bookings/abc/cancel", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid id","kind":"INVALID_INPUT"}`, rec.Body.String())
	})
}

func TestUpdateStatus(t *testing.T) {
	svc := mocks.NewScheduler(t)
	b := sampleBooking()
	b.Status = model.StatusCancelled
	svc.On("UpdateStatus", mock.Anything, player, uint64(7), model.StatusCancelled).Return(b, nil)
	e := newServer(t, svc, player)

	rec := do(e, http.MethodPatch, "/v1/bookings/7/status", `{"status":" cancelled "}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPatch, "/v1/bookings/7/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "field status is required")
}

func TestGetBooking_AccessDenied(t *testing.T) {
	svc := mocks.NewScheduler(t)
	svc.On("GetBooking", mock.Anything, player, uint64(9)).
		Return(nil, &service.Error{Kind: service.KindAccessDenied, Message: "not allowed to view booking 9"})
	rec := do(newServer(t, svc, player), http.MethodGet, "/v1/bookings/9", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListings(t *testing.T) {
	page := model.Page[model.Booking]{Items: []model.Booking{*sampleBooking()}, Total: 41, Page: 2, Size: 20}

	t.Run("mine", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("ListMine", mock.Anything, player, 2, 20).Return(page, nil)
		rec := do(newServer(t, svc, player), http.MethodGet, "/v1/bookings/me?page=2&size=20", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":41`)
		assert.Contains(t, rec.Body.String(), `"booking_reference":"BK-20250601-ABCDEF12"`)
	})
	t.Run("by user", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("ListByUser", mock.Anything, player, uint64(100), 0, 0).Return(page, nil)
		rec := do(newServer(t, svc, player), http.MethodGet, "/v1/users/100/bookings", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("by court", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("ListByCourt", mock.Anything, owner, uint64(1), 0, 50).Return(page, nil)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/courts/1/bookings?size=50", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("by owner with default window", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("ListByOwner", mock.Anything, owner, uint64(5), (*time.Time)(nil), (*time.Time)(nil), 0, 0).Return(page, nil)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/owners/5/bookings", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("by owner with bad date", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/owners/5/bookings?start=June", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpcomingAndOverdue(t *testing.T) {
	t.Run("upcoming defaults to caller", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("FindUpcoming", mock.Anything, player, uint64(100)).Return([]model.Booking{*sampleBooking()}, nil)
		rec := do(newServer(t, svc, player), http.MethodGet, "/v1/bookings/upcoming", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[{"id":7`)
	})
	t.Run("upcoming for another user", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("FindUpcoming", mock.Anything, player, uint64(101)).
			Return(nil, &service.Error{Kind: service.KindAccessDenied, Message: "not allowed"})
		rec := do(newServer(t, svc, player), http.MethodGet, "/v1/bookings/upcoming?user_id=101", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
	t.Run("overdue with cutoff", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("FindOverdue", mock.Anything, owner, 2*time.Hour).Return([]model.Booking{}, nil)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/bookings/overdue?cutoff=2h", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	})
	t.Run("overdue with bad cutoff", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/bookings/overdue?cutoff=-1h", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAvailability(t *testing.T) {
	svc := mocks.NewScheduler(t)
	svc.On("Availability", mock.Anything, uint64(1), june1).Return(&model.DayAvailability{
		CourtID: 1,
		Date:    "2025-06-01",
		Hours:   model.Interval{Start: model.Clock(6, 0), End: model.Clock(22, 0)},
		Booked:  []model.Interval{{Start: model.Clock(9, 0), End: model.Clock(10, 30)}},
		Free: []model.Interval{
			{Start: model.Clock(6, 0), End: model.Clock(9, 0)},
			{Start: model.Clock(10, 30), End: model.Clock(22, 0)},
		},
	}, nil)
	e := newServer(t, svc, model.Principal{})

	rec := do(e, http.MethodGet, "/v1/courts/1/availability?date=2025-06-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"court_id": 1, "date": "2025-06-01",
		"operating_hours": {"start": "06:00", "end": "22:00"},
		"booked": [{"start": "09:00", "end": "10:30"}],
		"free": [{"start": "06:00", "end": "09:00"}, {"start": "10:30", "end": "22:00"}]
	}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/v1/courts/1/availability", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConflicts(t *testing.T) {
	svc := mocks.NewScheduler(t)
	svc.On("HasConflict", mock.Anything, uint64(1), june1, model.Clock(10, 0), model.Clock(11, 0), uint64(7)).Return(true, nil)
	svc.On("HasConflict", mock.Anything, uint64(1), june1, model.Clock(10, 30), model.Clock(11, 0), uint64(0)).Return(false, nil)
	e := newServer(t, svc, player)

	rec := do(e, http.MethodGet, "/v1/courts/1/conflicts?date=2025-06-01&start=10:00&end=11:00&exclude=7", "")
	assert.JSONEq(t, `{"conflict":true}`, rec.Body.String())
	rec = do(e, http.MethodGet, "/v1/courts/1/conflicts?date=2025-06-01&start=10:30&end=11:00", "")
	assert.JSONEq(t, `{"conflict":false}`, rec.Body.String())
	rec = do(e, http.MethodGet, "/v1/courts/1/conflicts?date=2025-06-01&start=10&end=11:00", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatistics(t *testing.T) {
	t.Run("revenue", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
		svc.On("RevenueStatistics", mock.Anything, owner, uint64(5), june1, end).Return(&model.RevenueReport{
			OwnerID: 5, StartDate: "2025-06-01", EndDate: "2025-06-30",
			Courts:   []model.CourtRevenue{{CourtID: 1, CourtName: "Court A", Bookings: 2, TotalCents: 3000}},
			Bookings: 2, TotalCents: 3000,
		}, nil)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/owners/5/revenue?start=2025-06-01&end=2025-06-30", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_amount_cents":3000`)
	})
	t.Run("revenue needs both dates", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/owners/5/revenue?start=2025-06-01", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("court", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("CourtStatistics", mock.Anything, owner, uint64(1)).Return(&model.CourtStatistics{
			CourtID: 1, CourtName: "Court A", Total: 3,
			ByStatus: map[model.Status]int64{model.StatusPending: 1, model.StatusConfirmed: 1, model.StatusCancelled: 1, model.StatusCompleted: 0},
		}, nil)
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/courts/1/statistics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"COMPLETED":0`)
	})
	t.Run("court not found", func(t *testing.T) {
		svc := mocks.NewScheduler(t)
		svc.On("CourtStatistics", mock.Anything, owner, uint64(99)).
			Return(nil, &service.Error{Kind: service.KindNotFound, Message: "court 99 not found"})
		rec := do(newServer(t, svc, owner), http.MethodGet, "/v1/courts/99/statistics", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/up", Health(pinger{}))
	e.GET("/down", Health(pinger{err: errors.New("gone")}))
	e.GET("/live", Health(nil))

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/up", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(e, http.MethodGet, "/down", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/live", "").Code)
}
