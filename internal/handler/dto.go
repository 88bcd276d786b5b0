package handler

import (
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// createBookingRequest is the body of POST /v1/bookings.  The amount is
// computed by the pricing collaborator and passed through unchanged.
type createBookingRequest struct {
	CourtID          uint64  `json:"court_id" validate:"required,gt=0"`
	BookingDate      string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime        string  `json:"start_time" validate:"required"`
	EndTime          string  `json:"end_time" validate:"required"`
	TotalAmountCents int64   `json:"total_amount_cents" validate:"gte=0"`
	Notes            *string `json:"notes" validate:"omitempty,max=500"`
}

// updateStatusRequest is the body of PATCH /v1/bookings/:id/status.
type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// bookingResponse is the JSON view of a booking.
type bookingResponse struct {
	ID               uint64          `json:"id"`
	Reference        string          `json:"booking_reference"`
	UserID           uint64          `json:"user_id"`
	CourtID          uint64          `json:"court_id"`
	BookingDate      string          `json:"booking_date"`
	StartTime        model.ClockTime `json:"start_time"`
	EndTime          model.ClockTime `json:"end_time"`
	TotalAmountCents int64           `json:"total_amount_cents"`
	Status           model.Status    `json:"status"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		Reference:        b.Reference,
		UserID:           b.UserID,
		CourtID:          b.CourtID,
		BookingDate:      b.BookingDate.Format(model.DateLayout),
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		TotalAmountCents: b.TotalAmountCents,
		Status:           b.Status,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func toBookingList(list []model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(list))
	for i := range list {
		out = append(out, toBookingResponse(&list[i]))
	}
	return out
}

func toBookingPage(p model.Page[model.Booking]) model.Page[bookingResponse] {
	return model.Page[bookingResponse]{Items: toBookingList(p.Items), Total: p.Total, Page: p.Page, Size: p.Size}
}
