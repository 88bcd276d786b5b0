package queue

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/repository"
	"github.com/iliyamo/court-reservation/internal/service"
)

// Confirmer confirms bookings; *service.Scheduler implements it.
type Confirmer interface {
	ConfirmBooking(ctx context.Context, actor model.Principal, id uint64) (*model.Booking, error)
}

// BookingLookup resolves a booking reference; *repository.BookingRepo
// implements it.
type BookingLookup interface {
	FindByReference(ctx context.Context, ref string) (*model.Booking, error)
}

// Ledger remembers processed message ids; *repository.ProcessedEventRepo
// implements it.
type Ledger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, eventID string, bookingID uint64) error
}

// PaymentHandler confirms the booking named in a payment.paid message.
// Confirmation runs as the system principal through the normal lifecycle,
// so a booking that was cancelled in the meantime is left alone.
// Redelivered messages are recognised by their idempotency key.
type PaymentHandler struct {
	bookings Confirmer
	lookup   BookingLookup
	ledger   Ledger
	log      *zap.Logger
}

// NewPaymentHandler wires a PaymentHandler.
func NewPaymentHandler(bookings Confirmer, lookup BookingLookup, ledger Ledger, log *zap.Logger) *PaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentHandler{bookings: bookings, lookup: lookup, ledger: ledger, log: log.Named("payments")}
}

// Handle is the Handler for the payment queue.
func (h *PaymentHandler) Handle(ctx context.Context, body []byte) error {
	msg, err := decode[PaymentPaid](body)
	if err != nil {
		return err
	}
	key := msg.Key()
	if key == "" {
		return errors.New("payment message without event_id or payment_id")
	}
	log := h.log.With(zap.String("event_id", key))

	seen, err := h.ledger.Seen(ctx, key)
	if err != nil {
		return fmt.Errorf("check ledger: %w: %v", ErrRequeue, err)
	}
	if seen {
		log.Debug("duplicate payment message ignored")
		return nil
	}

	id, err := h.bookingID(ctx, msg)
	if err != nil {
		return err
	}
	log = log.With(zap.Uint64("booking_id", id))

	_, err = h.bookings.ConfirmBooking(ctx, model.SystemPrincipal, id)
	switch {
	case err == nil:
		log.Info("booking confirmed by payment", zap.Int64("amount_cents", msg.AmountCents))
	case errors.Is(err, service.ErrInvalidTransition):
		// already confirmed by an earlier delivery, or cancelled meanwhile
		log.Info("payment for booking that is no longer pending", zap.Error(err))
	case errors.Is(err, service.ErrNotFound):
		log.Warn("payment for unknown booking", zap.Error(err))
		return nil
	case errors.Is(err, service.ErrUnavailable):
		return fmt.Errorf("confirm booking: %w: %v", ErrRequeue, err)
	default:
		return fmt.Errorf("confirm booking: %w", err)
	}

	if err := h.ledger.Record(ctx, key, id); err != nil && !errors.Is(err, repository.ErrAlreadyProcessed) {
		// the booking is confirmed; a redelivery would only hit InvalidTransition
		log.Warn("record processed payment failed", zap.Error(err))
	}
	return nil
}

func (h *PaymentHandler) bookingID(ctx context.Context, msg PaymentPaid) (uint64, error) {
	if msg.BookingID != 0 {
		return msg.BookingID, nil
	}
	if msg.BookingReference == "" {
		return 0, errors.New("payment message without booking_id or booking_reference")
	}
	b, err := h.lookup.FindByReference(ctx, msg.BookingReference)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return 0, fmt.Errorf("unknown booking reference %q", msg.BookingReference)
	case err != nil:
		return 0, fmt.Errorf("lookup booking: %w: %v", ErrRequeue, err)
	}
	return b.ID, nil
}
