package service

import (
	"errors"
	"fmt"
)

// Kind classifies a scheduling failure.  Every kind except KindUnavailable
// is a caller error that maps to a 4xx response.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindCourtUnavailable  Kind = "COURT_UNAVAILABLE"
	KindPastDate          Kind = "PAST_DATE"
	KindInvalidTimeRange  Kind = "INVALID_TIME_RANGE"
	KindBookingConflict   Kind = "BOOKING_CONFLICT"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindAccessDenied      Kind = "ACCESS_DENIED"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindUnavailable       Kind = "UNAVAILABLE"
)

// Error is returned by every Scheduler operation.  Message is safe to show
// to the caller; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind && t.Message == ""
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrCourtUnavailable  = &Error{Kind: KindCourtUnavailable}
	ErrPastDate          = &Error{Kind: KindPastDate}
	ErrInvalidTimeRange  = &Error{Kind: KindInvalidTimeRange}
	ErrBookingConflict   = &Error{Kind: KindBookingConflict}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrAccessDenied      = &Error{Kind: KindAccessDenied}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrUnavailable       = &Error{Kind: KindUnavailable}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func unavailable(op string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: op + " failed", Err: err}
}

// KindOf extracts the kind of err.  Errors that did not originate here are
// reported as KindUnavailable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}
