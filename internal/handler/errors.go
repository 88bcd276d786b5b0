package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/court-reservation/internal/service"
)

// statusFor maps a scheduling error kind to an HTTP status.
func statusFor(k service.Kind) int {
	switch k {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindBookingConflict, service.KindInvalidTransition, service.KindCourtUnavailable:
		return http.StatusConflict
	case service.KindPastDate, service.KindInvalidTimeRange, service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusServiceUnavailable
	}
}

// fail writes err as {"error": ..., "kind": ...}.  Infrastructure
// failures are logged and their cause is hidden from the caller.
func fail(c echo.Context, log *zap.Logger, err error) error {
	var se *service.Error
	if !errors.As(err, &se) {
		se = &service.Error{Kind: service.KindUnavailable, Message: "internal error", Err: err}
	}
	status := statusFor(se.Kind)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.JSON(status, echo.Map{"error": "service temporarily unavailable", "kind": string(service.KindUnavailable)})
	}
	log.Debug("request rejected", zap.String("kind", string(se.Kind)), zap.String("reason", se.Message))
	return c.JSON(status, echo.Map{"error": se.Message, "kind": string(se.Kind)})
}

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})

// invalidParam wraps a malformed path or query parameter as a 400.
func invalidParam(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"error": err.Error(), "kind": string(service.KindInvalidInput)})
}

// badRequest answers 400 with an INVALID_INPUT error body.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "kind": string(service.KindInvalidInput)})
}

// validationMessage turns validator errors into one readable sentence.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", fe.Field()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("field %s must match %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
