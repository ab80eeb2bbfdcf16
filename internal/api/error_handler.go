package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/api/metrics"
	"github.com/faridcreations/booking-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// Client input: the wrapped message names the offending field.
	case errors.Is(err, domain.ErrInvalidDateFormat),
		errors.Is(err, domain.ErrInvalidAddOn),
		errors.Is(err, domain.ErrMissingKeyField),
		errors.Is(err, domain.ErrImageRequired),
		errors.Is(err, domain.ErrMissingCategoryField),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrInvalidResetToken):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, domain.ErrDuplicateBooking):
		metrics.BookingConflictsTotal.Inc()
		return http.StatusConflict, domain.ErrDuplicateBooking.Error()
	case errors.Is(err, domain.ErrSlotUnavailable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"

	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "booking not found"
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "appointment not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrNoResults):
		return http.StatusNotFound, "no results found"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"

	case errors.Is(err, domain.ErrUploadsDisabled):
		return http.StatusServiceUnavailable, "image uploads are not configured"
	}

	// Dependency failures are logged with their cause but reported generically.
	l := log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path())

	switch {
	case errors.Is(err, domain.ErrNotificationFailure):
		l.Msg("notification failed")
		return http.StatusBadGateway, "notification could not be sent"
	case errors.Is(err, domain.ErrStoreFailure):
		l.Msg("store failure")
		return http.StatusServiceUnavailable, "storage is unavailable"
	}

	l.Msg("unhandled error")
	return http.StatusInternalServerError, "internal server error"
}
