package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/faridcreations/booking-api/internal/api/middleware"
	"github.com/faridcreations/booking-api/internal/core/domain"
)

// ctxUserID returns the token subject injected by the Auth middleware. An
// empty subject means the route was mounted without Auth.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
