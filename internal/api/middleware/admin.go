package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly rejects callers whose token does not carry is_admin. It must run
// after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isAdmin, _ := c.Get(CtxIsAdmin).(bool); !isAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
