package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/api/metrics"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
)

// deniedResponse is the guard's answer when a request may not proceed. From
// is only set on authentication failures: it echoes the originally requested
// location so the dashboard can return there after a successful login.
type deniedResponse struct {
	Error string `json:"error"`
	From  string `json:"from,omitempty"`
}

// Authenticated rejects requests without an authenticated session. The guard
// holds no state of its own: it is a pure function of the session resolved by
// ResolveSession and the requested location.
func Authenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok || !sess.IsAuthenticated() {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return c.JSON(http.StatusUnauthorized, deniedResponse{
					Error: domain.ErrUnauthenticated.Error(),
					From:  c.Request().URL.RequestURI(),
				})
			}
			return next(c)
		}
	}
}

// MinRole enforces the role order viewer < operator < admin. A strictly lower
// rank gets an access-denied answer, not a login redirect: the operator is
// authenticated, just insufficiently privileged.
func MinRole(min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok || !sess.IsAuthenticated() {
				metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return c.JSON(http.StatusUnauthorized, deniedResponse{
					Error: domain.ErrUnauthenticated.Error(),
					From:  c.Request().URL.RequestURI(),
				})
			}
			user := sess.User()
			if user == nil || !user.Role.AtLeast(min) {
				metrics.GuardDenialsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, deniedResponse{
					Error: domain.ErrForbidden.Error(),
				})
			}
			return next(c)
		}
	}
}
