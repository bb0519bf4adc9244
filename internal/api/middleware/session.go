package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

const (
	// SessionCookie carries the signed session ID between dashboard and gateway.
	SessionCookie = "noty_session"
	// SessionHeader is the non-browser alternative to the cookie.
	SessionHeader = "X-Session-Token"

	sessionContextKey = "session"
)

// ResolveSession maps the request's session credential to its session store
// and waits for startup verification to settle before any guard decision is
// made — a restored session is never observed mid-initialization. Requests
// without a credential pass through; the guards below decide what that means
// per route.
func ResolveSession(registry ports.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			signed := SessionCredential(c)
			if signed == "" {
				return next(c)
			}
			sess, err := registry.Resolve(c.Request().Context(), signed)
			if err != nil {
				// Invalid or expired signature: treated as no session at all.
				return next(c)
			}
			sess.EnsureReady(c.Request().Context())
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionCredential extracts the signed session ID from cookie or header.
func SessionCredential(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.Request().Header.Get(SessionHeader)
}

// SessionFrom returns the resolved session, if any.
func SessionFrom(c echo.Context) (ports.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(ports.Session)
	return sess, ok
}
