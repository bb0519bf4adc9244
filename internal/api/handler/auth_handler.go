package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/api/metrics"
	mw "github.com/Jorge-Nunes/noty-sub001/internal/api/middleware"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// AuthHandler owns the session endpoints: login, logout, current profile.
type AuthHandler struct {
	registry   ports.SessionRegistry
	cookieTTL  time.Duration
	secureCkie bool
}

func NewAuthHandler(registry ports.SessionRegistry, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{registry: registry, cookieTTL: cookieTTL, secureCkie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// From is the location the dashboard was trying to reach before being
	// sent to login; echoed back so it can return there.
	From string `json:"from,omitempty"`
}

type loginResponse struct {
	User       *domain.User `json:"user"`
	RedirectTo string       `json:"redirect_to,omitempty"`
}

// Login authenticates against the billing backend and hands the dashboard a
// signed session cookie. A failed login leaves no session behind.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, sess, err := h.registry.Open(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	c.SetCookie(h.sessionCookie(signed, h.cookieTTL))
	return c.JSON(http.StatusOK, loginResponse{
		User:       sess.User(),
		RedirectTo: req.From,
	})
}

// Logout destroys the session. Safe to call repeatedly.
func (h *AuthHandler) Logout(c echo.Context) error {
	if signed := mw.SessionCredential(c); signed != "" {
		h.registry.Close(c.Request().Context(), signed)
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current operator profile, re-fetched best-effort so role or
// activation changes made backend-side show up without a re-login.
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	sess.RefreshUser(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]*domain.User{"user": sess.User()})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCkie,
		SameSite: http.SameSiteLaxMode,
	}
}
