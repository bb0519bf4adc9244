package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
)

// errorResponse is the canonical error envelope for all gateway errors.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps session and backend errors to their appropriate HTTP status codes.
//   - Passes backend rejections through untranslated: the message belongs to
//     the billing backend, rendering it belongs to the dashboard.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Session purged by the global 401 policy, or no session at all. The
	// requested location rides along for the post-login redirect.
	if errors.Is(err, domain.ErrUnauthenticated) {
		return http.StatusUnauthorized, errorResponse{
			Error:   domain.ErrUnauthenticated.Error(),
			Details: []string{"from=" + c.Request().URL.RequestURI()},
		}
	}
	if errors.Is(err, domain.ErrForbidden) {
		return http.StatusForbidden, errorResponse{Error: domain.ErrForbidden.Error()}
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrSessionNotFound.Error()}
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()}
	}

	// Backend rejection: propagate status and message untouched.
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, errorResponse{Error: apiErr.Message, Details: apiErr.Details}
	}

	// Backend unreachable or garbled: the gateway is fine, the upstream is not.
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) {
		log.Warn().Err(transportErr).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("backend unreachable")
		return http.StatusBadGateway, errorResponse{Error: "billing backend unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
