package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/Jorge-Nunes/noty-sub001/internal/api/middleware"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// currentSession extracts the session resolved by the middleware chain and
// fast-fails when it is missing. Handlers behind the guard should never see
// the error path; it exists so a misordered route cannot reach the backend
// without a credential.
func currentSession(c echo.Context) (ports.Session, error) {
	sess, ok := mw.SessionFrom(c)
	if !ok || !sess.IsAuthenticated() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
