package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// TrackingHandler proxies the vehicle-tracking integration settings and the
// block/unblock passthroughs. Blocking rules are decided backend-side.
type TrackingHandler struct {
	api backend.TrackingAPI
}

func NewTrackingHandler(client *backend.Client) *TrackingHandler {
	return &TrackingHandler{api: client.Tracking()}
}

func (h *TrackingHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	integration, err := h.api.Get(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, integration)
}

type trackingRequest struct {
	Provider string `json:"provider" validate:"required"`
	BaseURL  string `json:"base_url" validate:"required,url"`
	APIKey   string `json:"api_key,omitempty"`
	Enabled  bool   `json:"enabled"`
}

func (h *TrackingHandler) Update(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req trackingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	integration, err := h.api.Update(c.Request().Context(), sess, backend.TrackingInput{
		Provider: req.Provider,
		BaseURL:  req.BaseURL,
		APIKey:   req.APIKey,
		Enabled:  req.Enabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, integration)
}

func (h *TrackingHandler) TestConnection(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	result, err := h.api.TestConnection(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *TrackingHandler) BlockVehicle(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.api.BlockVehicle(c.Request().Context(), sess, c.Param("plate")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TrackingHandler) UnblockVehicle(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.api.UnblockVehicle(c.Request().Context(), sess, c.Param("plate")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
