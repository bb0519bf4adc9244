package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// SettingsHandler proxies the configuration entries (payment gateway,
// WhatsApp sender, automation switches). Admin only, enforced by the router.
type SettingsHandler struct {
	api backend.SettingsAPI
}

func NewSettingsHandler(client *backend.Client) *SettingsHandler {
	return &SettingsHandler{api: client.Settings()}
}

func (h *SettingsHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	entries, err := h.api.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *SettingsHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	entry, err := h.api.Get(c.Request().Context(), sess, c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

type settingRequest struct {
	Value       string `json:"value" validate:"required"`
	Description string `json:"description,omitempty"`
}

func (h *SettingsHandler) Upsert(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req settingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entry, err := h.api.Upsert(c.Request().Context(), sess, c.Param("key"), backend.SettingInput{
		Value:       req.Value,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
