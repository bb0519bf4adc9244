package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// WebhooksHandler exposes the backend's webhook activity log read-only.
type WebhooksHandler struct {
	api backend.WebhooksAPI
}

func NewWebhooksHandler(client *backend.Client) *WebhooksHandler {
	return &WebhooksHandler{api: client.Webhooks()}
}

func (h *WebhooksHandler) ListActivity(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	page, err := h.api.ListActivity(c.Request().Context(), sess, backend.ActivityFilter{
		ListOptions: listOptions(c),
		Source:      c.QueryParam("source"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *WebhooksHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	entry, err := h.api.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}
