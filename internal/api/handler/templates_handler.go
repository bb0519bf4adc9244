package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// TemplatesHandler proxies outreach message template management.
type TemplatesHandler struct {
	api backend.TemplatesAPI
}

func NewTemplatesHandler(client *backend.Client) *TemplatesHandler {
	return &TemplatesHandler{api: client.Templates()}
}

type templateRequest struct {
	Name    string `json:"name" validate:"required"`
	Channel string `json:"channel" validate:"required,oneof=whatsapp email sms"`
	Body    string `json:"body" validate:"required"`
	Active  bool   `json:"active"`
}

func (r templateRequest) input() backend.TemplateInput {
	return backend.TemplateInput{Name: r.Name, Channel: r.Channel, Body: r.Body, Active: r.Active}
}

func (h *TemplatesHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	templates, err := h.api.List(c.Request().Context(), sess, listOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}

func (h *TemplatesHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	template, err := h.api.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

func (h *TemplatesHandler) Create(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	template, err := h.api.Create(c.Request().Context(), sess, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, template)
}

func (h *TemplatesHandler) Update(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	template, err := h.api.Update(c.Request().Context(), sess, c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

func (h *TemplatesHandler) Delete(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.api.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type previewRequest struct {
	Variables map[string]string `json:"variables"`
}

// Preview renders the template against sample variables backend-side.
func (h *TemplatesHandler) Preview(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	preview, err := h.api.Preview(c.Request().Context(), sess, c.Param("id"), req.Variables)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"preview": preview})
}
