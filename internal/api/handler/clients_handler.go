package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// ClientsHandler proxies client management to the billing backend. No
// caching, no business rules: binding in, envelope-decoded records out.
type ClientsHandler struct {
	api backend.ClientsAPI
}

func NewClientsHandler(client *backend.Client) *ClientsHandler {
	return &ClientsHandler{api: client.Clients()}
}

func (h *ClientsHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	page, err := h.api.List(c.Request().Context(), sess, listOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ClientsHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	client, err := h.api.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (h *ClientsHandler) Create(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var input backend.ClientInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	client, err := h.api.Create(c.Request().Context(), sess, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

func (h *ClientsHandler) Update(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var input backend.ClientInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	client, err := h.api.Update(c.Request().Context(), sess, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (h *ClientsHandler) Delete(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	if err := h.api.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
