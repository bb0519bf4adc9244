package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// AutomationHandler proxies automation run monitoring and manual triggers.
// Scheduling itself lives in the billing backend.
type AutomationHandler struct {
	api backend.AutomationAPI
}

func NewAutomationHandler(client *backend.Client) *AutomationHandler {
	return &AutomationHandler{api: client.Automation()}
}

func (h *AutomationHandler) ListRuns(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	page, err := h.api.ListRuns(c.Request().Context(), sess, backend.RunFilter{
		ListOptions: listOptions(c),
		Automation:  c.QueryParam("automation"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *AutomationHandler) GetRun(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	run, err := h.api.GetRun(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

type triggerRequest struct {
	Automation string `json:"automation" validate:"required"`
}

// Trigger starts an out-of-schedule run.
func (h *AutomationHandler) Trigger(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req triggerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	run, err := h.api.Trigger(c.Request().Context(), sess, req.Automation)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, run)
}
