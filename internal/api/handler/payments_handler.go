package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// PaymentsHandler proxies payment listing and the charge/mark-paid actions.
type PaymentsHandler struct {
	api backend.PaymentsAPI
}

func NewPaymentsHandler(client *backend.Client) *PaymentsHandler {
	return &PaymentsHandler{api: client.Payments()}
}

func (h *PaymentsHandler) List(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	filter := backend.PaymentFilter{
		ListOptions: listOptions(c),
		ClientID:    c.QueryParam("client_id"),
	}
	if from := c.QueryParam("due_from"); from != "" {
		filter.DueFrom, _ = time.Parse(time.RFC3339, from)
	}
	if to := c.QueryParam("due_to"); to != "" {
		filter.DueTo, _ = time.Parse(time.RFC3339, to)
	}
	page, err := h.api.List(c.Request().Context(), sess, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *PaymentsHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	payment, err := h.api.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Charge submits the payment to the payment gateway via the backend.
func (h *PaymentsHandler) Charge(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	payment, err := h.api.Charge(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

type markPaidRequest struct {
	Method string    `json:"method" validate:"required"`
	PaidAt time.Time `json:"paid_at"`
	Notes  string    `json:"notes,omitempty"`
}

// MarkPaid records an out-of-band settlement.
func (h *PaymentsHandler) MarkPaid(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req markPaidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PaidAt.IsZero() {
		req.PaidAt = time.Now().UTC()
	}
	payment, err := h.api.MarkPaid(c.Request().Context(), sess, c.Param("id"), backend.MarkPaidInput{
		Method: req.Method,
		PaidAt: req.PaidAt,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
