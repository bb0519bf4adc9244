package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/Jorge-Nunes/noty-sub001/internal/backend"
)

// DashboardHandler aggregates the landing-page widgets. The four backend
// calls are independent, so they run concurrently; nothing here assumes a
// completion order.
type DashboardHandler struct {
	clients    backend.ClientsAPI
	payments   backend.PaymentsAPI
	automation backend.AutomationAPI
	webhooks   backend.WebhooksAPI
}

func NewDashboardHandler(client *backend.Client) *DashboardHandler {
	return &DashboardHandler{
		clients:    client.Clients(),
		payments:   client.Payments(),
		automation: client.Automation(),
		webhooks:   client.Webhooks(),
	}
}

type dashboardSummary struct {
	TotalClients    int64                 `json:"total_clients"`
	OverduePayments *backend.PaymentPage  `json:"overdue_payments"`
	RecentRuns      *backend.RunPage      `json:"recent_runs"`
	RecentWebhooks  *backend.ActivityPage `json:"recent_webhooks"`
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var summary dashboardSummary
	g, ctx := errgroup.WithContext(c.Request().Context())

	g.Go(func() error {
		page, err := h.clients.List(ctx, sess, backend.ListOptions{Limit: 1})
		if err != nil {
			return err
		}
		summary.TotalClients = page.Total
		return nil
	})
	g.Go(func() error {
		page, err := h.payments.List(ctx, sess, backend.PaymentFilter{
			ListOptions: backend.ListOptions{Limit: 5, Status: "overdue"},
		})
		if err != nil {
			return err
		}
		summary.OverduePayments = page
		return nil
	})
	g.Go(func() error {
		page, err := h.automation.ListRuns(ctx, sess, backend.RunFilter{
			ListOptions: backend.ListOptions{Limit: 5},
		})
		if err != nil {
			return err
		}
		summary.RecentRuns = page
		return nil
	})
	g.Go(func() error {
		page, err := h.webhooks.ListActivity(ctx, sess, backend.ActivityFilter{
			ListOptions: backend.ListOptions{Limit: 5},
		})
		if err != nil {
			return err
		}
		summary.RecentWebhooks = page
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
