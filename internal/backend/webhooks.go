package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// WebhooksAPI exposes the activity log of gateway callbacks received by the
// backend (payment confirmations, WhatsApp delivery receipts).
type WebhooksAPI struct {
	c *Client
}

func (c *Client) Webhooks() WebhooksAPI { return WebhooksAPI{c: c} }

// ActivityPage is one page of webhook activity entries.
type ActivityPage struct {
	Items []domain.WebhookActivity `json:"items"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

// ActivityFilter extends the shared list options with the callback source.
type ActivityFilter struct {
	ListOptions
	Source string
}

func (f ActivityFilter) values() url.Values {
	q := f.ListOptions.values()
	if f.Source != "" {
		q.Set("source", f.Source)
	}
	return q
}

func (a WebhooksAPI) ListActivity(ctx context.Context, ts ports.TokenSource, filter ActivityFilter) (*ActivityPage, error) {
	var page ActivityPage
	err := a.c.do(ctx, call{
		op:     "webhooks.list_activity",
		method: http.MethodGet,
		path:   "webhooks/activity",
		query:  filter.values(),
		auth:   ts,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (a WebhooksAPI) Get(ctx context.Context, ts ports.TokenSource, id string) (*domain.WebhookActivity, error) {
	var entry domain.WebhookActivity
	err := a.c.do(ctx, call{
		op:     "webhooks.get",
		method: http.MethodGet,
		path:   "webhooks/activity/" + id,
		auth:   ts,
	}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
