package backend

import (
	"context"
	"net/http"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// ClientsAPI groups the client-management endpoints.
type ClientsAPI struct {
	c *Client
}

func (c *Client) Clients() ClientsAPI { return ClientsAPI{c: c} }

// ClientPage is one page of clients as returned by the backend.
type ClientPage struct {
	Items []domain.Client `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ClientInput carries the editable client fields. The gateway forwards it
// verbatim; validation of business rules is the backend's job.
type ClientInput struct {
	Name       string  `json:"name"`
	Document   string  `json:"document,omitempty"`
	Email      string  `json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	WhatsApp   string  `json:"whatsapp,omitempty"`
	Status     string  `json:"status,omitempty"`
	DueDay     int     `json:"due_day,omitempty"`
	MonthlyFee float64 `json:"monthly_fee,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

func (a ClientsAPI) List(ctx context.Context, ts ports.TokenSource, opts ListOptions) (*ClientPage, error) {
	var page ClientPage
	err := a.c.do(ctx, call{
		op:     "clients.list",
		method: http.MethodGet,
		path:   "clients",
		query:  opts.values(),
		auth:   ts,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (a ClientsAPI) Get(ctx context.Context, ts ports.TokenSource, id string) (*domain.Client, error) {
	var client domain.Client
	err := a.c.do(ctx, call{
		op:     "clients.get",
		method: http.MethodGet,
		path:   "clients/" + id,
		auth:   ts,
	}, &client)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (a ClientsAPI) Create(ctx context.Context, ts ports.TokenSource, input ClientInput) (*domain.Client, error) {
	var client domain.Client
	err := a.c.do(ctx, call{
		op:     "clients.create",
		method: http.MethodPost,
		path:   "clients",
		body:   input,
		auth:   ts,
	}, &client)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (a ClientsAPI) Update(ctx context.Context, ts ports.TokenSource, id string, input ClientInput) (*domain.Client, error) {
	var client domain.Client
	err := a.c.do(ctx, call{
		op:     "clients.update",
		method: http.MethodPut,
		path:   "clients/" + id,
		body:   input,
		auth:   ts,
	}, &client)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (a ClientsAPI) Delete(ctx context.Context, ts ports.TokenSource, id string) error {
	return a.c.do(ctx, call{
		op:     "clients.delete",
		method: http.MethodDelete,
		path:   "clients/" + id,
		auth:   ts,
	}, nil)
}
