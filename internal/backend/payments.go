package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// PaymentsAPI groups the payment endpoints, including the charge action that
// pushes a payment into the payment gateway.
type PaymentsAPI struct {
	c *Client
}

func (c *Client) Payments() PaymentsAPI { return PaymentsAPI{c: c} }

// PaymentPage is one page of payments as returned by the backend.
type PaymentPage struct {
	Items []domain.Payment `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// PaymentFilter extends the shared list options with payment-specific filters.
type PaymentFilter struct {
	ListOptions
	ClientID string
	DueFrom  time.Time
	DueTo    time.Time
}

func (f PaymentFilter) values() url.Values {
	q := f.ListOptions.values()
	if f.ClientID != "" {
		q.Set("client_id", f.ClientID)
	}
	if !f.DueFrom.IsZero() {
		q.Set("due_from", f.DueFrom.Format(time.RFC3339))
	}
	if !f.DueTo.IsZero() {
		q.Set("due_to", f.DueTo.Format(time.RFC3339))
	}
	return q
}

// MarkPaidInput records an out-of-band settlement (cash, bank transfer).
type MarkPaidInput struct {
	Method string    `json:"method"`
	PaidAt time.Time `json:"paid_at"`
	Notes  string    `json:"notes,omitempty"`
}

func (a PaymentsAPI) List(ctx context.Context, ts ports.TokenSource, filter PaymentFilter) (*PaymentPage, error) {
	var page PaymentPage
	err := a.c.do(ctx, call{
		op:     "payments.list",
		method: http.MethodGet,
		path:   "payments",
		query:  filter.values(),
		auth:   ts,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (a PaymentsAPI) Get(ctx context.Context, ts ports.TokenSource, id string) (*domain.Payment, error) {
	var payment domain.Payment
	err := a.c.do(ctx, call{
		op:     "payments.get",
		method: http.MethodGet,
		path:   "payments/" + id,
		auth:   ts,
	}, &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Charge asks the backend to submit the payment to the payment gateway and
// returns the updated record. The reconciliation itself happens backend-side.
func (a PaymentsAPI) Charge(ctx context.Context, ts ports.TokenSource, id string) (*domain.Payment, error) {
	var payment domain.Payment
	err := a.c.do(ctx, call{
		op:     "payments.charge",
		method: http.MethodPost,
		path:   "payments/" + id + "/charge",
		auth:   ts,
	}, &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (a PaymentsAPI) MarkPaid(ctx context.Context, ts ports.TokenSource, id string, input MarkPaidInput) (*domain.Payment, error) {
	var payment domain.Payment
	err := a.c.do(ctx, call{
		op:     "payments.mark_paid",
		method: http.MethodPost,
		path:   "payments/" + id + "/mark-paid",
		body:   input,
		auth:   ts,
	}, &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
