package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// AutomationAPI groups the outreach automation endpoints. Scheduling and
// message dispatch run backend-side; the gateway only triggers and monitors.
type AutomationAPI struct {
	c *Client
}

func (c *Client) Automation() AutomationAPI { return AutomationAPI{c: c} }

// RunPage is one page of automation runs.
type RunPage struct {
	Items []domain.AutomationRun `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// RunFilter extends the shared list options with the automation name.
type RunFilter struct {
	ListOptions
	Automation string
}

func (f RunFilter) values() url.Values {
	q := f.ListOptions.values()
	if f.Automation != "" {
		q.Set("automation", f.Automation)
	}
	return q
}

func (a AutomationAPI) ListRuns(ctx context.Context, ts ports.TokenSource, filter RunFilter) (*RunPage, error) {
	var page RunPage
	err := a.c.do(ctx, call{
		op:     "automation.list_runs",
		method: http.MethodGet,
		path:   "automation/runs",
		query:  filter.values(),
		auth:   ts,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (a AutomationAPI) GetRun(ctx context.Context, ts ports.TokenSource, id string) (*domain.AutomationRun, error) {
	var run domain.AutomationRun
	err := a.c.do(ctx, call{
		op:     "automation.get_run",
		method: http.MethodGet,
		path:   "automation/runs/" + id,
		auth:   ts,
	}, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Trigger starts an out-of-schedule run of the named automation.
func (a AutomationAPI) Trigger(ctx context.Context, ts ports.TokenSource, automation string) (*domain.AutomationRun, error) {
	var run domain.AutomationRun
	err := a.c.do(ctx, call{
		op:     "automation.trigger",
		method: http.MethodPost,
		path:   "automation/runs",
		body:   map[string]string{"automation": automation},
		auth:   ts,
	}, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
