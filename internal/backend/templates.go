package backend

import (
	"context"
	"net/http"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// TemplatesAPI groups the outreach message template endpoints.
type TemplatesAPI struct {
	c *Client
}

func (c *Client) Templates() TemplatesAPI { return TemplatesAPI{c: c} }

// TemplateInput carries the editable template fields.
type TemplateInput struct {
	Name    string `json:"name"`
	Channel string `json:"channel"`
	Body    string `json:"body"`
	Active  bool   `json:"active"`
}

func (a TemplatesAPI) List(ctx context.Context, ts ports.TokenSource, opts ListOptions) ([]domain.Template, error) {
	var templates []domain.Template
	err := a.c.do(ctx, call{
		op:     "templates.list",
		method: http.MethodGet,
		path:   "templates",
		query:  opts.values(),
		auth:   ts,
	}, &templates)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (a TemplatesAPI) Get(ctx context.Context, ts ports.TokenSource, id string) (*domain.Template, error) {
	var template domain.Template
	err := a.c.do(ctx, call{
		op:     "templates.get",
		method: http.MethodGet,
		path:   "templates/" + id,
		auth:   ts,
	}, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (a TemplatesAPI) Create(ctx context.Context, ts ports.TokenSource, input TemplateInput) (*domain.Template, error) {
	var template domain.Template
	err := a.c.do(ctx, call{
		op:     "templates.create",
		method: http.MethodPost,
		path:   "templates",
		body:   input,
		auth:   ts,
	}, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (a TemplatesAPI) Update(ctx context.Context, ts ports.TokenSource, id string, input TemplateInput) (*domain.Template, error) {
	var template domain.Template
	err := a.c.do(ctx, call{
		op:     "templates.update",
		method: http.MethodPut,
		path:   "templates/" + id,
		body:   input,
		auth:   ts,
	}, &template)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (a TemplatesAPI) Delete(ctx context.Context, ts ports.TokenSource, id string) error {
	return a.c.do(ctx, call{
		op:     "templates.delete",
		method: http.MethodDelete,
		path:   "templates/" + id,
		auth:   ts,
	}, nil)
}

// Preview renders the template body against sample variables backend-side.
func (a TemplatesAPI) Preview(ctx context.Context, ts ports.TokenSource, id string, variables map[string]string) (string, error) {
	var data struct {
		Preview string `json:"preview"`
	}
	err := a.c.do(ctx, call{
		op:     "templates.preview",
		method: http.MethodPost,
		path:   "templates/" + id + "/preview",
		body:   map[string]any{"variables": variables},
		auth:   ts,
	}, &data)
	if err != nil {
		return "", err
	}
	return data.Preview, nil
}
