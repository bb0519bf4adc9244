package backend

import (
	"context"
	"net/http"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// SettingsAPI groups the configuration endpoints: payment-gateway credentials,
// WhatsApp sender settings, and automation switches live here as opaque
// key/value entries.
type SettingsAPI struct {
	c *Client
}

func (c *Client) Settings() SettingsAPI { return SettingsAPI{c: c} }

// SettingInput carries an upserted configuration value.
type SettingInput struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func (a SettingsAPI) List(ctx context.Context, ts ports.TokenSource) ([]domain.ConfigEntry, error) {
	var entries []domain.ConfigEntry
	err := a.c.do(ctx, call{
		op:     "settings.list",
		method: http.MethodGet,
		path:   "settings",
		auth:   ts,
	}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (a SettingsAPI) Get(ctx context.Context, ts ports.TokenSource, key string) (*domain.ConfigEntry, error) {
	var entry domain.ConfigEntry
	err := a.c.do(ctx, call{
		op:     "settings.get",
		method: http.MethodGet,
		path:   "settings/" + key,
		auth:   ts,
	}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (a SettingsAPI) Upsert(ctx context.Context, ts ports.TokenSource, key string, input SettingInput) (*domain.ConfigEntry, error) {
	var entry domain.ConfigEntry
	err := a.c.do(ctx, call{
		op:     "settings.upsert",
		method: http.MethodPut,
		path:   "settings/" + key,
		body:   input,
		auth:   ts,
	}, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
