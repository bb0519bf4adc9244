package backend

import (
	"context"
	"net/http"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// TrackingAPI groups the vehicle-tracking platform integration endpoints.
// Blocking rules live in the backend; block/unblock here are passthroughs.
type TrackingAPI struct {
	c *Client
}

func (c *Client) Tracking() TrackingAPI { return TrackingAPI{c: c} }

// TrackingInput carries the editable integration settings.
type TrackingInput struct {
	Provider string `json:"provider"`
	BaseURL  string `json:"base_url"`
	APIKey   string `json:"api_key,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// ConnectionTest is the backend's report on a test round-trip to the
// tracking platform.
type ConnectionTest struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

func (a TrackingAPI) Get(ctx context.Context, ts ports.TokenSource) (*domain.TrackingIntegration, error) {
	var integration domain.TrackingIntegration
	err := a.c.do(ctx, call{
		op:     "tracking.get",
		method: http.MethodGet,
		path:   "tracking/integration",
		auth:   ts,
	}, &integration)
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

func (a TrackingAPI) Update(ctx context.Context, ts ports.TokenSource, input TrackingInput) (*domain.TrackingIntegration, error) {
	var integration domain.TrackingIntegration
	err := a.c.do(ctx, call{
		op:     "tracking.update",
		method: http.MethodPut,
		path:   "tracking/integration",
		body:   input,
		auth:   ts,
	}, &integration)
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

func (a TrackingAPI) TestConnection(ctx context.Context, ts ports.TokenSource) (*ConnectionTest, error) {
	var result ConnectionTest
	err := a.c.do(ctx, call{
		op:     "tracking.test",
		method: http.MethodPost,
		path:   "tracking/integration/test",
		auth:   ts,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (a TrackingAPI) BlockVehicle(ctx context.Context, ts ports.TokenSource, plate string) error {
	return a.c.do(ctx, call{
		op:     "tracking.block",
		method: http.MethodPost,
		path:   "tracking/vehicles/" + plate + "/block",
		auth:   ts,
	}, nil)
}

func (a TrackingAPI) UnblockVehicle(ctx context.Context, ts ports.TokenSource, plate string) error {
	return a.c.do(ctx, call{
		op:     "tracking.unblock",
		method: http.MethodPost,
		path:   "tracking/vehicles/" + plate + "/unblock",
		auth:   ts,
	}, nil)
}
