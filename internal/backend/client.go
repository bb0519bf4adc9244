package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/api/metrics"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// defaultTimeout applies uniformly to every backend call. There is no retry
// and no backoff anywhere in this package.
const defaultTimeout = 30 * time.Second

// Client is the single point of outgoing request construction for the billing
// backend. It is the only code that knows the base address, attaches bearer
// credentials, and enforces the global 401 policy: any unauthorized response
// purges the calling session's token via its TokenSource.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        zerolog.Logger
}

// Options overrides Client dependencies, mainly for tests.
type Options struct {
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// New creates a backend client rooted at baseURL (including the /api prefix).
func New(baseURL string, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("backend: base URL is empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend: parse base URL: %w", err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: parsed, httpClient: hc, log: opts.Logger}, nil
}

// call describes one backend round-trip.
type call struct {
	op     string // metric/log label, e.g. "payments.charge"
	method string
	path   string
	query  url.Values
	body   any
	auth   ports.TokenSource // nil for anonymous endpoints
	token  string            // explicit credential; overrides auth when set
}

// do executes a call, decodes the response envelope, and unmarshals Data into
// out when the backend reports success. Error taxonomy:
//   - transport failures → *TransportError
//   - 401 → token purge through the TokenSource, then domain.ErrUnauthenticated
//   - success:false or non-2xx → *APIError
func (c *Client) do(ctx context.Context, cl call, out any) error {
	var reqBody io.Reader
	if cl.body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(cl.body); err != nil {
			return fmt.Errorf("%s: encode request: %w", cl.op, err)
		}
		reqBody = buf
	}

	u := c.baseURL.JoinPath(cl.path)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.credential(cl); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(cl.op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(cl.op, "transport_error").Inc()
		return &TransportError{Op: cl.op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.BackendRequestsTotal.WithLabelValues(cl.op, "unauthorized").Inc()
		metrics.SessionPurgesTotal.Inc()
		if cl.auth != nil {
			cl.auth.HandleUnauthorized(ctx)
		}
		c.log.Warn().Str("op", cl.op).Msg("backend rejected credential, session purged")
		return fmt.Errorf("%s: %w", cl.op, domain.ErrUnauthenticated)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(cl.op, "transport_error").Inc()
		return &TransportError{Op: cl.op, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(cl.op, "bad_envelope").Inc()
		if resp.StatusCode >= http.StatusBadRequest {
			return newAPIError(resp.StatusCode, strings.TrimSpace(string(raw)), nil)
		}
		return &TransportError{Op: cl.op, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	if !env.Success {
		metrics.BackendRequestsTotal.WithLabelValues(cl.op, "api_error").Inc()
		return newAPIError(resp.StatusCode, env.Message, env.Errors)
	}

	metrics.BackendRequestsTotal.WithLabelValues(cl.op, "ok").Inc()
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: decode data: %w", cl.op, err)
		}
	}
	return nil
}

func (c *Client) credential(cl call) string {
	if cl.token != "" {
		return cl.token
	}
	if cl.auth != nil {
		return cl.auth.BearerToken()
	}
	return ""
}

// Ping checks backend reachability for the readiness probe. Any 2xx counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.JoinPath("health").String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "health.ping", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: "health.ping", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}
