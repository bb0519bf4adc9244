package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
)

type stubTokenSource struct {
	token  string
	purged bool
}

func (s *stubTokenSource) BearerToken() string { return s.token }

func (s *stubTokenSource) HandleUnauthorized(context.Context) {
	s.purged = true
	s.token = ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	return c, srv
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any, errs []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
		"errors":  errs,
	})
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"items": []any{}, "total": 0, "page": 2, "limit": 20,
		}, nil)
	})

	ts := &stubTokenSource{token: "tok-123"}
	page, err := c.Clients().List(context.Background(), ts, ListOptions{Page: 2, Limit: 20, Search: "acme"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("unexpected Authorization header: %q", gotAuth)
	}
	if gotPath != "/api/clients" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotQuery != "limit=20&page=2&search=acme" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if page.Page != 2 {
		t.Fatalf("unexpected page decode: %+v", page)
	}
}

func TestClient_NoTokenSourceSendsNoCredential(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"user":  map[string]any{"id": "u1", "name": "Ops", "email": "ops@example.com", "role": "operator"},
			"token": "fresh",
		}, nil)
	})

	if _, _, err := c.Auth().Login(context.Background(), "ops@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("anonymous call must not carry a credential, got %q", gotAuth)
	}
}

func TestClient_UnauthorizedPurgesSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	ts := &stubTokenSource{token: "stale"}
	_, err := c.Payments().Get(context.Background(), ts, "p1")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if !ts.purged {
		t.Fatalf("401 must trigger the session purge hook")
	}
	if ts.token != "" {
		t.Fatalf("expected token cleared after purge")
	}
}

func TestClient_BackendRejectionBecomesAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, false, "due day out of range", nil, []string{"due_day must be 1-28"})
	})

	ts := &stubTokenSource{token: "tok"}
	_, err := c.Clients().Create(context.Background(), ts, ClientInput{Name: "Acme"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if apiErr.Message != "due day out of range" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
	if len(apiErr.Details) != 1 || apiErr.Details[0] != "due_day must be 1-28" {
		t.Fatalf("unexpected details: %v", apiErr.Details)
	}
	if ts.purged {
		t.Fatalf("a business rejection must not purge the session")
	}
}

func TestClient_SuccessFalseWith200NormalizesStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, "template not renderable", nil, nil)
	})

	ts := &stubTokenSource{token: "tok"}
	_, err := c.Templates().Get(context.Background(), ts, "t1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for success:false on a 2xx, got %d", apiErr.Status)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(srv.URL, Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("client init failed: %v", err)
	}
	srv.Close()

	ts := &stubTokenSource{token: "tok"}
	_, err = c.Clients().Get(context.Background(), ts, "c1")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if transportErr.Op != "clients.get" {
		t.Fatalf("unexpected op: %q", transportErr.Op)
	}
	if ts.purged {
		t.Fatalf("a transport failure must not purge the session")
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	ts := &stubTokenSource{token: "tok"}
	_, err := c.Clients().Get(context.Background(), ts, "c1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError for a non-JSON error body, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
}

func TestAuthAPI_Login(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "ops@example.com" || req["password"] != "secret123" {
			writeEnvelope(w, http.StatusUnauthorized, false, "invalid credentials", nil, nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"user":  map[string]any{"id": "u1", "name": "Ops", "email": "ops@example.com", "role": "admin"},
			"token": "abc",
		}, nil)
	})

	user, token, err := c.Auth().Login(context.Background(), "ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "abc" {
		t.Fatalf("unexpected token: %q", token)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthAPI_LoginMalformedResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{"token": "abc"}, nil)
	})

	if _, _, err := c.Auth().Login(context.Background(), "ops@example.com", "secret123"); err == nil {
		t.Fatalf("expected error for response without user")
	}
}

func TestAuthAPI_VerifyUsesCandidateToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"user": map[string]any{"id": "u1", "name": "Ops", "email": "ops@example.com", "role": "viewer"},
		}, nil)
	})

	user, err := c.Auth().Verify(context.Background(), "candidate")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if gotAuth != "Bearer candidate" {
		t.Fatalf("expected candidate token on the wire, got %q", gotAuth)
	}
	if user.Role != domain.RoleViewer {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestTrackingAPI_VehicleBlock(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		writeEnvelope(w, http.StatusOK, true, "vehicle blocked", nil, nil)
	})

	ts := &stubTokenSource{token: "tok"}
	if err := c.Tracking().BlockVehicle(context.Background(), ts, "ABC1D23"); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/tracking/vehicles/ABC1D23/block" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}
