package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// memVaultFactory hands out one memVault per session ID. Shared between two
// registries it plays the role of Redis surviving a gateway restart.
type memVaultFactory struct {
	mu     sync.Mutex
	vaults map[string]*memVault
}

func newMemVaultFactory() *memVaultFactory {
	return &memVaultFactory{vaults: make(map[string]*memVault)}
}

func (f *memVaultFactory) Vault(sessionID string) ports.TokenVault {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.vaults[sessionID]; ok {
		return v
	}
	v := &memVault{}
	f.vaults[sessionID] = v
	return v
}

func (f *memVaultFactory) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, v := range f.vaults {
		if tok := v.stored(); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

const testSigningKey = "test-signing-key"

func newTestRegistry(vaults ports.TokenVaultFactory, auth ports.AuthBackend) *Registry {
	return NewRegistry(vaults, auth, testSigningKey, time.Hour, zerolog.Nop())
}

func TestRegistry_OpenAndResolve(t *testing.T) {
	auth := newStubAuth(domain.RoleOperator)
	registry := newTestRegistry(newMemVaultFactory(), auth)

	signed, sess, err := registry.Open(context.Background(), "ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a signed session ID")
	}
	if !sess.IsAuthenticated() {
		t.Fatalf("expected opened session to be authenticated")
	}

	resolved, err := registry.Resolve(context.Background(), signed)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved != sess {
		t.Fatalf("expected resolve to return the opened session")
	}
}

func TestRegistry_OpenFailedLogin(t *testing.T) {
	vaults := newMemVaultFactory()
	registry := newTestRegistry(vaults, newStubAuth(domain.RoleOperator))

	_, _, err := registry.Open(context.Background(), "ops@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if toks := vaults.tokens(); len(toks) != 0 {
		t.Fatalf("failed login must not persist tokens, got %v", toks)
	}
}

func TestRegistry_RestoreAfterRestart(t *testing.T) {
	auth := newStubAuth(domain.RoleOperator)
	vaults := newMemVaultFactory()

	registry := newTestRegistry(vaults, auth)
	signed, _, err := registry.Open(context.Background(), "ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	// A new registry with the same signing key and vault backend stands in
	// for the process after a restart.
	restarted := newTestRegistry(vaults, auth)
	sess, err := restarted.Resolve(context.Background(), signed)
	if err != nil {
		t.Fatalf("resolve after restart failed: %v", err)
	}
	if sess.State() != domain.SessionInitializing {
		t.Fatalf("expected a fresh session to start initializing, got %s", sess.State())
	}

	sess.EnsureReady(context.Background())
	if !sess.IsAuthenticated() {
		t.Fatalf("expected session restored from persisted token")
	}
	if user := sess.User(); user == nil || user.Email != "ops@example.com" {
		t.Fatalf("unexpected user after restore: %+v", user)
	}
}

func TestRegistry_RestoreRejectedToken(t *testing.T) {
	auth := newStubAuth(domain.RoleOperator)
	vaults := newMemVaultFactory()

	registry := newTestRegistry(vaults, auth)
	signed, _, err := registry.Open(context.Background(), "ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	// The backend no longer accepts the persisted token.
	delete(auth.tokens, "abc")

	restarted := newTestRegistry(vaults, auth)
	sess, err := restarted.Resolve(context.Background(), signed)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	sess.EnsureReady(context.Background())

	if sess.IsAuthenticated() {
		t.Fatalf("rejected token must leave the session unauthenticated")
	}
	if toks := vaults.tokens(); len(toks) != 0 {
		t.Fatalf("rejected token must be purged, got %v", toks)
	}
}

func TestRegistry_ResolveBadSignature(t *testing.T) {
	auth := newStubAuth(domain.RoleOperator)
	vaults := newMemVaultFactory()

	registry := newTestRegistry(vaults, auth)
	signed, _, err := registry.Open(context.Background(), "ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	other := NewRegistry(vaults, auth, "different-key", time.Hour, zerolog.Nop())
	if _, err := other.Resolve(context.Background(), signed); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign signature, got %v", err)
	}

	if _, err := registry.Resolve(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for garbage, got %v", err)
	}
}

func TestRegistry_Close(t *testing.T) {
	auth := newStubAuth(domain.RoleOperator)
	vaults := newMemVaultFactory()
	registry := newTestRegistry(vaults, auth)

	signed, sess, err := registry.Open(context.Background(), "ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	registry.Close(context.Background(), signed)
	registry.Close(context.Background(), signed) // idempotent

	if sess.IsAuthenticated() {
		t.Fatalf("expected closed session to be logged out")
	}
	if toks := vaults.tokens(); len(toks) != 0 {
		t.Fatalf("expected vault cleared on close, got %v", toks)
	}
}
