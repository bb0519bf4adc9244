package ports

import (
	"context"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
)

// AuthBackend is the slice of the billing backend the session layer depends
// on: credential exchange, token verification, and profile lookup.
type AuthBackend interface {
	// Login exchanges credentials for the authenticated user and an opaque
	// bearer token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Verify checks a persisted token and returns the user it belongs to.
	Verify(ctx context.Context, token string) (*domain.User, error)
	// Profile re-fetches the current user with the session's own token.
	Profile(ctx context.Context, ts TokenSource) (*domain.User, error)
}

// Session is the transport layer's view of one operator session.
type Session interface {
	TokenSource

	// EnsureReady blocks until startup verification of a persisted token has
	// settled. It runs at most once per session.
	EnsureReady(ctx context.Context)
	State() domain.SessionState
	IsAuthenticated() bool
	User() *domain.User
	Logout(ctx context.Context)
	RefreshUser(ctx context.Context)
}

// SessionRegistry owns the set of live sessions and their signed identifiers.
type SessionRegistry interface {
	// Open performs a login and, on success, returns the signed session ID the
	// dashboard presents on subsequent requests.
	Open(ctx context.Context, email, password string) (string, Session, error)
	// Resolve maps a signed session ID to its session, lazily restoring it
	// from the persisted token after a gateway restart.
	Resolve(ctx context.Context, signedID string) (Session, error)
	// Close logs the session out and forgets it. Idempotent.
	Close(ctx context.Context, signedID string)
}
