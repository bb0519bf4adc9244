package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// SessionStore owns one operator session: the single source of truth for who
// is logged in. It is the only writer of the paired (user, token) state and
// of the durable token in the vault.
//
// Invariant: user and token are set and cleared together, under the same
// critical section. IsAuthenticated is derived from that pair and computed no
// other way.
type SessionStore struct {
	mu    sync.Mutex
	state domain.SessionState
	user  *domain.User
	token string

	vault ports.TokenVault
	auth  ports.AuthBackend
	log   zerolog.Logger

	initOnce sync.Once
}

// NewSessionStore returns a store in the initializing state. Callers must
// EnsureReady before reading authentication state.
func NewSessionStore(vault ports.TokenVault, auth ports.AuthBackend, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		state: domain.SessionInitializing,
		vault: vault,
		auth:  auth,
		log:   log,
	}
}

// EnsureReady settles the initializing state exactly once: a persisted token
// is verified against the backend; success authenticates the session with the
// returned user, any failure (network or explicit rejection) clears the token
// and leaves the session unauthenticated. Errors are absorbed here by design;
// the degraded outcome is "login required", never a crash.
func (s *SessionStore) EnsureReady(ctx context.Context) {
	s.initOnce.Do(func() {
		token, err := s.vault.Load(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("session: token load failed, treating as unauthenticated")
			s.settle(nil, "")
			return
		}
		if token == "" {
			s.settle(nil, "")
			return
		}

		user, err := s.auth.Verify(ctx, token)
		if err != nil {
			s.log.Info().Err(err).Msg("session: persisted token rejected, purging")
			if err := s.vault.Clear(ctx); err != nil {
				s.log.Warn().Err(err).Msg("session: token clear failed")
			}
			s.settle(nil, "")
			return
		}
		s.settle(user, token)
	})
}

func (s *SessionStore) settle(user *domain.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	if user != nil && token != "" {
		s.state = domain.SessionAuthenticated
	} else {
		s.state = domain.SessionUnauthenticated
	}
}

// Login exchanges credentials with the backend. On success the token is
// persisted and user+token committed atomically; on any failure the session
// stays unauthenticated and the error propagates to the caller untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	user, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.vault.Save(ctx, token); err != nil {
		// Refuse a session whose token would not survive a restart.
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.state = domain.SessionAuthenticated
	s.mu.Unlock()

	// A login settles the session; a later EnsureReady must not re-verify.
	s.initOnce.Do(func() {})
	return nil
}

// Logout clears user, token, and durable storage. Idempotent: calling it on
// an already-unauthenticated session is a no-op.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.user != nil || s.token != ""
	s.user = nil
	s.token = ""
	s.state = domain.SessionUnauthenticated
	s.mu.Unlock()

	if err := s.vault.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session: token clear failed during logout")
	}
	if wasAuthenticated {
		s.log.Info().Msg("session: logged out")
	}
}

// RefreshUser re-fetches the current profile and replaces the cached user.
// Best effort: errors are logged, never surfaced, and never change the
// authentication state.
func (s *SessionStore) RefreshUser(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}
	user, err := s.auth.Profile(ctx, s)
	if err != nil {
		s.log.Warn().Err(err).Msg("session: profile refresh failed, keeping cached user")
		return
	}

	s.mu.Lock()
	// A concurrent 401 purge wins over a stale refresh result.
	if s.token != "" {
		s.user = user
	}
	s.mu.Unlock()
}

// HandleUnauthorized implements the global 401 policy for this session: the
// HTTP client wrapper calls it whenever the backend rejects the credential,
// whatever facade issued the call.
func (s *SessionStore) HandleUnauthorized(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.state = domain.SessionUnauthenticated
	s.mu.Unlock()

	if err := s.vault.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("session: token clear failed after 401")
	}
}

// BearerToken implements ports.TokenSource.
func (s *SessionStore) BearerToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether both user and token are present.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// State returns the current lifecycle state.
func (s *SessionStore) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns a copy of the cached operator identity, or nil.
func (s *SessionStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
