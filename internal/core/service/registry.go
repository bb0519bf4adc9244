package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/domain"
	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

const defaultSessionTTL = 12 * time.Hour

// Registry owns the set of live operator sessions. Each session is identified
// by a random ID wrapped in an HS256-signed token the dashboard presents on
// every request. After a gateway restart the in-memory map is empty, but a
// valid signed ID is enough to rebuild the store and let it re-verify the
// durable bearer token — the operator is not asked to log in again.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*SessionStore

	vaults     ports.TokenVaultFactory
	auth       ports.AuthBackend
	signingKey []byte
	ttl        time.Duration
	log        zerolog.Logger
}

func NewRegistry(vaults ports.TokenVaultFactory, auth ports.AuthBackend, signingKey string, ttl time.Duration, log zerolog.Logger) *Registry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Registry{
		sessions:   make(map[string]*SessionStore),
		vaults:     vaults,
		auth:       auth,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		log:        log,
	}
}

// Open performs a login and, on success, registers the new session and
// returns its signed ID. A failed login registers nothing and persists
// nothing.
func (r *Registry) Open(ctx context.Context, email, password string) (string, ports.Session, error) {
	sid := uuid.NewString()
	store := NewSessionStore(r.vaults.Vault(sid), r.auth, r.log.With().Str("session_id", sid).Logger())

	if err := store.Login(ctx, email, password); err != nil {
		return "", nil, err
	}

	signed, err := r.sign(sid)
	if err != nil {
		store.Logout(ctx)
		return "", nil, err
	}

	r.mu.Lock()
	r.sessions[sid] = store
	r.mu.Unlock()

	r.log.Info().Str("session_id", sid).Str("email", email).Msg("session opened")
	return signed, store, nil
}

// Resolve maps a signed session ID to its store. An unknown-but-validly-signed
// ID gets a fresh store in the initializing state, backed by that session's
// vault; the caller's EnsureReady performs the verification round-trip.
func (r *Registry) Resolve(ctx context.Context, signedID string) (ports.Session, error) {
	sid, err := r.parse(signedID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.sessions[sid]; ok {
		return store, nil
	}
	store := NewSessionStore(r.vaults.Vault(sid), r.auth, r.log.With().Str("session_id", sid).Logger())
	r.sessions[sid] = store
	return store, nil
}

// Close logs the session out and forgets it. Unknown or already-closed
// sessions are a no-op beyond clearing the vault.
func (r *Registry) Close(ctx context.Context, signedID string) {
	sid, err := r.parse(signedID)
	if err != nil {
		return
	}

	r.mu.Lock()
	store := r.sessions[sid]
	delete(r.sessions, sid)
	r.mu.Unlock()

	if store == nil {
		store = NewSessionStore(r.vaults.Vault(sid), r.auth, r.log)
	}
	store.Logout(ctx)
}

func (r *Registry) sign(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(r.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(r.signingKey)
}

func (r *Registry) parse(signedID string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(signedID, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return r.signingKey, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
