package ports

import "context"

// TokenSource supplies the bearer credential attached to outgoing backend
// requests. HandleUnauthorized is the global 401 policy hook: the HTTP client
// wrapper calls it whenever the backend rejects the credential, and the owner
// must purge the token and drop to unauthenticated.
type TokenSource interface {
	BearerToken() string
	HandleUnauthorized(ctx context.Context)
}

// TokenVault persists exactly one opaque bearer token under a fixed key.
// Load returns an empty string when no token is stored.
type TokenVault interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// TokenVaultFactory scopes vaults to an operator session.
type TokenVaultFactory interface {
	Vault(sessionID string) TokenVault
}
