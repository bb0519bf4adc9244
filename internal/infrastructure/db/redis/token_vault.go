package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jorge-Nunes/noty-sub001/internal/core/ports"
)

// tokenKeyPrefix is the fixed storage key prefix for bearer tokens. Each
// operator session stores exactly one value: its opaque backend credential.
const tokenKeyPrefix = "noty:session:token:"

const defaultTokenTTL = 30 * 24 * time.Hour

// TokenVault persists one session's bearer token in Redis so it survives
// gateway restarts. Satisfies ports.TokenVault.
type TokenVault struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// VaultFactory scopes TokenVaults to a session ID. Satisfies
// ports.TokenVaultFactory.
type VaultFactory struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVaultFactory(client *redis.Client, ttl time.Duration) *VaultFactory {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &VaultFactory{client: client, ttl: ttl}
}

func (f *VaultFactory) Vault(sessionID string) ports.TokenVault {
	return &TokenVault{client: f.client, key: tokenKeyPrefix + sessionID, ttl: f.ttl}
}

// Load returns the stored token, or an empty string when none exists.
func (v *TokenVault) Load(ctx context.Context) (string, error) {
	token, err := v.client.Get(ctx, v.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token load: %w", err)
	}
	return token, nil
}

func (v *TokenVault) Save(ctx context.Context, token string) error {
	if err := v.client.Set(ctx, v.key, token, v.ttl).Err(); err != nil {
		return fmt.Errorf("token save: %w", err)
	}
	return nil
}

func (v *TokenVault) Clear(ctx context.Context) error {
	if err := v.client.Del(ctx, v.key).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}
