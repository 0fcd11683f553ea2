package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Operator token settings. Tokens are minted by the token command and checked on the
// admin routes of the server.
const (
	EnvAdminSecret       = "ADMIN_JWT_SECRET"
	EnvAdminTokenTTL     = "ADMIN_TOKEN_TTL"
	DefaultAdminTokenTTL = 12 * time.Hour

	minAdminSecretLen = 16
	minAdminTokenTTL  = time.Minute
)

// ErrAdminDisabled is returned by NewJWTConfig when no operator secret is set.
var ErrAdminDisabled = errors.New(EnvAdminSecret + " is not set")

// JWTConfig signs and checks operator tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// NewJWTConfig reads the operator secret and token lifetime from the environment.
// A missing secret yields ErrAdminDisabled; a secret or lifetime that is set but
// unusable is reported as a configuration error.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv(EnvAdminSecret)
	if secret == "" {
		return nil, ErrAdminDisabled
	}

	ttl := DefaultAdminTokenTTL
	if raw := os.Getenv(EnvAdminTokenTTL); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: %s: %w", EnvAdminTokenTTL, err)
		}
		ttl = parsed
	}

	cfg := &JWTConfig{Secret: secret, TTL: ttl}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the secret length and token lifetime.
func (c *JWTConfig) Validate() error {
	if len(c.Secret) < minAdminSecretLen {
		return fmt.Errorf("config error: %s must be at least %d characters", EnvAdminSecret, minAdminSecretLen)
	}
	if c.TTL < minAdminTokenTTL {
		return fmt.Errorf("config error: %s must be at least %s, got %s", EnvAdminTokenTTL, minAdminTokenTTL, c.TTL)
	}
	return nil
}
