package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     string
		want    time.Duration
		wantErr string
	}{
		{name: "default lifetime", secret: "operator-secret-0123", want: DefaultAdminTokenTTL},
		{name: "custom lifetime", secret: "operator-secret-0123", ttl: "48h", want: 48 * time.Hour},
		{name: "minutes", secret: "operator-secret-0123", ttl: "15m", want: 15 * time.Minute},
		{name: "too short lifetime", secret: "operator-secret-0123", ttl: "30s", wantErr: "at least 1m0s"},
		{name: "negative lifetime", secret: "operator-secret-0123", ttl: "-1h", wantErr: EnvAdminTokenTTL},
		{name: "unparseable lifetime", secret: "operator-secret-0123", ttl: "soon", wantErr: EnvAdminTokenTTL},
		{name: "short secret", secret: "short", wantErr: "at least 16 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAdminSecret, tt.secret)
			t.Setenv(EnvAdminTokenTTL, tt.ttl)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.want, cfg.TTL)
		})
	}
}

func TestNewJWTConfig_MissingSecretDisablesAdmin(t *testing.T) {
	t.Setenv(EnvAdminSecret, "")
	t.Setenv(EnvAdminTokenTTL, "")

	cfg, err := NewJWTConfig()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrAdminDisabled)
}
