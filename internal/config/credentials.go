package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// OAuth scopes the service identity needs: spreadsheet contents plus Drive for search,
// create-in-folder, listing and deletion.
const (
	ScopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	ScopeDrive        = "https://www.googleapis.com/auth/drive"
)

var (
	// ErrMissingCredentials is returned when no service account is configured.
	ErrMissingCredentials = errors.New("google service account credentials are not configured (set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_SERVICE_ACCOUNT_JSON)")
	// ErrMissingAPIKey is returned when the model API key is not configured.
	ErrMissingAPIKey = errors.New("gemini API key is not configured (set GEMINI_API_KEY or use --api-key)")
)

// ServiceAccount is a parsed service-identity credential.
type ServiceAccount struct {
	// Email is the principal the spreadsheets are created and owned by.
	Email  string
	Scopes []string

	jwt *jwt.Config
}

// TokenSource returns a caching token source for the service account.
func (s *ServiceAccount) TokenSource(ctx context.Context) oauth2.TokenSource {
	return s.jwt.TokenSource(ctx)
}

// ParseServiceAccount parses a service-account key file's JSON contents.
func ParseServiceAccount(data []byte, scopes ...string) (*ServiceAccount, error) {
	if len(data) == 0 {
		return nil, ErrMissingCredentials
	}
	if len(scopes) == 0 {
		scopes = []string{ScopeSpreadsheets, ScopeDrive}
	}

	cfg, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	if cfg.Email == "" {
		return nil, fmt.Errorf("invalid service account credentials: client_email is missing")
	}

	return &ServiceAccount{
		Email:  cfg.Email,
		Scopes: scopes,
		jwt:    cfg,
	}, nil
}

// ServiceAccount loads the configured service-account credential.
func (c *Config) ServiceAccount() (*ServiceAccount, error) {
	switch {
	case c.ServiceAccountJSON != "":
		return ParseServiceAccount([]byte(c.ServiceAccountJSON))
	case c.ServiceAccountFile != "":
		data, err := os.ReadFile(c.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account file %s: %w", c.ServiceAccountFile, err)
		}
		return ParseServiceAccount(data)
	default:
		return nil, ErrMissingCredentials
	}
}

// RequireAPIKey returns the model API key, or ErrMissingAPIKey.
func (c *Config) RequireAPIKey() (string, error) {
	if c.GeminiAPIKey == "" {
		return "", ErrMissingAPIKey
	}
	return c.GeminiAPIKey, nil
}
