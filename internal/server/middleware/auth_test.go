package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(subject), nil
}

type testClaims string

func (c testClaims) GetSubject() (string, error) {
	return string(c), nil
}

func TestAuthMiddleware(t *testing.T) {
	validator := &testTokenValidator{validTokens: map[string]string{
		"good-token":  "field-ops",
		"empty-claim": "",
	}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOp     string
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK, wantOp: "field-ops"},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK, wantOp: "field-ops"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer good-token extra", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "token without subject", header: "Bearer empty-claim", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOp string
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOp, _ = Operator(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/admin/cleanup", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOp, gotOp)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestOperator_MissingFromContext(t *testing.T) {
	_, ok := Operator(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
