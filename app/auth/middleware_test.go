package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	verifier := NewTokenVerifier("test-secret")
	other := NewTokenVerifier("other-secret")

	managerToken, err := verifier.Sign("alice", "shop_manager", time.Hour)
	require.NoError(t, err)
	customerToken, err := verifier.Sign("bob", "customer", time.Hour)
	require.NoError(t, err)
	expiredToken, err := verifier.Sign("carol", "shop_manager", -time.Hour)
	require.NoError(t, err)
	forgedToken, err := other.Sign("mallory", "shop_manager", time.Hour)
	require.NoError(t, err)

	testCases := []struct {
		name               string
		authorization      string
		expectedStatusCode int
		expectNextCalled   bool
	}{
		{
			name:               "valid manager token",
			authorization:      "Bearer " + managerToken,
			expectedStatusCode: http.StatusOK,
			expectNextCalled:   true,
		},
		{
			name:               "missing header",
			authorization:      "",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "not a bearer header",
			authorization:      "Basic abc123",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "wrong signing secret",
			authorization:      "Bearer " + forgedToken,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "expired token",
			authorization:      "Bearer " + expiredToken,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "insufficient role",
			authorization:      "Bearer " + customerToken,
			expectedStatusCode: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				claims, ok := ClaimsFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "shop_manager", claims.Role)
			})

			req := httptest.NewRequest("GET", "/admin/reports/profit", nil)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			rec := httptest.NewRecorder()

			verifier.RequireRole(next, "shop_manager", "admin").ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.expectNextCalled, nextCalled)
		})
	}
}
