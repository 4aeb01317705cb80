package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nontawatz/mini-commerce-api/shared/auth"
)

func newProtectedServer(t *testing.T, jwtAuth auth.JWTAuthenticator) (*httptest.Server, *auth.UserClaims) {
	t.Helper()

	var seen auth.UserClaims
	handler := Authenticate(jwtAuth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := UserClaimsFromContext(r.Context())
		require.True(t, ok)
		seen = *claims
		w.WriteHeader(http.StatusOK)
	}))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, &seen
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	jwtAuth := auth.NewJWTAuthenticator("secret", "mini-commerce-api", time.Hour)
	server, _ := newProtectedServer(t, jwtAuth)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	t.Parallel()

	jwtAuth := auth.NewJWTAuthenticator("secret", "mini-commerce-api", time.Hour)
	server, _ := newProtectedServer(t, jwtAuth)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token abc")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	t.Parallel()

	jwtAuth := auth.NewJWTAuthenticator("secret", "mini-commerce-api", time.Hour)
	server, _ := newProtectedServer(t, jwtAuth)

	other := auth.NewJWTAuthenticator("another-secret", "mini-commerce-api", time.Hour)
	token, err := other.IssueToken("user-1", "mallory")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	jwtAuth := auth.NewJWTAuthenticator("secret", "mini-commerce-api", time.Hour)
	server, seen := newProtectedServer(t, jwtAuth)

	token, err := jwtAuth.IssueToken("user-42", "bob")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-42", seen.UserID)
	assert.Equal(t, "bob", seen.Username)
}
