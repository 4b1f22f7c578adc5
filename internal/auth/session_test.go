package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge-io/ctf/internal/auth"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

func tokenServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func TestSessionLoginPasswordGrant(t *testing.T) {
	t.Parallel()

	server := tokenServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/oauth/auth/token", request.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "password", request.PostForm.Get("grant_type"))
		assert.Equal(t, "admin", request.PostForm.Get("username"))
		assert.Equal(t, "secret", request.PostForm.Get("password"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"access_token": "session-abc",
			"expires_in":   3600,
		})
	})

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: server.URL + "/oauth/auth/token",
		Username: "admin",
		Password: "secret",
	})

	require.NoError(t, manager.Login(context.Background()))
	assert.Equal(t, "session-abc", manager.Current())

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-abc", token)
}

func TestSessionLazyLogin(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := tokenServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		hits.Add(1)

		_ = json.NewEncoder(writer).Encode(map[string]string{"access_token": "lazy-token"})
	})

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: server.URL + "/oauth/auth/token",
		Username: "admin",
		Password: "secret",
	})

	// First GetToken logs in; the second serves from cache.
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lazy-token", token)

	_, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSessionOneTimeTokenGrant(t *testing.T) {
	t.Parallel()

	server := tokenServer(t, func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, request.ParseForm())
		assert.Equal(t, "one_time_token", request.PostForm.Get("grant_type"))
		assert.Equal(t, "ott-123", request.PostForm.Get("token"))

		_ = json.NewEncoder(writer).Encode(map[string]string{"access_token": "session-from-ott"})
	})

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL:     server.URL + "/oauth/auth/token",
		OneTimeToken: "ott-123",
	})

	require.NoError(t, manager.Login(context.Background()))
	assert.Equal(t, "session-from-ott", manager.Current())

	// The one-time token is spent; a second exchange is refused locally.
	err := manager.Login(context.Background())
	assert.ErrorIs(t, err, ctf.ErrTokenNotRenewable)
}

func TestSessionLoginRejected(t *testing.T) {
	t.Parallel()

	server := tokenServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(writer).Encode(map[string]string{"message": "bad credentials"})
	})

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: server.URL + "/oauth/auth/token",
		Username: "admin",
		Password: "wrong",
	})

	err := manager.Login(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ctf.ErrAuthenticationFailed)
	assert.Contains(t, err.Error(), "bad credentials")
	assert.Empty(t, manager.Current())
}

func TestSessionLoginEmptyAccessToken(t *testing.T) {
	t.Parallel()

	server := tokenServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(writer).Encode(map[string]string{})
	})

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: server.URL + "/oauth/auth/token",
		Username: "admin",
		Password: "secret",
	})

	err := manager.Login(context.Background())
	assert.ErrorIs(t, err, ctf.ErrAuthenticationFailed)
}

func TestSessionNoCredentials(t *testing.T) {
	t.Parallel()

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: "http://127.0.0.1:0/oauth/auth/token",
	})

	// No credentials means no network call at all.
	_, err := manager.GetToken(context.Background())
	assert.ErrorIs(t, err, ctf.ErrNotAuthenticated)
}

func TestSessionInvalidate(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := tokenServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		hits.Add(1)

		_ = json.NewEncoder(writer).Encode(map[string]string{"access_token": "session-abc"})
	})

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: server.URL + "/oauth/auth/token",
		Username: "admin",
		Password: "secret",
	})

	require.NoError(t, manager.Login(context.Background()))
	require.NoError(t, manager.Invalidate())
	assert.Empty(t, manager.Current())

	// The invalidated session stays dead; no silent re-login.
	_, err := manager.GetToken(context.Background())
	assert.ErrorIs(t, err, ctf.ErrNotAuthenticated)
	assert.Equal(t, int32(1), hits.Load())

	// Invalidating with no session is an error.
	assert.ErrorIs(t, manager.Invalidate(), ctf.ErrNotAuthenticated)

	// An explicit Login revives the session.
	require.NoError(t, manager.Login(context.Background()))
	assert.Equal(t, "session-abc", manager.Current())
}

func TestSessionSetToken(t *testing.T) {
	t.Parallel()

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL: "http://127.0.0.1:0/oauth/auth/token",
	})

	manager.SetToken("manual-token", time.Now().Add(time.Hour))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual-token", token)
}

func TestTokenValidity(t *testing.T) {
	t.Parallel()

	var nilToken *auth.Token

	assert.False(t, nilToken.Valid())
	assert.False(t, (&auth.Token{}).Valid())
	assert.True(t, (&auth.Token{AccessToken: "x"}).Valid())
	assert.True(t, (&auth.Token{AccessToken: "x", ExpiresAt: time.Now().Add(time.Minute)}).Valid())
	assert.False(t, (&auth.Token{AccessToken: "x", ExpiresAt: time.Now().Add(-time.Minute)}).Valid())
}
