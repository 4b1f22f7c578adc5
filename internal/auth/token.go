package auth

import (
	"context"
	"sync"
	"time"
)

// TokenManager manages the session token used for Bearer authentication.
type TokenManager interface {
	// GetToken returns a valid session token, obtaining one if needed.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a new token to be obtained.
	RefreshToken(ctx context.Context) error
	// SetToken manually sets the session token.
	SetToken(token string, expiresAt time.Time)
}

// Token is the token endpoint response.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"-"`
}

// Valid reports whether the token exists and has not expired.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Before(t.ExpiresAt)
}

// tokenStore guards the cached token. The token is written by login and
// logout only; request paths read it.
type tokenStore struct {
	mu    sync.RWMutex
	token *Token
}

func (s *tokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *tokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

func (s *tokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
