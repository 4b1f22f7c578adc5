package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// SessionConfig configures a SessionTokenManager.
type SessionConfig struct {
	// TokenURL is the full token endpoint, e.g.
	// "https://forge.example.com/oauth/auth/token".
	TokenURL string
	// Username and Password drive the password grant.
	Username string
	Password string
	// OneTimeToken, when set, is exchanged instead of credentials. The
	// exchange happens at most once; the resulting session token is not
	// renewable.
	OneTimeToken string
	// HTTPClient is the client used for the token request. Nil uses a
	// default with a bounded timeout.
	HTTPClient *http.Client
}

// SessionTokenManager obtains a TeamForge session token via the OAuth-style
// token endpoint and caches it for the lifetime of the session. After
// Invalidate, every GetToken fails with ctf.ErrNotAuthenticated until Login
// is called again.
type SessionTokenManager struct {
	config     *SessionConfig
	httpClient *http.Client
	store      tokenStore

	mu           sync.Mutex
	loggedOut    bool
	oneTimeSpent bool
}

// NewSessionTokenManager creates a session token manager.
func NewSessionTokenManager(config *SessionConfig) *SessionTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	return &SessionTokenManager{
		config:     config,
		httpClient: httpClient,
	}
}

// GetToken returns the cached session token, logging in lazily when
// credentials are available. It never touches the network when the session
// has been invalidated or no credentials exist.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	loggedOut := m.loggedOut
	m.mu.Unlock()

	if loggedOut {
		return "", ctf.ErrNotAuthenticated
	}

	if !m.hasCredentials() {
		return "", ctf.ErrNotAuthenticated
	}

	err := m.Login(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a new token to be obtained with the configured
// credentials.
func (m *SessionTokenManager) RefreshToken(ctx context.Context) error {
	m.store.Clear()

	_, err := m.GetToken(ctx)

	return err
}

// SetToken manually sets the session token.
func (m *SessionTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})

	m.mu.Lock()
	m.loggedOut = false
	m.mu.Unlock()
}

// Current returns the cached token string, or "" when no session exists.
func (m *SessionTokenManager) Current() string {
	token := m.store.Get()
	if token == nil {
		return ""
	}

	return token.AccessToken
}

// Login exchanges the configured credentials for a session token.
func (m *SessionTokenManager) Login(ctx context.Context) error {
	if !m.hasCredentials() {
		return ctf.ErrNotAuthenticated
	}

	form := url.Values{}

	if m.config.OneTimeToken != "" {
		m.mu.Lock()
		spent := m.oneTimeSpent
		m.oneTimeSpent = true
		m.mu.Unlock()

		if spent {
			return ctf.ErrTokenNotRenewable
		}

		form.Set("grant_type", constants.GrantTypeOneTimeToken)
		form.Set("token", m.config.OneTimeToken)
	} else {
		form.Set("grant_type", constants.GrantTypePassword)
		form.Set("username", m.config.Username)
		form.Set("password", m.config.Password)
	}

	token, err := m.requestToken(ctx, form)
	if err != nil {
		return err
	}

	m.store.Set(token)

	m.mu.Lock()
	m.loggedOut = false
	m.mu.Unlock()

	return nil
}

// Invalidate discards the session token. The manager refuses further
// operations until Login is called again. Invalidating twice is an error.
func (m *SessionTokenManager) Invalidate() error {
	if m.store.Get() == nil {
		return ctf.ErrNotAuthenticated
	}

	m.store.Clear()

	m.mu.Lock()
	m.loggedOut = true
	m.mu.Unlock()

	return nil
}

func (m *SessionTokenManager) hasCredentials() bool {
	if m.config.OneTimeToken != "" {
		return true
	}

	return m.config.Username != "" && m.config.Password != ""
}

func (m *SessionTokenManager) requestToken(ctx context.Context, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting session token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", ctf.ErrAuthenticationFailed, ctf.ExtractMessage(body))
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: %s", ctf.ErrAuthenticationFailed, constants.ErrNoAccessTokenInResponse)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}
