// Package client implements the ctf.Client interface: one resource client
// per endpoint family, all sharing a single authenticated transport and the
// session it carries.
package client

import (
	"context"
	"time"

	"github.com/teamforge-io/ctf/internal/auth"
	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// Client implements the ctf.Client interface.
type Client struct {
	httpClient     *http.Client
	tokenManager   auth.TokenManager
	sessionManager *auth.SessionTokenManager
	serverURL      string
	username       string
	logger         ctf.Logger

	// Resource clients
	projects  ctf.ProjectsClient
	users     ctf.UsersClient
	groups    ctf.GroupsClient
	roles     ctf.RolesClient
	trackers  ctf.TrackersClient
	artifacts ctf.ArtifactsClient
	packages  ctf.PackagesClient
	releases  ctf.ReleasesClient
	documents ctf.DocumentsClient
	scm       ctf.ScmClient
	files     ctf.FilesClient
}

// New creates a new TeamForge API client.
func New(_ context.Context, config *ctf.Config) (*Client, error) {
	if config.ServerURL == "" {
		return nil, ctf.ErrServerURLRequired
	}

	client := &Client{
		serverURL: config.ServerURL,
		username:  config.Username,
		logger:    config.Logger,
	}

	client.tokenManager, client.sessionManager = createTokenManager(config)
	client.httpClient = http.NewClient(config.ServerURL, client.tokenManager, createHTTPClientOptions(config)...)
	client.initializeResourceClients()

	return client, nil
}

// createTokenManager picks the token manager for the configured
// credentials. The second return is non-nil only for credential-backed
// sessions that support login/logout.
func createTokenManager(config *ctf.Config) (auth.TokenManager, *auth.SessionTokenManager) {
	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}, nil
	}

	manager := auth.NewSessionTokenManager(&auth.SessionConfig{
		TokenURL:     config.ServerURL + constants.TokenPath,
		Username:     config.Username,
		Password:     config.Password,
		OneTimeToken: config.OneTimeToken,
	})

	return manager, manager
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *ctf.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.projects = NewProjectsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.groups = NewGroupsClient(c.httpClient)
	c.roles = NewRolesClient(c.httpClient)
	c.trackers = NewTrackersClient(c.httpClient)
	c.artifacts = NewArtifactsClient(c.httpClient)
	c.packages = NewPackagesClient(c.httpClient)
	c.releases = NewReleasesClient(c.httpClient)
	c.documents = NewDocumentsClient(c.httpClient)
	c.scm = NewScmClient(c.httpClient)
	c.files = NewFilesClient(c.httpClient)
}

// Login implements ctf.SessionClient.Login.
func (c *Client) Login(ctx context.Context) error {
	if c.sessionManager == nil {
		// Static token; there is nothing to exchange.
		return nil
	}

	return c.sessionManager.Login(ctx)
}

// Logout implements ctf.SessionClient.Logout.
func (c *Client) Logout() error {
	if c.sessionManager == nil {
		return ctf.ErrNotAuthenticated
	}

	return c.sessionManager.Invalidate()
}

// SessionID implements ctf.SessionClient.SessionID.
func (c *Client) SessionID() string {
	if c.sessionManager != nil {
		return c.sessionManager.Current()
	}

	token, err := c.tokenManager.GetToken(context.Background())
	if err != nil {
		return ""
	}

	return token
}

// ServerURL implements ctf.SessionClient.ServerURL.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// CurrentUsername implements ctf.SessionClient.CurrentUsername.
func (c *Client) CurrentUsername() string {
	return c.username
}

// Resource client accessors

// Projects implements ctf.Client.Projects.
func (c *Client) Projects() ctf.ProjectsClient { return c.projects }

// Users implements ctf.Client.Users.
func (c *Client) Users() ctf.UsersClient { return c.users }

// Groups implements ctf.Client.Groups.
func (c *Client) Groups() ctf.GroupsClient { return c.groups }

// Roles implements ctf.Client.Roles.
func (c *Client) Roles() ctf.RolesClient { return c.roles }

// Trackers implements ctf.Client.Trackers.
func (c *Client) Trackers() ctf.TrackersClient { return c.trackers }

// Artifacts implements ctf.Client.Artifacts.
func (c *Client) Artifacts() ctf.ArtifactsClient { return c.artifacts }

// Packages implements ctf.Client.Packages.
func (c *Client) Packages() ctf.PackagesClient { return c.packages }

// Releases implements ctf.Client.Releases.
func (c *Client) Releases() ctf.ReleasesClient { return c.releases }

// Documents implements ctf.Client.Documents.
func (c *Client) Documents() ctf.DocumentsClient { return c.documents }

// Scm implements ctf.Client.Scm.
func (c *Client) Scm() ctf.ScmClient { return c.scm }

// Files implements ctf.Client.Files.
func (c *Client) Files() ctf.FilesClient { return c.files }

// staticTokenManager provides a pre-obtained session token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(_ context.Context) (string, error) {
	if m.token == "" {
		return "", ctf.ErrNotAuthenticated
	}

	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(_ context.Context) error {
	return ctf.ErrTokenNotRenewable
}

func (m *staticTokenManager) SetToken(token string, _ time.Time) {
	m.token = token
}

// loggerAdapter adapts ctf.Logger to the transport's logger.
type loggerAdapter struct {
	logger ctf.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
