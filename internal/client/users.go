package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// UsersClient implements the ctf.UsersClient interface.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new UsersClient.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// Get retrieves a user by username, including the full detail fields.
func (c *UsersClient) Get(ctx context.Context, username string) (*ctf.User, error) {
	path := constants.FoundationBase + "/users/" + username

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user ctf.User

	err = decodeEntity(resp.Body, &user, "user")
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List lists user accounts. The collection title is the username.
func (c *UsersClient) List(ctx context.Context, params *ctf.QueryParams) (*ctf.TitledCollection[ctf.User], error) {
	path := constants.FoundationBase + "/users"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return decodeItems[ctf.User](c.httpClient.Logger(), resp.Body, "users"), nil
}

// Create creates a new user account.
func (c *UsersClient) Create(ctx context.Context, request *ctf.UserCreateRequest) (*ctf.User, error) {
	path := constants.FoundationBase + "/users"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var user ctf.User

	err = decodeEntity(resp.Body, &user, "user")
	if err != nil {
		return nil, err
	}

	return &user, nil
}
