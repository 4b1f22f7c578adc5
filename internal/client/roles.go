package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// RolesClient implements the ctf.RolesClient interface.
type RolesClient struct {
	httpClient *http.Client
}

// NewRolesClient creates a new RolesClient.
func NewRolesClient(httpClient *http.Client) *RolesClient {
	return &RolesClient{httpClient: httpClient}
}

// ListForProject lists the roles defined in a project.
func (c *RolesClient) ListForProject(ctx context.Context, projectID string) (*ctf.TitledCollection[ctf.Role], error) {
	path := constants.FoundationBase + "/projects/" + projectID + "/roles"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	return decodeItems[ctf.Role](c.httpClient.Logger(), resp.Body, "roles"), nil
}

// Create creates a new role in a project.
func (c *RolesClient) Create(ctx context.Context, projectID string, request *ctf.RoleCreateRequest) (*ctf.Role, error) {
	path := constants.FoundationBase + "/projects/" + projectID + "/roles"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	var role ctf.Role

	err = decodeEntity(resp.Body, &role, "role")
	if err != nil {
		return nil, err
	}

	return &role, nil
}

// Members lists the users holding a role.
func (c *RolesClient) Members(ctx context.Context, roleID string) (*ctf.TitledCollection[ctf.User], error) {
	path := constants.FoundationBase + "/roles/" + roleID + "/members"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing role members: %w", err)
	}

	return decodeItems[ctf.User](c.httpClient.Logger(), resp.Body, "role members"), nil
}

// Grant grants a role to a user.
func (c *RolesClient) Grant(ctx context.Context, roleID, username string) error {
	path := constants.FoundationBase + "/roles/" + roleID + "/members/" + username

	_, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("granting role: %w", err)
	}

	return nil
}
