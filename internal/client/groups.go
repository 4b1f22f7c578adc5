package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// GroupsClient implements the ctf.GroupsClient interface.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new GroupsClient.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{httpClient: httpClient}
}

// List lists site-wide groups.
func (c *GroupsClient) List(ctx context.Context, params *ctf.QueryParams) (*ctf.TitledCollection[ctf.Group], error) {
	path := constants.FoundationBase + "/groups"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	return decodeItems[ctf.Group](c.httpClient.Logger(), resp.Body, "groups"), nil
}

// Create creates a new group.
func (c *GroupsClient) Create(ctx context.Context, request *ctf.GroupCreateRequest) (*ctf.Group, error) {
	path := constants.FoundationBase + "/groups"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	var group ctf.Group

	err = decodeEntity(resp.Body, &group, "group")
	if err != nil {
		return nil, err
	}

	return &group, nil
}

// Members lists the users belonging to a group.
func (c *GroupsClient) Members(ctx context.Context, groupID string) (*ctf.TitledCollection[ctf.User], error) {
	path := constants.FoundationBase + "/groups/" + groupID + "/members"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing group members: %w", err)
	}

	return decodeItems[ctf.User](c.httpClient.Logger(), resp.Body, "group members"), nil
}

// AddMember adds a user to a group.
func (c *GroupsClient) AddMember(ctx context.Context, groupID, username string) error {
	path := constants.FoundationBase + "/groups/" + groupID + "/members/" + username

	_, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("adding group member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a group.
func (c *GroupsClient) RemoveMember(ctx context.Context, groupID, username string) error {
	path := constants.FoundationBase + "/groups/" + groupID + "/members/" + username

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("removing group member: %w", err)
	}

	return nil
}
