package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// ScmClient implements the ctf.ScmClient interface.
type ScmClient struct {
	httpClient *http.Client
}

// NewScmClient creates a new ScmClient.
func NewScmClient(httpClient *http.Client) *ScmClient {
	return &ScmClient{httpClient: httpClient}
}

// Get retrieves a repository with its full detail set.
func (c *ScmClient) Get(ctx context.Context, repositoryID string) (*ctf.ScmRepository, error) {
	path := constants.ScmBase + "/repositories/" + repositoryID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting repository: %w", err)
	}

	var repository ctf.ScmRepository

	err = decodeEntity(resp.Body, &repository, "repository")
	if err != nil {
		return nil, err
	}

	repository.Refilled = true

	return &repository, nil
}

// ListForProject lists the repositories of a project. The listing carries
// summaries only; Refill a repository before relying on its detail fields.
func (c *ScmClient) ListForProject(ctx context.Context, projectID string) (*ctf.TitledCollection[ctf.ScmRepository], error) {
	path := constants.ScmBase + "/projects/" + projectID + "/repositories"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	return decodeItems[ctf.ScmRepository](c.httpClient.Logger(), resp.Body, "repositories"), nil
}

// Refill replaces a summary repository in place with its full record.
func (c *ScmClient) Refill(ctx context.Context, repository *ctf.ScmRepository) error {
	full, err := c.Get(ctx, repository.ID)
	if err != nil {
		return err
	}

	*repository = *full

	return nil
}
