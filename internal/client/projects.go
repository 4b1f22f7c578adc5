package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// ProjectsClient implements the ctf.ProjectsClient interface.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new ProjectsClient.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// Get retrieves a specific project.
func (c *ProjectsClient) Get(ctx context.Context, id string) (*ctf.Project, error) {
	path := constants.FoundationBase + "/projects/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var project ctf.Project

	err = decodeEntity(resp.Body, &project, "project")
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// GetByTitle finds a project by its title among all projects.
func (c *ProjectsClient) GetByTitle(ctx context.Context, title string) (*ctf.Project, error) {
	projects, err := c.List(ctx, &ctf.QueryParams{Count: ctf.FetchAll})
	if err != nil {
		return nil, err
	}

	project := projects.ByTitle(title)
	if project == nil {
		return nil, fmt.Errorf("%q: %w", title, ctf.ErrProjectNotFound)
	}

	return project, nil
}

// List lists all projects visible to the session.
func (c *ProjectsClient) List(ctx context.Context, params *ctf.QueryParams) (*ctf.TitledCollection[ctf.Project], error) {
	path := constants.FoundationBase + "/projects"

	query := queryValues(params)

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return decodeItems[ctf.Project](c.httpClient.Logger(), resp.Body, "projects"), nil
}

// Create creates a new project.
func (c *ProjectsClient) Create(ctx context.Context, request *ctf.ProjectCreateRequest) (*ctf.Project, error) {
	path := constants.FoundationBase + "/projects"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	var project ctf.Project

	err = decodeEntity(resp.Body, &project, "project")
	if err != nil {
		return nil, err
	}

	return &project, nil
}
