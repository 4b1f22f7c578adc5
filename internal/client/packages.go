package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// PackagesClient implements the ctf.PackagesClient interface for FRS
// packages, the top containers of the file release hierarchy.
type PackagesClient struct {
	httpClient *http.Client
}

// NewPackagesClient creates a new PackagesClient.
func NewPackagesClient(httpClient *http.Client) *PackagesClient {
	return &PackagesClient{httpClient: httpClient}
}

// Get retrieves a specific package.
func (c *PackagesClient) Get(ctx context.Context, id string) (*ctf.Package, error) {
	path := constants.FRSBase + "/packages/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting package: %w", err)
	}

	var pkg ctf.Package

	err = decodeEntity(resp.Body, &pkg, "package")
	if err != nil {
		return nil, err
	}

	return &pkg, nil
}

// ListForProject lists the packages of a project.
func (c *PackagesClient) ListForProject(ctx context.Context, projectID string) (*ctf.TitledCollection[ctf.Package], error) {
	path := constants.FRSBase + "/projects/" + projectID + "/packages"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}

	return decodeItems[ctf.Package](c.httpClient.Logger(), resp.Body, "packages"), nil
}

// Create creates a new package in a project.
func (c *PackagesClient) Create(ctx context.Context, projectID string, request *ctf.PackageCreateRequest) (*ctf.Package, error) {
	path := constants.FRSBase + "/projects/" + projectID + "/packages"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating package: %w", err)
	}

	var pkg ctf.Package

	err = decodeEntity(resp.Body, &pkg, "package")
	if err != nil {
		return nil, err
	}

	return &pkg, nil
}

// Delete deletes a package.
func (c *PackagesClient) Delete(ctx context.Context, id string) error {
	path := constants.FRSBase + "/packages/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting package: %w", err)
	}

	return nil
}
