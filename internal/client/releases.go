package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// ReleasesClient implements the ctf.ReleasesClient interface for FRS
// releases and the files attached to them.
type ReleasesClient struct {
	httpClient *http.Client
}

// NewReleasesClient creates a new ReleasesClient.
func NewReleasesClient(httpClient *http.Client) *ReleasesClient {
	return &ReleasesClient{httpClient: httpClient}
}

// Get retrieves a specific release.
func (c *ReleasesClient) Get(ctx context.Context, id string) (*ctf.Release, error) {
	path := constants.FRSBase + "/releases/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting release: %w", err)
	}

	var release ctf.Release

	err = decodeEntity(resp.Body, &release, "release")
	if err != nil {
		return nil, err
	}

	return &release, nil
}

// ListForPackage lists the releases of a package.
func (c *ReleasesClient) ListForPackage(ctx context.Context, packageID string) (*ctf.TitledCollection[ctf.Release], error) {
	path := constants.FRSBase + "/packages/" + packageID + "/releases"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}

	return decodeItems[ctf.Release](c.httpClient.Logger(), resp.Body, "releases"), nil
}

// Create creates a new release in a package.
func (c *ReleasesClient) Create(ctx context.Context, packageID string, request *ctf.ReleaseCreateRequest) (*ctf.Release, error) {
	path := constants.FRSBase + "/packages/" + packageID + "/releases"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating release: %w", err)
	}

	var release ctf.Release

	err = decodeEntity(resp.Body, &release, "release")
	if err != nil {
		return nil, err
	}

	return &release, nil
}

// Delete deletes a release.
func (c *ReleasesClient) Delete(ctx context.Context, id string) error {
	path := constants.FRSBase + "/releases/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting release: %w", err)
	}

	return nil
}

// Files lists the files attached to a release.
func (c *ReleasesClient) Files(ctx context.Context, releaseID string) (*ctf.TitledCollection[ctf.ReleaseFile], error) {
	path := constants.FRSBase + "/releases/" + releaseID + "/files"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing release files: %w", err)
	}

	return decodeItems[ctf.ReleaseFile](c.httpClient.Logger(), resp.Body, "release files"), nil
}

// AttachFile attaches a previously uploaded file to a release. The file id
// must come from the same session's file storage upload.
func (c *ReleasesClient) AttachFile(ctx context.Context, releaseID string, request *ctf.ReleaseFileRequest) (*ctf.ReleaseFile, error) {
	path := constants.FRSBase + "/releases/" + releaseID + "/files"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("attaching release file: %w", err)
	}

	var file ctf.ReleaseFile

	err = decodeEntity(resp.Body, &file, "release file")
	if err != nil {
		return nil, err
	}

	return &file, nil
}

// DeleteFile removes a file from its release. Release files are immutable;
// deletion is the only mutation.
func (c *ReleasesClient) DeleteFile(ctx context.Context, fileID string) error {
	path := constants.FRSBase + "/files/" + fileID

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting release file: %w", err)
	}

	return nil
}
