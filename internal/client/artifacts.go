package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// ArtifactsClient implements the ctf.ArtifactsClient interface.
//
// Artifacts decoded from List and FindByTitle are summaries: the server
// omits flex fields and effort data there. Refill fetches the complete
// record; Update refuses a summary so partial data can never be written
// back over a full record.
type ArtifactsClient struct {
	httpClient *http.Client
}

// NewArtifactsClient creates a new ArtifactsClient.
func NewArtifactsClient(httpClient *http.Client) *ArtifactsClient {
	return &ArtifactsClient{httpClient: httpClient}
}

// Get retrieves the full record of an artifact.
func (c *ArtifactsClient) Get(ctx context.Context, id string) (*ctf.Artifact, error) {
	path := constants.TrackerV2Base + "/artifacts/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting artifact: %w", err)
	}

	var artifact ctf.Artifact

	err = decodeEntity(resp.Body, &artifact, "artifact")
	if err != nil {
		return nil, err
	}

	artifact.Refilled = true

	return &artifact, nil
}

// List lists the artifacts of a tracker. The result carries summaries.
func (c *ArtifactsClient) List(ctx context.Context, trackerID string, params *ctf.QueryParams) (*ctf.TitledCollection[ctf.Artifact], error) {
	path := constants.TrackerV2Base + "/trackers/" + trackerID + "/artifacts"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	return decodeItems[ctf.Artifact](c.httpClient.Logger(), resp.Body, "artifacts"), nil
}

// FindByTitle runs the title-filtered artifact search. The result carries
// summaries.
func (c *ArtifactsClient) FindByTitle(ctx context.Context, trackerID, title string) (*ctf.TitledCollection[ctf.Artifact], error) {
	path := constants.TrackerV2Base + "/trackers/" + trackerID + "/artifacts/filter"

	resp, err := c.httpClient.Post(ctx, path, &ctf.ArtifactFilterRequest{Title: title})
	if err != nil {
		return nil, fmt.Errorf("searching artifacts: %w", err)
	}

	return decodeItems[ctf.Artifact](c.httpClient.Logger(), resp.Body, "artifact search"), nil
}

// Create creates a new artifact in a tracker. The creation endpoint
// answers 200 or 201 depending on server version; both count as success.
func (c *ArtifactsClient) Create(ctx context.Context, trackerID string, request *ctf.ArtifactCreateRequest) (*ctf.Artifact, error) {
	path := constants.TrackerV2Base + "/trackers/" + trackerID + "/artifacts"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating artifact: %w", err)
	}

	var artifact ctf.Artifact

	err = decodeEntity(resp.Body, &artifact, "artifact")
	if err != nil {
		return nil, err
	}

	artifact.Refilled = true

	return &artifact, nil
}

// Refill fetches the complete record of a summary artifact and overwrites
// every field in place.
func (c *ArtifactsClient) Refill(ctx context.Context, artifact *ctf.Artifact) error {
	full, err := c.Get(ctx, artifact.ID)
	if err != nil {
		return fmt.Errorf("refilling artifact: %w", err)
	}

	*artifact = *full

	return nil
}

// Update applies a partial update to a refilled artifact. Updating a
// summary fails fast with ctf.ErrArtifactNotRefilled before any network
// call.
func (c *ArtifactsClient) Update(ctx context.Context, artifact *ctf.Artifact, request *ctf.ArtifactUpdateRequest) (*ctf.Artifact, error) {
	if !artifact.Refilled {
		return nil, fmt.Errorf("artifact %s: %w", artifact.ID, ctf.ErrArtifactNotRefilled)
	}

	path := constants.TrackerV2Base + "/artifacts/" + artifact.ID

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating artifact: %w", err)
	}

	var updated ctf.Artifact

	err = decodeEntity(resp.Body, &updated, "artifact")
	if err != nil {
		return nil, err
	}

	updated.Refilled = true

	return &updated, nil
}
