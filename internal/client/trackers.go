package client

import (
	"context"
	"fmt"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// TrackersClient implements the ctf.TrackersClient interface.
type TrackersClient struct {
	httpClient *http.Client
}

// NewTrackersClient creates a new TrackersClient.
func NewTrackersClient(httpClient *http.Client) *TrackersClient {
	return &TrackersClient{httpClient: httpClient}
}

// Get retrieves a specific tracker.
func (c *TrackersClient) Get(ctx context.Context, id string) (*ctf.Tracker, error) {
	path := constants.TrackerBase + "/trackers/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting tracker: %w", err)
	}

	var tracker ctf.Tracker

	err = decodeEntity(resp.Body, &tracker, "tracker")
	if err != nil {
		return nil, err
	}

	return &tracker, nil
}

// ListForProject lists the trackers of a project.
func (c *TrackersClient) ListForProject(ctx context.Context, projectID string) (*ctf.TitledCollection[ctf.Tracker], error) {
	path := constants.TrackerBase + "/projects/" + projectID + "/trackers"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing trackers: %w", err)
	}

	return decodeItems[ctf.Tracker](c.httpClient.Logger(), resp.Body, "trackers"), nil
}

// Create creates a new tracker in a project.
func (c *TrackersClient) Create(ctx context.Context, projectID string, request *ctf.TrackerCreateRequest) (*ctf.Tracker, error) {
	path := constants.TrackerBase + "/projects/" + projectID + "/trackers"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating tracker: %w", err)
	}

	var tracker ctf.Tracker

	err = decodeEntity(resp.Body, &tracker, "tracker")
	if err != nil {
		return nil, err
	}

	return &tracker, nil
}
