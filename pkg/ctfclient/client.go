// Package ctfclient provides the main entry point for creating TeamForge
// API clients.
package ctfclient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teamforge-io/ctf/internal/client"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// ErrConfigRequired is returned when New is called with a nil config.
var ErrConfigRequired = errors.New("config is required")

// New creates a new TeamForge API client.
func New(ctx context.Context, config *ctf.Config) (ctf.Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if config.ServerURL == "" {
		return nil, ctf.ErrServerURLRequired
	}

	serverURL := strings.TrimSuffix(config.ServerURL, "/")
	if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
		serverURL = "https://" + serverURL
	}

	config.ServerURL = serverURL

	ctfClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return ctfClient, nil
}
