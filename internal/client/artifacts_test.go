package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge-io/ctf/internal/client"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

func artifactJSON(id, title string, extra map[string]interface{}) map[string]interface{} {
	body := map[string]interface{}{"id": id, "title": title}
	for key, value := range extra {
		body[key] = value
	}

	return body
}

func TestArtifactsGetIsRefilled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/tracker/v2/artifacts/artf1001", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(artifactJSON("artf1001", "Crash on save", map[string]interface{}{
			"status":      "Open",
			"statusClass": "Open",
			"priority":    "3",
		}))
	}))
	defer server.Close()

	artifact, err := client.NewTestClient(server.URL).Artifacts().Get(context.Background(), "artf1001")
	require.NoError(t, err)
	assert.True(t, artifact.Refilled)
	assert.Equal(t, "Open", artifact.Status)
	assert.Equal(t, 3, artifact.Priority.Int())
}

func TestArtifactsListYieldsSummaries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/tracker/v2/trackers/tracker1/artifacts", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				artifactJSON("artf1001", "Crash on save", nil),
				artifactJSON("artf1002", "Typo in header", nil),
			},
		})
	}))
	defer server.Close()

	artifacts, err := client.NewTestClient(server.URL).Artifacts().
		List(context.Background(), "tracker1", nil)
	require.NoError(t, err)
	require.Equal(t, 2, artifacts.Len())
	assert.False(t, artifacts.At(0).Refilled)
	assert.False(t, artifacts.At(1).Refilled)
}

func TestArtifactsFindByTitle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/tracker/v2/trackers/tracker1/artifacts/filter", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)

		var filter ctf.ArtifactFilterRequest

		require.NoError(t, json.NewDecoder(request.Body).Decode(&filter))
		assert.Equal(t, "Crash on save", filter.Title)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				artifactJSON("artf1001", "Crash on save", nil),
			},
		})
	}))
	defer server.Close()

	matches, err := client.NewTestClient(server.URL).Artifacts().
		FindByTitle(context.Background(), "tracker1", "Crash on save")
	require.NoError(t, err)
	require.Equal(t, 1, matches.Len())
	assert.False(t, matches.At(0).Refilled)
}

func TestArtifactsUpdateRequiresRefill(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	artifacts := client.NewTestClient(server.URL).Artifacts()

	summary := &ctf.Artifact{}
	summary.ID = "artf1001"

	// A summary straight out of a list must be refused before any request.
	updated, err := artifacts.Update(context.Background(), summary,
		&ctf.ArtifactUpdateRequest{Status: "Closed"})
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ctf.ErrArtifactNotRefilled)
	assert.Equal(t, int32(0), hits.Load())
}

func TestArtifactsRefillThenUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch request.Method {
		case http.MethodGet:
			assert.Equal(t, "/ctfrest/tracker/v2/artifacts/artf1001", request.URL.Path)
			_ = json.NewEncoder(writer).Encode(artifactJSON("artf1001", "Crash on save", map[string]interface{}{
				"status":          "Open",
				"estimatedEffort": 8,
			}))
		case http.MethodPatch:
			assert.Equal(t, "/ctfrest/tracker/v2/artifacts/artf1001", request.URL.Path)

			var body ctf.ArtifactUpdateRequest

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "Closed", body.Status)

			_ = json.NewEncoder(writer).Encode(artifactJSON("artf1001", "Crash on save", map[string]interface{}{
				"status": "Closed",
			}))
		default:
			t.Errorf("unexpected method %s", request.Method)
		}
	}))
	defer server.Close()

	artifacts := client.NewTestClient(server.URL).Artifacts()

	summary := &ctf.Artifact{}
	summary.ID = "artf1001"
	summary.Title = "Crash on save"

	require.NoError(t, artifacts.Refill(context.Background(), summary))
	assert.True(t, summary.Refilled)
	assert.Equal(t, 8, summary.EstimatedEffort.Int())

	updated, err := artifacts.Update(context.Background(), summary,
		&ctf.ArtifactUpdateRequest{Status: "Closed"})
	require.NoError(t, err)
	assert.Equal(t, "Closed", updated.Status)
	assert.True(t, updated.Refilled)
}

func TestArtifactsCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/tracker/v2/trackers/tracker1/artifacts", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(artifactJSON("artf2001", "New issue", nil))
	}))
	defer server.Close()

	artifact, err := client.NewTestClient(server.URL).Artifacts().
		Create(context.Background(), "tracker1", &ctf.ArtifactCreateRequest{Title: "New issue"})
	require.NoError(t, err)
	assert.Equal(t, "artf2001", artifact.ID)
	assert.True(t, artifact.Refilled)
}
