package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge-io/ctf/internal/client"
)

func TestScmGetIsRefilled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/scm/v1/repositories/repo1", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"id":                   "repo1",
			"title":                "backend",
			"systemId":             "exsy1001",
			"scmViewerUrl":         "https://forge.example.com/sf/scm/do/listCommits/projects.demo/backend",
			"scmAdapterName":       "GitHub",
			"idRequiredOnCommit":   "true",
			"isOnManagedScmServer": false,
		})
	}))
	defer server.Close()

	repository, err := client.NewTestClient(server.URL).Scm().Get(context.Background(), "repo1")
	require.NoError(t, err)
	assert.True(t, repository.Refilled)
	assert.Equal(t, "exsy1001", repository.SystemID)
	assert.Equal(t, "GitHub", repository.AdapterName)
	assert.True(t, repository.IDRequiredOnCommit.Bool())
	assert.False(t, repository.OnManagedServer.Bool())
}

func TestScmListThenRefill(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch request.URL.Path {
		case "/ctfrest/scm/v1/projects/prj1/repositories":
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"items": []map[string]string{
					{"id": "repo1", "title": "backend"},
					{"id": "repo2", "title": "frontend"},
				},
			})
		case "/ctfrest/scm/v1/repositories/repo1":
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"id":       "repo1",
				"title":    "backend",
				"systemId": "exsy1001",
			})
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	}))
	defer server.Close()

	scm := client.NewTestClient(server.URL).Scm()
	ctx := context.Background()

	repositories, err := scm.ListForProject(ctx, "prj1")
	require.NoError(t, err)
	require.Equal(t, 2, repositories.Len())

	summary := repositories.ByTitle("backend")
	require.NotNil(t, summary)
	assert.False(t, summary.Refilled)
	assert.Empty(t, summary.SystemID)

	require.NoError(t, scm.Refill(ctx, summary))
	assert.True(t, summary.Refilled)
	assert.Equal(t, "exsy1001", summary.SystemID)
}
