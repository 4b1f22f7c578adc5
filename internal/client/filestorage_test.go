package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge-io/ctf/internal/client"
)

func uploadServer(t *testing.T, wantFileName string, content []byte) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/filestorage/v1/files", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)

		require.NoError(t, request.ParseMultipartForm(1<<20))

		file, header, err := request.FormFile("file")
		require.NoError(t, err)

		defer func() { _ = file.Close() }()

		assert.Equal(t, wantFileName, header.Filename)

		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, got)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"guid":     "upload-guid",
			"fileName": wantFileName,
			"size":     len(content),
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func TestFilesUpload(t *testing.T) {
	t.Parallel()

	content := []byte("binary payload")
	server := uploadServer(t, "app.tar.gz", content)

	stored, err := client.NewTestClient(server.URL).Files().
		Upload(context.Background(), "app.tar.gz", content)
	require.NoError(t, err)
	assert.Equal(t, "upload-guid", stored.GUID)
	assert.Equal(t, len(content), stored.Size.Int())
}

func TestFilesUploadPath(t *testing.T) {
	t.Parallel()

	content := []byte("file on disk")
	server := uploadServer(t, "report.txt", content)

	localPath := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(localPath, content, 0600))

	stored, err := client.NewTestClient(server.URL).Files().
		UploadPath(context.Background(), localPath)
	require.NoError(t, err)
	assert.Equal(t, "upload-guid", stored.GUID)
}

func TestFilesUploadPathMissingFile(t *testing.T) {
	t.Parallel()

	server := uploadServer(t, "never.txt", nil)

	_, err := client.NewTestClient(server.URL).Files().
		UploadPath(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilesDownload(t *testing.T) {
	t.Parallel()

	content := []byte("stored bytes")

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/filestorage/v1/files/upload-guid", request.URL.Path)

		writer.Header().Set("Content-Type", "application/octet-stream")
		_, _ = writer.Write(content)
	}))
	defer server.Close()

	got, err := client.NewTestClient(server.URL).Files().
		Download(context.Background(), "upload-guid")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}
