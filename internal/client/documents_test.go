package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge-io/ctf/internal/client"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// folderTreeServer simulates the docman folder endpoints over an in-memory
// tree, counting folder creations.
type folderTreeServer struct {
	mu       sync.Mutex
	nextID   int
	children map[string][]folderNode // parent id -> children
	creates  int
}

type folderNode struct {
	id    string
	title string
}

func newFolderTreeServer() *folderTreeServer {
	return &folderTreeServer{
		nextID:   1,
		children: make(map[string][]folderNode),
	}
}

func (s *folderTreeServer) add(parentID, title string) folderNode {
	node := folderNode{id: s.newID(), title: title}
	s.children[parentID] = append(s.children[parentID], node)

	return node
}

func (s *folderTreeServer) newID() string {
	id := "folder" + strconv.Itoa(s.nextID)
	s.nextID++

	return id
}

func (s *folderTreeServer) handler(t *testing.T) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")

		path := request.URL.Path

		switch {
		case strings.HasSuffix(path, "/rootfolder"):
			_ = json.NewEncoder(writer).Encode(map[string]string{"id": "root", "title": "Root Folder"})

		case request.Method == http.MethodGet && strings.HasSuffix(path, "/documentfolders"):
			folderID := strings.TrimSuffix(strings.TrimPrefix(path, "/ctfrest/docman/v1/documentfolders/"), "/documentfolders")

			items := make([]map[string]string, 0, len(s.children[folderID]))
			for _, child := range s.children[folderID] {
				items = append(items, map[string]string{"id": child.id, "title": child.title})
			}

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"items": items})

		case request.Method == http.MethodPost && strings.HasSuffix(path, "/documentfolders"):
			folderID := strings.TrimSuffix(strings.TrimPrefix(path, "/ctfrest/docman/v1/documentfolders/"), "/documentfolders")

			var body map[string]string

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

			node := s.add(folderID, body["title"])
			s.creates++

			writer.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(writer).Encode(map[string]string{"id": node.id, "title": node.title})

		default:
			t.Errorf("unexpected request %s %s", request.Method, path)
		}
	}
}

func (s *folderTreeServer) createCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.creates
}

func TestGetOrCreatePathCreatesMissingSegments(t *testing.T) {
	t.Parallel()

	tree := newFolderTreeServer()
	server := httptest.NewServer(tree.handler(t))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	leaf, err := documents.GetOrCreatePath(context.Background(), "prj1", "builds/nightly/logs")
	require.NoError(t, err)
	assert.Equal(t, "logs", leaf.Title)
	assert.Equal(t, 3, tree.createCount())
}

func TestGetOrCreatePathIsIdempotent(t *testing.T) {
	t.Parallel()

	tree := newFolderTreeServer()
	server := httptest.NewServer(tree.handler(t))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	first, err := documents.GetOrCreatePath(context.Background(), "prj1", "builds/nightly")
	require.NoError(t, err)
	require.Equal(t, 2, tree.createCount())

	// A second resolution of the same path walks the existing folders and
	// creates nothing.
	second, err := documents.GetOrCreatePath(context.Background(), "prj1", "builds/nightly")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, tree.createCount())
}

func TestGetOrCreatePathPartiallyExisting(t *testing.T) {
	t.Parallel()

	tree := newFolderTreeServer()
	tree.add("root", "builds")
	server := httptest.NewServer(tree.handler(t))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	leaf, err := documents.GetOrCreatePath(context.Background(), "prj1", "builds/nightly/logs")
	require.NoError(t, err)
	assert.Equal(t, "logs", leaf.Title)
	// Only the two missing segments were created.
	assert.Equal(t, 2, tree.createCount())
}

func TestGetOrCreatePathSkipsRootTitle(t *testing.T) {
	t.Parallel()

	tree := newFolderTreeServer()
	server := httptest.NewServer(tree.handler(t))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	// A leading segment naming the root folder itself resolves to the root.
	leaf, err := documents.GetOrCreatePath(context.Background(), "prj1", "/Root Folder/builds/")
	require.NoError(t, err)
	assert.Equal(t, "builds", leaf.Title)
	assert.Equal(t, 1, tree.createCount())

	root, err := documents.GetOrCreatePath(context.Background(), "prj1", "Root Folder")
	require.NoError(t, err)
	assert.Equal(t, "root", root.ID)
}

func TestGetOrCreatePathEmpty(t *testing.T) {
	t.Parallel()

	tree := newFolderTreeServer()
	server := httptest.NewServer(tree.handler(t))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	_, err := documents.GetOrCreatePath(context.Background(), "prj1", "///")
	require.Error(t, err)
	assert.ErrorIs(t, err, ctf.ErrEmptyFolderPath)
}

func TestVerifyPath(t *testing.T) {
	t.Parallel()

	tree := newFolderTreeServer()
	builds := tree.add("root", "builds")
	tree.add(builds.id, "nightly")
	server := httptest.NewServer(tree.handler(t))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	leaf, err := documents.VerifyPath(context.Background(), "prj1", "builds/nightly")
	require.NoError(t, err)
	assert.Equal(t, "nightly", leaf.Title)

	// Verification never creates; the first missing segment is named in the
	// error.
	_, err = documents.VerifyPath(context.Background(), "prj1", "builds/weekly/logs")
	require.Error(t, err)
	assert.ErrorIs(t, err, ctf.ErrPathSegmentNotFound)
	assert.Contains(t, err.Error(), "weekly")
	assert.Equal(t, 0, tree.createCount())
}

func TestCreateFolderRequires201(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		// A 200 from the folder creation endpoint means the server did not
		// actually create anything.
		_ = json.NewEncoder(writer).Encode(map[string]string{"id": "folder1", "title": "builds"})
	}))
	defer server.Close()

	folder, err := client.NewTestClient(server.URL).Documents().
		CreateFolder(context.Background(), "root", "builds", "")
	require.Error(t, err)
	assert.Nil(t, folder)
}

func TestCreateAndUpdateDocument(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")

		switch request.Method {
		case http.MethodPost:
			assert.Equal(t, "/ctfrest/docman/v1/documentfolders/folder1/documents", request.URL.Path)

			var body ctf.DocumentCreateRequest

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "report.pdf", body.FileName)
			assert.Equal(t, "file-guid", body.FileID)

			writer.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"id": "doc1", "title": "Report", "currentVersion": 1,
			})
		case http.MethodPatch:
			assert.Equal(t, "/ctfrest/docman/v1/documents/doc1", request.URL.Path)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"id": "doc1", "title": "Report", "currentVersion": 2,
			})
		default:
			t.Errorf("unexpected method %s", request.Method)
		}
	}))
	defer server.Close()

	documents := client.NewTestClient(server.URL).Documents()

	created, err := documents.CreateDocument(context.Background(), "folder1", &ctf.DocumentCreateRequest{
		Title:    "Report",
		FileID:   "file-guid",
		FileName: "report.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.CurrentVersion.Int())

	updated, err := documents.UpdateDocument(context.Background(), "doc1", &ctf.DocumentUpdateRequest{
		FileID:   "file-guid-2",
		FileName: "report.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentVersion.Int())
}

func TestListDocuments(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ctfrest/docman/v1/documentfolders/folder1/documents", request.URL.Path)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": "doc1", "title": "Report", "fileName": "report.pdf"},
			},
		})
	}))
	defer server.Close()

	docs, err := client.NewTestClient(server.URL).Documents().
		ListDocuments(context.Background(), "folder1")
	require.NoError(t, err)
	require.Equal(t, 1, docs.Len())
	assert.Equal(t, "report.pdf", docs.At(0).FileName)
}
