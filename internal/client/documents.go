package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"strings"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// DocumentsClient implements the ctf.DocumentsClient interface: document
// folders, documents, and slash-separated folder path resolution.
type DocumentsClient struct {
	httpClient *http.Client
}

// NewDocumentsClient creates a new DocumentsClient.
func NewDocumentsClient(httpClient *http.Client) *DocumentsClient {
	return &DocumentsClient{httpClient: httpClient}
}

// RootFolder retrieves the root document folder of a project.
func (c *DocumentsClient) RootFolder(ctx context.Context, projectID string) (*ctf.DocumentFolder, error) {
	path := constants.DocmanBase + "/projects/" + projectID + "/rootfolder"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting root folder: %w", err)
	}

	var folder ctf.DocumentFolder

	err = decodeEntity(resp.Body, &folder, "document folder")
	if err != nil {
		return nil, err
	}

	return &folder, nil
}

// ChildFolders lists the immediate subfolders of a folder.
func (c *DocumentsClient) ChildFolders(ctx context.Context, folderID string) (*ctf.TitledCollection[ctf.DocumentFolder], error) {
	path := constants.DocmanBase + "/documentfolders/" + folderID + "/documentfolders"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing document folders: %w", err)
	}

	return decodeItems[ctf.DocumentFolder](c.httpClient.Logger(), resp.Body, "document folders"), nil
}

// CreateFolder creates a subfolder. Unlike the other creation endpoints,
// docman answers exactly 201 on success; anything else is a failure.
func (c *DocumentsClient) CreateFolder(ctx context.Context, parentFolderID, title, description string) (*ctf.DocumentFolder, error) {
	path := constants.DocmanBase + "/documentfolders/" + parentFolderID + "/documentfolders"

	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating document folder: %w", err)
	}

	err = expectStatus(resp, nethttp.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating document folder: %w", err)
	}

	var folder ctf.DocumentFolder

	err = decodeEntity(resp.Body, &folder, "document folder")
	if err != nil {
		return nil, err
	}

	return &folder, nil
}

// ListDocuments lists the documents in a folder.
func (c *DocumentsClient) ListDocuments(ctx context.Context, folderID string) (*ctf.TitledCollection[ctf.Document], error) {
	path := constants.DocmanBase + "/documentfolders/" + folderID + "/documents"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return decodeItems[ctf.Document](c.httpClient.Logger(), resp.Body, "documents"), nil
}

// CreateDocument creates a document in a folder from an uploaded file.
// Success is exactly 201, as with CreateFolder.
func (c *DocumentsClient) CreateDocument(ctx context.Context, folderID string, request *ctf.DocumentCreateRequest) (*ctf.Document, error) {
	path := constants.DocmanBase + "/documentfolders/" + folderID + "/documents"

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	err = expectStatus(resp, nethttp.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	var document ctf.Document

	err = decodeEntity(resp.Body, &document, "document")
	if err != nil {
		return nil, err
	}

	return &document, nil
}

// UpdateDocument updates a document; supplying a file id uploads a new
// version.
func (c *DocumentsClient) UpdateDocument(ctx context.Context, documentID string, request *ctf.DocumentUpdateRequest) (*ctf.Document, error) {
	path := constants.DocmanBase + "/documents/" + documentID

	resp, err := c.httpClient.Patch(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating document: %w", err)
	}

	var document ctf.Document

	err = decodeEntity(resp.Body, &document, "document")
	if err != nil {
		return nil, err
	}

	return &document, nil
}

// GetOrCreatePath walks the slash-separated path from the project's root
// folder, creating every missing segment. Once a segment is missing, every
// following one is created without a further lookup. Repeated calls with a
// fully existing path create nothing.
func (c *DocumentsClient) GetOrCreatePath(ctx context.Context, projectID, path string) (*ctf.DocumentFolder, error) {
	return c.resolvePath(ctx, projectID, path, true)
}

// VerifyPath walks the path and fails at the first missing segment,
// wrapping ctf.ErrPathSegmentNotFound with the segment name.
func (c *DocumentsClient) VerifyPath(ctx context.Context, projectID, path string) (*ctf.DocumentFolder, error) {
	return c.resolvePath(ctx, projectID, path, false)
}

func (c *DocumentsClient) resolvePath(ctx context.Context, projectID, path string, create bool) (*ctf.DocumentFolder, error) {
	segments := splitFolderPath(path)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ctf.ErrEmptyFolderPath)
	}

	current, err := c.RootFolder(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// A leading segment naming the root folder itself is skipped.
	if segments[0] == current.Title {
		segments = segments[1:]
	}

	// Once a lookup misses, every remaining segment is known absent.
	missing := false

	for _, segment := range segments {
		if !missing {
			children, err := c.ChildFolders(ctx, current.ID)
			if err != nil {
				return nil, err
			}

			child := children.ByTitle(segment)
			if child != nil {
				current = child

				continue
			}

			missing = true
		}

		if !create {
			return nil, fmt.Errorf("%q: %w", segment, ctf.ErrPathSegmentNotFound)
		}

		created, err := c.CreateFolder(ctx, current.ID, segment, "")
		if err != nil {
			return nil, err
		}

		current = created
	}

	return current, nil
}

// splitFolderPath normalizes a slash-separated folder path into its
// segments, dropping leading, trailing, and doubled slashes.
func splitFolderPath(path string) []string {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}
