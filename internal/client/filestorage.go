package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	nethttp "net/http"
	"os"
	"path/filepath"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/internal/http"
	"github.com/teamforge-io/ctf/pkg/ctf"
)

// FilesClient implements the ctf.FilesClient interface against the
// file storage service. Uploaded files are referenced by GUID from
// document and release file requests.
type FilesClient struct {
	httpClient *http.Client
}

// NewFilesClient creates a new FilesClient.
func NewFilesClient(httpClient *http.Client) *FilesClient {
	return &FilesClient{httpClient: httpClient}
}

// Upload sends file content as a multipart form and returns the stored
// file record with its GUID.
func (c *FilesClient) Upload(ctx context.Context, fileName string, content []byte) (*ctf.StoredFile, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(constants.MultipartFileField, fileName)
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}

	_, err = part.Write(content)
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("building multipart form: %w", err)
	}

	path := constants.FileStorageBase + "/files"

	resp, err := c.httpClient.PostRaw(ctx, path, buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}

	if resp.StatusCode != nethttp.StatusOK && resp.StatusCode != nethttp.StatusCreated {
		return nil, fmt.Errorf("uploading file: unexpected status %d", resp.StatusCode)
	}

	var stored ctf.StoredFile

	err = decodeEntity(resp.Body, &stored, "stored file")
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// UploadPath uploads a file from the local filesystem.
func (c *FilesClient) UploadPath(ctx context.Context, localPath string) (*ctf.StoredFile, error) {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", localPath, err)
	}

	return c.Upload(ctx, filepath.Base(localPath), content)
}

// Download retrieves the content of a stored file by GUID.
func (c *FilesClient) Download(ctx context.Context, guid string) ([]byte, error) {
	path := constants.FileStorageBase + "/files/" + guid

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}

	return resp.Body, nil
}
