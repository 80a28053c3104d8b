package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/docport/portal/internal/models"
)

// documentsField is the multipart form field the backend expects the
// uploaded files under.
const documentsField = "documents"

// UploadPart is one file to include in a document upload.
type UploadPart struct {
	Name   string
	Reader io.Reader
}

// UploadDocuments uploads the given files as a single multipart request
// and returns the stored document records.
func (c *Client) UploadDocuments(ctx context.Context, parts []UploadPart) ([]models.Document, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, part := range parts {
		fw, err := writer.CreateFormFile(documentsField, filepath.Base(part.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(fw, part.Reader); err != nil {
			return nil, fmt.Errorf("failed to write file %q: %w", part.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	var docs []models.Document
	if err := c.doMultipart(ctx, "/documents/upload", &buf, writer.FormDataContentType(), &docs); err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	return docs, nil
}

// ListDocuments returns the caller's uploaded documents.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doRequest(ctx, http.MethodGet, "/documents", nil, &docs); err != nil {
		return nil, fmt.Errorf("list documents request failed: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes an uploaded document by id.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/documents/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete document request failed: %w", err)
	}
	return nil
}
