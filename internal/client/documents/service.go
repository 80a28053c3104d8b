package documents

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	clientapi "github.com/docport/portal/internal/client/api"
	"github.com/docport/portal/internal/models"
)

// Service manages the caller's uploaded supporting documents.
type Service struct {
	api *clientapi.Client
}

// New creates a document service over the shared API client.
func New(apiClient *clientapi.Client) *Service {
	return &Service{api: apiClient}
}

// Upload reads the given local files and uploads them in a single
// multipart request.
func (s *Service) Upload(ctx context.Context, paths ...string) ([]models.Document, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	parts := make([]clientapi.UploadPart, 0, len(paths))
	handles := make([]*os.File, 0, len(paths))
	defer func() {
		for _, f := range handles {
			_ = f.Close()
		}
	}()

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %q: %w", path, err)
		}
		handles = append(handles, f)
		parts = append(parts, clientapi.UploadPart{Name: path, Reader: f})
	}

	docs, err := s.api.UploadDocuments(ctx, parts)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// List returns the caller's uploaded documents.
func (s *Service) List(ctx context.Context) ([]models.Document, error) {
	return s.api.ListDocuments(ctx)
}

// Delete removes a document by id. Document ids are server-assigned
// UUIDs; the id is validated before a request goes out.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid document id %q: %w", id, err)
	}
	return s.api.DeleteDocument(ctx, id)
}

// FileSHA256 computes the hex-encoded SHA-256 hash of a local file.
// Used to assert the contentHash of evidence records; the backend
// verifies it against the referenced document.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %q: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
