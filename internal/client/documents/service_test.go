package documents

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/docport/portal/internal/client/api"
	"github.com/docport/portal/internal/models"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestService_Upload(t *testing.T) {
	docID := uuid.New().String()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/documents/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["documents"]
		require.Len(t, files, 2)
		assert.Equal(t, "cv.pdf", files[0].Filename)
		assert.Equal(t, "diploma.pdf", files[1].Filename)

		_ = json.NewEncoder(w).Encode([]models.Document{
			{ID: docID, Name: "cv.pdf", Type: "application/pdf", Size: 2},
			{ID: uuid.New().String(), Name: "diploma.pdf", Type: "application/pdf", Size: 2},
		})
	}))
	defer server.Close()

	svc := New(clientapi.NewClient(server.URL))

	cv := writeTempFile(t, "cv.pdf", "cv")
	diploma := writeTempFile(t, "diploma.pdf", "dp")

	docs, err := svc.Upload(context.Background(), cv, diploma)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, docID, docs[0].ID)
}

func TestService_UploadNoFiles(t *testing.T) {
	svc := New(clientapi.NewClient("http://localhost:0"))

	_, err := svc.Upload(context.Background())
	assert.Error(t, err)
}

func TestService_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GET", r.Method)
		require.Equal(t, "/documents", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Document{{ID: uuid.New().String(), Name: "cv.pdf"}})
	}))
	defer server.Close()

	svc := New(clientapi.NewClient(server.URL))

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestService_Delete(t *testing.T) {
	docID := uuid.New().String()

	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, "DELETE", r.Method)
		require.Equal(t, "/documents/"+docID, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := New(clientapi.NewClient(server.URL))

	require.NoError(t, svc.Delete(context.Background(), docID))
	assert.True(t, called)
}

// TestService_DeleteInvalidID verifies a malformed id never reaches the
// backend.
func TestService_DeleteInvalidID(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := New(clientapi.NewClient(server.URL))

	err := svc.Delete(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.False(t, called)
}

func TestFileSHA256(t *testing.T) {
	path := writeTempFile(t, "doc.txt", "hello world")

	hash, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", hash)
}

func TestFileSHA256_MissingFile(t *testing.T) {
	_, err := FileSHA256(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
