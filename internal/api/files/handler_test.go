package files

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/entity"
)

// fakeUsecase implements FilesUsecase for testing
type fakeUsecase struct {
	files     []*entity.SourceFile
	err       error
	deletedID string
}

func (f *fakeUsecase) UploadFiles(ctx context.Context, headers []*multipart.FileHeader) ([]*entity.SourceFile, error) {
	return f.files, f.err
}

func (f *fakeUsecase) ListFiles(ctx context.Context) ([]*entity.SourceFile, error) {
	return f.files, f.err
}

func (f *fakeUsecase) DeleteFile(ctx context.Context, id string) error {
	f.deletedID = id
	return f.err
}

func newTestRouter(uc FilesUsecase) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, config.FileUploadConfig{MaxUploadSize: 1 << 20}))
	return r
}

func TestDeleteFileEndpoint(t *testing.T) {
	uc := &fakeUsecase{}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodDelete, "/files/file-123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "file-123", uc.deletedID)

	var resp entity.DeleteFileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "deleted", resp.Status)
}

func TestDeleteFileEndpointNotFound(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("%w: file-123", entity.ErrFileNotFound)}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodDelete, "/files/file-123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "file not found", resp.Message)
}

func TestListFilesEndpoint(t *testing.T) {
	uc := &fakeUsecase{files: []*entity.SourceFile{
		{ID: "id-1", FileName: "a.pdf"},
	}}
	router := newTestRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.ListFilesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "a.pdf", resp.Files[0].FileName)
}
