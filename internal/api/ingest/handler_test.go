package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tactohq/ingest-backend/internal/entity"
)

// fakeUsecase implements IngestUsecase for testing
type fakeUsecase struct {
	outcomes []entity.FileOutcome
	err      error

	gotFileIDs []string
	gotDocs    []entity.InlineDocument
}

func (f *fakeUsecase) ProcessStoredFiles(ctx context.Context, fileIDs []string) ([]entity.FileOutcome, error) {
	f.gotFileIDs = fileIDs
	return f.outcomes, f.err
}

func (f *fakeUsecase) IngestDocuments(ctx context.Context, docs []entity.InlineDocument) ([]entity.FileOutcome, error) {
	f.gotDocs = docs
	return f.outcomes, f.err
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestProcessFilesSuccess(t *testing.T) {
	uc := &fakeUsecase{outcomes: []entity.FileOutcome{
		entity.ProcessedOutcome("id-1", "a.pdf", 3, 900),
		entity.SkippedOutcome("id-2", "b.zip", "unsupported file type: application/zip"),
		entity.FailedOutcome("id-3", "c.pdf", "download: not found"),
	}}
	h := NewHandler(uc)

	rec := postJSON(t, h.ProcessFiles, `{"file_ids":["id-1","id-2","id-3"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, uc.gotFileIDs)

	var resp entity.IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Binary files processed successfully", resp.Message)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "a.pdf", resp.Files[0].Name)
	assert.Equal(t, 3, resp.Files[0].Chunks)

	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, "skipped", resp.Skipped[0].Status)
	assert.Equal(t, "failed", resp.Skipped[1].Status)
	assert.Equal(t, "download: not found", resp.Skipped[1].Reason)
}

func TestProcessFilesInvalidBody(t *testing.T) {
	h := NewHandler(&fakeUsecase{})

	rec := postJSON(t, h.ProcessFiles, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessFilesNoFiles(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("%w: file_ids", entity.ErrNoFiles)}
	h := NewHandler(uc)

	rec := postJSON(t, h.ProcessFiles, `{"file_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessFilesStoreUnavailable(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("%w: connection refused", entity.ErrSchemaBootstrap)}
	h := NewHandler(uc)

	rec := postJSON(t, h.ProcessFiles, `{"file_ids":["id-1"]}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "vector store is unavailable", resp.Message)
}

func TestIngestDocumentsSuccess(t *testing.T) {
	uc := &fakeUsecase{outcomes: []entity.FileOutcome{
		entity.ProcessedOutcome("", "guide.md", 2, 500),
	}}
	h := NewHandler(uc)

	rec := postJSON(t, h.IngestDocuments, `{"files":[{"name":"guide.md","content":"some text"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.gotDocs, 1)
	assert.Equal(t, "guide.md", uc.gotDocs[0].Name)

	var resp entity.IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Files uploaded successfully", resp.Message)
	require.Len(t, resp.Files, 1)
	assert.Empty(t, resp.Skipped)
}

func TestIngestDocumentsInternalError(t *testing.T) {
	uc := &fakeUsecase{err: fmt.Errorf("unexpected failure")}
	h := NewHandler(uc)

	rec := postJSON(t, h.IngestDocuments, `{"files":[{"name":"a","content":"b"}]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
