package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/pkg/logger"
	"github.com/tactohq/ingest-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase IngestUsecase
}

func NewHandler(usecase IngestUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// ProcessFiles handles POST /ingest/files
func (h *Handler) ProcessFiles(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ProcessFiles")

	var req entity.ProcessFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctxzap.Info(ctx, "processing files", zap.Int("file_count", len(req.FileIDs)))

	outcomes, err := h.usecase.ProcessStoredFiles(ctx, req.FileIDs)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toIngestResponse("Binary files processed successfully", outcomes))
}

// IngestDocuments handles POST /ingest/documents
func (h *Handler) IngestDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "IngestDocuments")

	var req entity.IngestDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctxzap.Info(ctx, "ingesting documents", zap.Int("file_count", len(req.Files)))

	outcomes, err := h.usecase.IngestDocuments(ctx, req.Files)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toIngestResponse("Files uploaded successfully", outcomes))
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "ingestion request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrNoFiles):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrSchemaBootstrap):
		response.Error(w, http.StatusBadGateway, "vector store is unavailable")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
