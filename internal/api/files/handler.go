package files

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/pkg/logger"
	"github.com/tactohq/ingest-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase FilesUsecase
	cfg     config.FileUploadConfig
}

func NewHandler(usecase FilesUsecase, cfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// UploadFiles handles POST /files
func (h *Handler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadFiles")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid form data or size too large")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		ctxzap.Warn(ctx, "no files provided")
		response.Error(w, http.StatusBadRequest, "at least one file is required")
		return
	}

	ctxzap.Info(ctx, "uploading files", zap.Int("file_count", len(headers)))

	saved, err := h.usecase.UploadFiles(ctx, headers)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	details := make([]entity.FileDetail, 0, len(saved))
	for _, f := range saved {
		details = append(details, toFileDetail(f))
	}

	response.Created(w, &entity.UploadFilesResponse{Files: details})
}

// ListFiles handles GET /files
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListFiles")

	files, err := h.usecase.ListFiles(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	details := make([]entity.FileDetail, 0, len(files))
	for _, f := range files {
		details = append(details, toFileDetail(f))
	}

	ctxzap.Info(ctx, "files listed successfully", zap.Int("count", len(details)))
	response.Success(w, &entity.ListFilesResponse{Files: details})
}

// DeleteFile handles DELETE /files/{file_id}
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileID := chi.URLParam(r, "file_id")

	ctx = logger.AddFields(ctx,
		zap.String("file_id", fileID),
		zap.String("action", "DeleteFile"),
	)

	ctxzap.Info(ctx, "deleting file")

	if err := h.usecase.DeleteFile(ctx, fileID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "file deleted successfully")
	response.Success(w, &entity.DeleteFileResponse{Status: "deleted"})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "file request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrFileNotFound):
		response.Error(w, http.StatusNotFound, "file not found")
	case errors.Is(err, entity.ErrNoFiles),
		errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrTooManyFiles),
		errors.Is(err, entity.ErrTotalSizeTooLarge):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
