package files

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/pkg/validator"
	"github.com/tactohq/ingest-backend/internal/repository"
	"go.uber.org/zap"
)

// FilesUsecase stores uploaded binary files: bytes go to object storage
// under "<id>/<sanitized name>", metadata goes to the uploaded_files
// table with rag_processed=false. Ingestion happens later, by ID.
type FilesUsecase struct {
	fileRepo  repository.FileRepository
	storage   ObjectStorage
	validator *validator.Validator
	logger    *zap.Logger
}

func NewUsecase(
	fileRepo repository.FileRepository,
	storage ObjectStorage,
	validator *validator.Validator,
	logger *zap.Logger,
) *FilesUsecase {
	return &FilesUsecase{
		fileRepo:  fileRepo,
		storage:   storage,
		validator: validator,
		logger:    logger,
	}
}

// UploadFiles validates and stores a multipart upload. The whole batch
// is validated up front; a storage or database failure on one file
// aborts the request, files stored before the failure stay stored.
func (uc *FilesUsecase) UploadFiles(ctx context.Context, headers []*multipart.FileHeader) ([]*entity.SourceFile, error) {
	if err := uc.validator.ValidateUpload(headers); err != nil {
		return nil, err
	}

	saved := make([]*entity.SourceFile, 0, len(headers))
	for _, fh := range headers {
		file, err := uc.uploadFile(ctx, fh)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}
		saved = append(saved, file)
	}

	ctxzap.Info(ctx, "files uploaded", zap.Int("count", len(saved)))
	return saved, nil
}

func (uc *FilesUsecase) uploadFile(ctx context.Context, fh *multipart.FileHeader) (*entity.SourceFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileID := uuid.NewString()
	name := validator.SanitizeFilename(fh.Filename)
	key := fmt.Sprintf("%s/%s", fileID, name)

	storagePath, err := uc.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	saved, err := uc.fileRepo.Create(ctx, entity.SourceFile{
		ID:          fileID,
		FileName:    name,
		FileType:    contentType,
		StoragePath: storagePath,
		Size:        fh.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	ctxzap.Debug(ctx, "file stored",
		zap.String("file_id", fileID),
		zap.String("file_name", name),
		zap.Int64("size", fh.Size),
	)

	return saved, nil
}

// ListFiles returns all uploaded files, newest first.
func (uc *FilesUsecase) ListFiles(ctx context.Context) ([]*entity.SourceFile, error) {
	return uc.fileRepo.List(ctx)
}

// DeleteFile removes a file's bytes from object storage and its
// metadata row. Chunks already uploaded to the vector store are not
// touched; deletion only stops the file from being re-ingested.
func (uc *FilesUsecase) DeleteFile(ctx context.Context, id string) error {
	file, err := uc.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.storage.Delete(ctx, file.StoragePath); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	if err := uc.fileRepo.Delete(ctx, id); err != nil {
		return err
	}

	ctxzap.Info(ctx, "file deleted",
		zap.String("file_id", id),
		zap.String("file_name", file.FileName),
	)
	return nil
}
