package files

import (
	"context"
	"mime/multipart"

	"github.com/tactohq/ingest-backend/internal/entity"
)

type FilesUsecase interface {
	UploadFiles(ctx context.Context, headers []*multipart.FileHeader) ([]*entity.SourceFile, error)
	ListFiles(ctx context.Context) ([]*entity.SourceFile, error)
	DeleteFile(ctx context.Context, id string) error
}
