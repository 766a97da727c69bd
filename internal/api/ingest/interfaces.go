package ingest

import (
	"context"

	"github.com/tactohq/ingest-backend/internal/entity"
)

type IngestUsecase interface {
	ProcessStoredFiles(ctx context.Context, fileIDs []string) ([]entity.FileOutcome, error)
	IngestDocuments(ctx context.Context, docs []entity.InlineDocument) ([]entity.FileOutcome, error)
}
