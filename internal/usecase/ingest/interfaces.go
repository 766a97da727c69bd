package ingest

import (
	"context"

	"github.com/tactohq/ingest-backend/internal/entity"
)

// VectorStore is the destination index for chunk records.
type VectorStore interface {
	EnsureClass(ctx context.Context) error
	InsertChunks(ctx context.Context, chunks []entity.Chunk) error
}

// Extractor turns binary documents into plain text through the
// multimodal extraction API.
type Extractor interface {
	ExtractDocument(ctx context.Context, data []byte) (string, error)
	ExtractImage(ctx context.Context, data []byte, mediaType string) (string, error)
}

// ObjectStorage resolves a stored file's key to its bytes.
type ObjectStorage interface {
	Download(ctx context.Context, key string) ([]byte, error)
}
