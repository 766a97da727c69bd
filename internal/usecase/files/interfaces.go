package files

import "context"

// ObjectStorage persists uploaded file bytes under a key.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
