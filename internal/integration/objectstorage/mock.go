package objectstorage

import (
	"context"
	"fmt"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockClient keeps objects in memory, used when ENABLE_MOCKS is set.
type MockClient struct {
	logger *zap.Logger

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMockClient(logger *zap.Logger) *MockClient {
	return &MockClient{
		logger:  logger,
		objects: make(map[string][]byte),
	}
}

func (m *MockClient) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = data
	ctxzap.Info(ctx, "[MOCK] object stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

func (m *MockClient) Download(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}

	ctxzap.Info(ctx, "[MOCK] object fetched", zap.String("key", key), zap.Int("bytes", len(data)))
	return data, nil
}

func (m *MockClient) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	ctxzap.Info(ctx, "[MOCK] object deleted", zap.String("key", key))
	return nil
}
