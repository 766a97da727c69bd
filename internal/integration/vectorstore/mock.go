package vectorstore

import (
	"context"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is an in-memory stand-in for the vector store, used
// when ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger

	mu      sync.Mutex
	ensured bool
	chunks  []entity.Chunk
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) EnsureClass(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ensured {
		ctxzap.Info(ctx, "[MOCK] creating vector class")
		m.ensured = true
	}
	return nil
}

func (m *MockConnector) InsertChunks(ctx context.Context, chunks []entity.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chunks = append(m.chunks, chunks...)
	ctxzap.Info(ctx, "[MOCK] inserted chunks",
		zap.Int("count", len(chunks)),
		zap.Int("total", len(m.chunks)),
	)
	return nil
}
