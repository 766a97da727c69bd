package extraction

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns canned extraction results, used when
// ENABLE_MOCKS is set.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) ExtractDocument(ctx context.Context, data []byte) (string, error) {
	ctxzap.Info(ctx, "[MOCK] extracting document text", zap.Int("bytes", len(data)))
	return fmt.Sprintf("Mock extracted text for a %d byte PDF document.", len(data)), nil
}

func (m *MockConnector) ExtractImage(ctx context.Context, data []byte, mediaType string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] extracting image text",
		zap.Int("bytes", len(data)),
		zap.String("media_type", mediaType),
	)
	return fmt.Sprintf("Mock OCR text for a %d byte %s image.", len(data), mediaType), nil
}
