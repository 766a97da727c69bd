package extraction

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/integration/common"
	pkghttp "github.com/tactohq/ingest-backend/pkg/http"
	"go.uber.org/zap"
)

const (
	messagesEndpoint = "/v1/messages"

	documentPrompt = "Extract all text from this PDF document. Return only the extracted text content, preserving the structure and formatting as much as possible."
	imagePrompt    = "Extract all text from this image using OCR. If there is no text, describe what you see in the image."
)

// Connector extracts text from binary documents through a multimodal
// messages API: the base64-encoded file goes out as a document or image
// content block and the model's reply is the extracted text.
type Connector struct {
	config    config.ExtractionConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ExtractionConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithStaticHeader("x-api-key", cfg.Token),
			pkghttp.WithStaticHeader("anthropic-version", cfg.APIVersion),
		),
		config: cfg,
		logger: logger,
	}
}

// ExtractDocument extracts the text of a PDF.
func (c *Connector) ExtractDocument(ctx context.Context, data []byte) (string, error) {
	ctxzap.Info(ctx, "extracting text from document", zap.Int("bytes", len(data)))

	block := entity.ContentBlock{
		Type: "document",
		Source: &entity.BlockSource{
			Type:      "base64",
			MediaType: "application/pdf",
			Data:      base64.StdEncoding.EncodeToString(data),
		},
	}

	return c.extract(ctx, block, documentPrompt, c.config.DocMaxTokens)
}

// ExtractImage OCRs an image, falling back to a description of the
// visual content when the image carries no text.
func (c *Connector) ExtractImage(ctx context.Context, data []byte, mediaType string) (string, error) {
	ctxzap.Info(ctx, "extracting text from image",
		zap.Int("bytes", len(data)),
		zap.String("media_type", mediaType),
	)

	block := entity.ContentBlock{
		Type: "image",
		Source: &entity.BlockSource{
			Type:      "base64",
			MediaType: mediaType,
			Data:      base64.StdEncoding.EncodeToString(data),
		},
	}

	return c.extract(ctx, block, imagePrompt, c.config.ImageMaxTokens)
}

func (c *Connector) extract(ctx context.Context, block entity.ContentBlock, prompt string, maxTokens int) (string, error) {
	req := entity.ExtractionRequest{
		Model:     c.config.Model,
		MaxTokens: maxTokens,
		Messages: []entity.ExtractionMessage{
			{
				Role: "user",
				Content: []entity.ContentBlock{
					block,
					{Type: "text", Text: prompt},
				},
			},
		},
	}

	var resp entity.ExtractionResponse

	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodPost, messagesEndpoint, &req, &resp)
	}, c.retryOptions(ctx)...)

	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrExtractionFailed, err)
	}

	text, ok := resp.Text()
	if !ok {
		return "", fmt.Errorf("%w: response missing text content", entity.ErrExtractionFailed)
	}

	ctxzap.Info(ctx, "text extracted", zap.Int("length", len(text)))
	return text, nil
}

// retryOptions retries network-level failures only; a non-2xx from the
// extraction API is final.
func (c *Connector) retryOptions(ctx context.Context) []retry.Option {
	opts := c.config.Retry.ToRetryOptions()
	return append(opts,
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			var netErr *pkghttp.NetworkError
			return errors.As(err, &netErr) && ctx.Err() == nil
		}),
	)
}
