package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/integration/common"
	pkghttp "github.com/tactohq/ingest-backend/pkg/http"
	"go.uber.org/zap"
)

const (
	schemaEndpoint = "/v1/schema"
	batchEndpoint  = "/v1/batch/objects"

	// Header the store uses to reach its embedding provider at insert time.
	openAIKeyHeader = "X-OpenAI-Api-Key"
)

// Connector talks to a Weaviate-compatible vector store over REST:
// class existence probe, class creation and batched object inserts.
type Connector struct {
	config    config.VectorStoreConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger

	mu      sync.Mutex
	ensured bool
}

func NewConnector(
	cfg config.VectorStoreConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, pkghttp.WithAuthToken(cfg.Token)),
		config:    cfg,
		logger:    logger,
	}
}

// EnsureClass makes sure the configured class exists, creating it with
// the fixed property set and vectorizer config when the probe reports
// 404. The class is never altered once present. A successful ensure is
// remembered so one process probes the store at most once; failures are
// not cached and the next request probes again.
//
// Two processes racing to create the same class is resolved by treating
// "already exists" on create as success, not by locking: the store is
// external and out of our control.
func (c *Connector) EnsureClass(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ensured {
		return nil
	}

	endpoint := schemaEndpoint + "/" + c.config.ClassName

	err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err == nil {
		ctxzap.Debug(ctx, "vector class already exists", zap.String("class", c.config.ClassName))
		c.ensured = true
		return nil
	}

	var httpErr *pkghttp.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		return fmt.Errorf("check class %s: %w", c.config.ClassName, err)
	}

	ctxzap.Info(ctx, "creating vector class", zap.String("class", c.config.ClassName))

	if err := c.createClass(ctx); err != nil {
		return err
	}

	c.ensured = true
	return nil
}

func (c *Connector) createClass(ctx context.Context) error {
	class := entity.VectorClass{
		Class:       c.config.ClassName,
		Description: "Chunks of documents for RAG",
		Vectorizer:  "text2vec-openai",
		ModuleConfig: map[string]entity.VectorizerConfig{
			"text2vec-openai": {
				Model: c.config.EmbedModel,
				Type:  "text",
			},
		},
		Properties: []entity.VectorProperty{
			{Name: "content", DataType: []string{"text"}, Description: "Chunk text"},
			{Name: "document_name", DataType: []string{"text"}, Description: "Source filename"},
			{Name: "chunk_index", DataType: []string{"int"}, Description: "Chunk index"},
			{Name: "title", DataType: []string{"text"}, Description: "Original title"},
		},
	}

	err := c.connector.DoRequest(ctx, http.MethodPost, schemaEndpoint, &class, nil)
	if err == nil {
		ctxzap.Info(ctx, "vector class created", zap.String("class", c.config.ClassName))
		return nil
	}

	// A concurrent caller may have created the class between our probe
	// and this call; the store answers 422 with an "already exists"
	// message and that counts as success.
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) && strings.Contains(httpErr.Message, "already exists") {
		ctxzap.Info(ctx, "vector class created concurrently", zap.String("class", c.config.ClassName))
		return nil
	}

	return fmt.Errorf("create class %s: %w", c.config.ClassName, err)
}

// InsertChunks uploads chunks in groups of the configured batch size,
// preserving order. The first failed group aborts the whole call; no
// earlier group is rolled back, so a partial upload leaves its objects
// in the store.
func (c *Connector) InsertChunks(ctx context.Context, chunks []entity.Chunk) error {
	batchSize := c.config.BatchSize
	total := (len(chunks) + batchSize - 1) / batchSize

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		batch := chunks[start:end]
		objects := make([]entity.VectorObject, len(batch))
		for i, chunk := range batch {
			objects[i] = entity.VectorObject{
				Class: c.config.ClassName,
				Properties: entity.ChunkProperties{
					Content:      chunk.Content,
					Title:        chunk.Title,
					DocumentName: chunk.DocumentName,
					ChunkIndex:   chunk.ChunkIndex,
				},
			}
		}

		batchNum := start/batchSize + 1
		ctxzap.Debug(ctx, "inserting chunk batch",
			zap.Int("batch", batchNum),
			zap.Int("batches", total),
			zap.Int("objects", len(objects)),
		)

		req := entity.BatchObjectsRequest{Objects: objects}

		err := retry.Do(func() error {
			return c.connector.DoRequest(ctx, http.MethodPost, batchEndpoint, &req, nil,
				pkghttp.WithHeader(openAIKeyHeader, c.config.OpenAIAPIKey),
			)
		}, c.retryOptions(ctx)...)

		if err != nil {
			return fmt.Errorf("%w: batch %d/%d: %s", entity.ErrBatchInsert, batchNum, total, err)
		}
	}

	return nil
}

// retryOptions retries network-level failures only; an HTTP error from
// the store is final.
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
