package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/pkg/retry"
	"go.uber.org/zap"
)

type recordedRequest struct {
	method  string
	path    string
	headers http.Header
	body    []byte
}

// storeStub fakes the vector store's schema and batch endpoints.
type storeStub struct {
	mu       sync.Mutex
	requests []recordedRequest

	probeStatus  int
	createStatus int
	createBody   string
	batchStatus  func(batchNum int) int
}

func (s *storeStub) handler() http.HandlerFunc {
	batches := 0
	return func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, 0)
		if r.Body != nil {
			buf := json.RawMessage{}
			_ = json.NewDecoder(r.Body).Decode(&buf)
			body = buf
		}

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			method:  r.Method,
			path:    r.URL.Path,
			headers: r.Header.Clone(),
			body:    body,
		})
		s.mu.Unlock()

		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(s.probeStatus)
			w.Write([]byte(`{}`))
		case r.URL.Path == "/v1/schema":
			w.WriteHeader(s.createStatus)
			w.Write([]byte(s.createBody))
		case r.URL.Path == "/v1/batch/objects":
			batches++
			status := http.StatusOK
			if s.batchStatus != nil {
				status = s.batchStatus(batches)
			}
			w.WriteHeader(status)
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (s *storeStub) byPath(method, path string) []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []recordedRequest
	for _, req := range s.requests {
		if req.method == method && req.path == path {
			out = append(out, req)
		}
	}
	return out
}

func newTestConnector(t *testing.T, stub *storeStub, batchSize int) *Connector {
	t.Helper()

	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	cfg := config.VectorStoreConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            srv.URL,
			Token:          "store-token",
			RequestTimeout: 5 * time.Second,
		},
		ClassName:    "DocChunks",
		OpenAIAPIKey: "sk-embed-key",
		EmbedModel:   "text-embedding-3-large",
		BatchSize:    batchSize,
		Retry:        retry.RetryConfig{Attempts: 1, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}

	return NewConnector(cfg, zap.NewNop())
}

func TestEnsureClassAlreadyPresent(t *testing.T) {
	stub := &storeStub{probeStatus: http.StatusOK}
	conn := newTestConnector(t, stub, 100)

	require.NoError(t, conn.EnsureClass(context.Background()))

	assert.Len(t, stub.byPath(http.MethodGet, "/v1/schema/DocChunks"), 1)
	assert.Empty(t, stub.byPath(http.MethodPost, "/v1/schema"))
}

func TestEnsureClassCreatesOnNotFound(t *testing.T) {
	stub := &storeStub{probeStatus: http.StatusNotFound, createStatus: http.StatusOK}
	conn := newTestConnector(t, stub, 100)

	require.NoError(t, conn.EnsureClass(context.Background()))

	creates := stub.byPath(http.MethodPost, "/v1/schema")
	require.Len(t, creates, 1)

	var class entity.VectorClass
	require.NoError(t, json.Unmarshal(creates[0].body, &class))

	assert.Equal(t, "DocChunks", class.Class)
	assert.Equal(t, "text2vec-openai", class.Vectorizer)
	assert.Equal(t, "text-embedding-3-large", class.ModuleConfig["text2vec-openai"].Model)

	names := make([]string, len(class.Properties))
	for i, p := range class.Properties {
		names[i] = p.Name
	}
	assert.ElementsMatch(t, []string{"content", "document_name", "chunk_index", "title"}, names)

	// Store token rides along as a bearer token.
	assert.Equal(t, "Bearer store-token", creates[0].headers.Get("Authorization"))
}

func TestEnsureClassResultCached(t *testing.T) {
	stub := &storeStub{probeStatus: http.StatusOK}
	conn := newTestConnector(t, stub, 100)

	require.NoError(t, conn.EnsureClass(context.Background()))
	require.NoError(t, conn.EnsureClass(context.Background()))

	assert.Len(t, stub.requests, 1)
}

func TestEnsureClassConcurrentCreateCountsAsSuccess(t *testing.T) {
	stub := &storeStub{
		probeStatus:  http.StatusNotFound,
		createStatus: http.StatusUnprocessableEntity,
		createBody:   `{"error":[{"message":"class name DocChunks already exists"}]}`,
	}
	conn := newTestConnector(t, stub, 100)

	assert.NoError(t, conn.EnsureClass(context.Background()))
}

func TestEnsureClassCreateFailureNotCached(t *testing.T) {
	stub := &storeStub{
		probeStatus:  http.StatusNotFound,
		createStatus: http.StatusInternalServerError,
		createBody:   `{"error":"boom"}`,
	}
	conn := newTestConnector(t, stub, 100)

	require.Error(t, conn.EnsureClass(context.Background()))
	require.Error(t, conn.EnsureClass(context.Background()))

	// Failure is not remembered: the second call probes again.
	assert.Len(t, stub.byPath(http.MethodGet, "/v1/schema/DocChunks"), 2)
}

func makeChunks(n int) []entity.Chunk {
	chunks := make([]entity.Chunk, n)
	for i := range chunks {
		chunks[i] = entity.Chunk{
			Content:      fmt.Sprintf("chunk %d", i),
			Title:        "doc.pdf",
			DocumentName: "doc.pdf",
			ChunkIndex:   i,
		}
	}
	return chunks
}

func TestInsertChunksBatchesInOrder(t *testing.T) {
	stub := &storeStub{probeStatus: http.StatusOK}
	conn := newTestConnector(t, stub, 2)

	require.NoError(t, conn.InsertChunks(context.Background(), makeChunks(5)))

	inserts := stub.byPath(http.MethodPost, "/v1/batch/objects")
	require.Len(t, inserts, 3)

	var seen []int
	for _, req := range inserts {
		var batch entity.BatchObjectsRequest
		require.NoError(t, json.Unmarshal(req.body, &batch))

		assert.LessOrEqual(t, len(batch.Objects), 2)
		for _, obj := range batch.Objects {
			assert.Equal(t, "DocChunks", obj.Class)
			seen = append(seen, obj.Properties.ChunkIndex)
		}

		// The store needs the embedding key on every insert.
		assert.Equal(t, "sk-embed-key", req.headers.Get("X-Openai-Api-Key"))
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestInsertChunksFailedBatchAborts(t *testing.T) {
	stub := &storeStub{
		probeStatus: http.StatusOK,
		batchStatus: func(batchNum int) int {
			if batchNum == 2 {
				return http.StatusInternalServerError
			}
			return http.StatusOK
		},
	}
	conn := newTestConnector(t, stub, 2)

	err := conn.InsertChunks(context.Background(), makeChunks(6))
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrBatchInsert)
	assert.Contains(t, err.Error(), "batch 2/3")

	// The third batch is never attempted.
	assert.Len(t, stub.byPath(http.MethodPost, "/v1/batch/objects"), 2)
}

func TestInsertChunksEmptyInput(t *testing.T) {
	stub := &storeStub{probeStatus: http.StatusOK}
	conn := newTestConnector(t, stub, 2)

	require.NoError(t, conn.InsertChunks(context.Background(), nil))
	assert.Empty(t, stub.requests)
}
