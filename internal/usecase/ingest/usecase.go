package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tactohq/ingest-backend/internal/config"
	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/pkg/chunker"
	"github.com/tactohq/ingest-backend/internal/repository"
	"go.uber.org/zap"
)

// IngestUsecase drives one ingestion request: per file it resolves or
// extracts text, chunks it and uploads the chunks to the vector store.
// Files are processed strictly one after another; a failure in one file
// never aborts the rest of the batch.
type IngestUsecase struct {
	fileRepo  repository.FileRepository
	storage   ObjectStorage
	vectors   VectorStore
	extractor Extractor
	cfg       config.IngestConfig
	logger    *zap.Logger
}

func NewUsecase(
	fileRepo repository.FileRepository,
	storage ObjectStorage,
	vectors VectorStore,
	extractor Extractor,
	cfg config.IngestConfig,
	logger *zap.Logger,
) *IngestUsecase {
	return &IngestUsecase{
		fileRepo:  fileRepo,
		storage:   storage,
		vectors:   vectors,
		extractor: extractor,
		cfg:       cfg,
		logger:    logger,
	}
}

// ProcessStoredFiles ingests previously uploaded binary files by ID.
// The class must be ensured before any upload, so a bootstrap failure
// is fatal for the whole request; everything after that is per-file.
func (uc *IngestUsecase) ProcessStoredFiles(ctx context.Context, fileIDs []string) ([]entity.FileOutcome, error) {
	if len(fileIDs) == 0 {
		return nil, fmt.Errorf("%w: file_ids", entity.ErrNoFiles)
	}

	if err := uc.vectors.EnsureClass(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrSchemaBootstrap, err)
	}

	ctxzap.Info(ctx, "processing stored files", zap.Int("count", len(fileIDs)))

	outcomes := make([]entity.FileOutcome, 0, len(fileIDs))
	for _, fileID := range fileIDs {
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
		outcomes = append(outcomes, uc.processStoredFile(ctx, fileID))
	}

	return outcomes, nil
}

func (uc *IngestUsecase) processStoredFile(ctx context.Context, fileID string) entity.FileOutcome {
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("file_id", fileID)))

	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		ctxzap.Error(ctx, "file lookup failed", zap.Error(err))
		return entity.FailedOutcome(fileID, "", fmt.Sprintf("lookup: %s", err))
	}

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("file_name", file.FileName)))

	data, err := uc.storage.Download(ctx, file.StoragePath)
	if err != nil {
		ctxzap.Error(ctx, "file download failed", zap.Error(err))
		return entity.FailedOutcome(fileID, file.FileName, fmt.Sprintf("download: %s", err))
	}

	text, err := uc.extractText(ctx, file, data)
	if errors.Is(err, entity.ErrUnsupportedFormat) {
		ctxzap.Warn(ctx, "unsupported file type", zap.String("file_type", file.FileType))
		return entity.SkippedOutcome(fileID, file.FileName, fmt.Sprintf("unsupported file type: %s", file.FileType))
	}
	if err != nil {
		ctxzap.Error(ctx, "extraction failed", zap.Error(err))
		return entity.FailedOutcome(fileID, file.FileName, fmt.Sprintf("extract: %s", err))
	}

	if strings.TrimSpace(text) == "" {
		ctxzap.Warn(ctx, "no text extracted")
		return entity.SkippedOutcome(fileID, file.FileName, "no text extracted")
	}

	ctxzap.Info(ctx, "text extracted", zap.Int("length", len(text)))

	chunks, err := uc.chunkDocument(text, file.FileName)
	if err != nil {
		ctxzap.Error(ctx, "chunking failed", zap.Error(err))
		return entity.FailedOutcome(fileID, file.FileName, fmt.Sprintf("chunk: %s", err))
	}

	if err := uc.vectors.InsertChunks(ctx, chunks); err != nil {
		ctxzap.Error(ctx, "chunk upload failed", zap.Error(err))
		return entity.FailedOutcome(fileID, file.FileName, fmt.Sprintf("upload: %s", err))
	}

	if err := uc.fileRepo.MarkProcessed(ctx, fileID); err != nil {
		// Chunks are already in the store; there is no rollback. The
		// file stays unprocessed and will be re-ingested on retry.
		ctxzap.Error(ctx, "failed to mark file processed", zap.Error(err))
		return entity.FailedOutcome(fileID, file.FileName, fmt.Sprintf("mark processed: %s", err))
	}

	ctxzap.Info(ctx, "file processed", zap.Int("chunks", len(chunks)))
	return entity.ProcessedOutcome(fileID, file.FileName, len(chunks), len(text))
}

// IngestDocuments ingests inline text and JSON sources that never touch
// object storage.
func (uc *IngestUsecase) IngestDocuments(ctx context.Context, docs []entity.InlineDocument) ([]entity.FileOutcome, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: files", entity.ErrNoFiles)
	}

	if err := uc.vectors.EnsureClass(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrSchemaBootstrap, err)
	}

	ctxzap.Info(ctx, "ingesting inline documents", zap.Int("count", len(docs)))

	outcomes := make([]entity.FileOutcome, 0, len(docs))
	for _, doc := range docs {
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
		outcomes = append(outcomes, uc.ingestDocument(ctx, doc))
	}

	return outcomes, nil
}

func (uc *IngestUsecase) ingestDocument(ctx context.Context, doc entity.InlineDocument) entity.FileOutcome {
	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(zap.String("file_name", doc.Name)))

	if doc.Name == "" || strings.TrimSpace(doc.Content) == "" {
		ctxzap.Warn(ctx, "skipping document without name or content")
		return entity.SkippedOutcome("", doc.Name, "missing name or content")
	}

	var (
		chunks []entity.Chunk
		err    error
	)

	if strings.HasSuffix(strings.ToLower(doc.Name), ".json") {
		chunks, err = uc.chunkJSONDocument(doc)
	} else {
		chunks, err = uc.chunkDocument(doc.Content, doc.Name)
	}
	if err != nil {
		ctxzap.Error(ctx, "chunking failed", zap.Error(err))
		return entity.FailedOutcome("", doc.Name, fmt.Sprintf("chunk: %s", err))
	}

	if len(chunks) == 0 {
		ctxzap.Warn(ctx, "document produced no chunks")
		return entity.SkippedOutcome("", doc.Name, "document produced no chunks")
	}

	if err := uc.vectors.InsertChunks(ctx, chunks); err != nil {
		ctxzap.Error(ctx, "chunk upload failed", zap.Error(err))
		return entity.FailedOutcome("", doc.Name, fmt.Sprintf("upload: %s", err))
	}

	ctxzap.Info(ctx, "document ingested", zap.Int("chunks", len(chunks)))
	return entity.ProcessedOutcome("", doc.Name, len(chunks), len(doc.Content))
}

// chunkDocument splits one flat text into chunk records titled after
// the source file, with indices 0..n-1.
func (uc *IngestUsecase) chunkDocument(text, name string) ([]entity.Chunk, error) {
	pieces, err := chunker.Split(text, uc.cfg.ChunkSize, uc.cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	if uc.cfg.MaxChunksPerFile > 0 && len(pieces) > uc.cfg.MaxChunksPerFile {
		return nil, fmt.Errorf("%w: %d chunks (max %d)", entity.ErrTooManyChunks, len(pieces), uc.cfg.MaxChunksPerFile)
	}

	chunks := make([]entity.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = entity.Chunk{
			Content:      piece,
			Title:        name,
			DocumentName: name,
			ChunkIndex:   i,
		}
	}

	return chunks, nil
}
