package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tactohq/ingest-backend/internal/entity"
	"github.com/tactohq/ingest-backend/internal/pkg/chunker"
)

// officeFallbackThreshold is how much printable text the raw decode
// must yield before it is trusted as the document's content.
const officeFallbackThreshold = 100

// extractText resolves a file's plain text according to its declared
// MIME type. PDFs and images go through the extraction API; office
// formats get a best-effort raw decode; text and JSON are used as-is.
func (uc *IngestUsecase) extractText(ctx context.Context, file *entity.SourceFile, data []byte) (string, error) {
	switch entity.ClassifyFormat(file.FileType) {
	case entity.FormatPDF:
		return uc.extractor.ExtractDocument(ctx, data)
	case entity.FormatImage:
		return uc.extractor.ExtractImage(ctx, data, file.FileType)
	case entity.FormatOffice:
		return decodeOfficeFallback(file.FileName, data), nil
	case entity.FormatPlainText:
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, file.FileType)
	}
}

// decodeOfficeFallback is a deliberate low-quality fallback for office
// formats, not a document parser: it decodes the raw bytes, replaces
// everything outside printable ASCII (keeping newlines) with spaces and
// trusts the result only when enough text survives. Otherwise it
// returns a placeholder naming the file.
func decodeOfficeFallback(name string, data []byte) string {
	cleaned := make([]byte, len(data))
	for i, b := range data {
		if b == '\n' || (b >= 0x20 && b <= 0x7E) {
			cleaned[i] = b
		} else {
			cleaned[i] = ' '
		}
	}

	text := strings.TrimSpace(string(cleaned))
	if len(text) > officeFallbackThreshold {
		return text
	}

	return fmt.Sprintf("Document: %s (Text extraction not fully supported for this format)", name)
}

// jsonItem is one logical sub-item of a structured JSON source.
type jsonItem struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Name    string `json:"name"`
}

// chunkJSONDocument chunks each sub-item of a JSON array source
// independently: chunk indices restart at 0 for every sub-item and
// chunks after the first within a sub-item carry a "(Part N)" title
// suffix. Two chunks of the same document sharing an index is expected
// here; their titles keep them apart.
func (uc *IngestUsecase) chunkJSONDocument(doc entity.InlineDocument) ([]entity.Chunk, error) {
	var items []jsonItem
	if err := json.Unmarshal([]byte(doc.Content), &items); err != nil {
		return nil, fmt.Errorf("parse JSON source %s: %w", doc.Name, err)
	}

	var chunks []entity.Chunk
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = item.Name
		}

		pieces, err := chunker.Split(item.Content, uc.cfg.ChunkSize, uc.cfg.ChunkOverlap)
		if err != nil {
			return nil, err
		}

		for j, piece := range pieces {
			chunkTitle := title
			if j > 0 {
				chunkTitle = fmt.Sprintf("%s (Part %d)", title, j+1)
			}

			chunks = append(chunks, entity.Chunk{
				Content:      piece,
				Title:        chunkTitle,
				DocumentName: doc.Name,
				ChunkIndex:   j,
			})
		}
	}

	if uc.cfg.MaxChunksPerFile > 0 && len(chunks) > uc.cfg.MaxChunksPerFile {
		return nil, fmt.Errorf("%w: %d chunks (max %d)", entity.ErrTooManyChunks, len(chunks), uc.cfg.MaxChunksPerFile)
	}

	return chunks, nil
}
