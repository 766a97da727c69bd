package entity

import (
	"strings"
	"time"
)

// SourceFile is one row of the uploaded_files table. The file bytes
// themselves live in object storage under StoragePath; RAGProcessed is
// the only field mutated after creation, flipped to true exactly once
// when the file's chunks have been uploaded to the vector store.
type SourceFile struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	FileType     string    `json:"file_type"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"file_size"`
	RAGProcessed bool      `json:"rag_processed"`
	CreatedAt    time.Time `json:"created_at"`
}

// Chunk is one retrieval passage derived from a source document.
// ChunkIndex is zero-based within its emission run; a JSON source with
// several sub-items produces one run per sub-item, so two chunks of the
// same document may share an index while their titles differ.
type Chunk struct {
	Content      string
	Title        string
	DocumentName string
	ChunkIndex   int
}

type FileFormat string

const (
	FormatPDF         FileFormat = "pdf"
	FormatImage       FileFormat = "image"
	FormatOffice      FileFormat = "office"
	FormatPlainText   FileFormat = "text"
	FormatUnsupported FileFormat = "unsupported"
)

var officeMarkers = []string{"word", "document", "presentation", "spreadsheet"}

// ClassifyFormat maps a declared MIME type onto the closed set of
// formats the pipeline knows how to handle. Matching is a
// case-insensitive substring check, so vendor-specific office MIME
// types like application/vnd.openxmlformats-officedocument.* land in
// FormatOffice without enumerating them.
func ClassifyFormat(mimeType string) FileFormat {
	mt := strings.ToLower(mimeType)

	switch {
	case strings.Contains(mt, "pdf"):
		return FormatPDF
	case strings.Contains(mt, "image"):
		return FormatImage
	}

	for _, marker := range officeMarkers {
		if strings.Contains(mt, marker) {
			return FormatOffice
		}
	}

	if strings.Contains(mt, "text") || strings.Contains(mt, "json") {
		return FormatPlainText
	}

	return FormatUnsupported
}

type OutcomeStatus string

const (
	OutcomeProcessed OutcomeStatus = "processed"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// FileOutcome is the per-file result of one ingestion pass. Skipped
// means there was nothing to do (unsupported format, empty extraction);
// Failed means something went wrong for that file only. Outcomes live
// for the duration of one request and are never persisted.
type FileOutcome struct {
	FileID          string
	FileName        string
	Status          OutcomeStatus
	ChunkCount      int
	ExtractedLength int
	Reason          string
}

func ProcessedOutcome(id, name string, chunkCount, extractedLength int) FileOutcome {
	return FileOutcome{
		FileID:          id,
		FileName:        name,
		Status:          OutcomeProcessed,
		ChunkCount:      chunkCount,
		ExtractedLength: extractedLength,
	}
}

func SkippedOutcome(id, name, reason string) FileOutcome {
	return FileOutcome{FileID: id, FileName: name, Status: OutcomeSkipped, Reason: reason}
}

func FailedOutcome(id, name, reason string) FileOutcome {
	return FileOutcome{FileID: id, FileName: name, Status: OutcomeFailed, Reason: reason}
}
