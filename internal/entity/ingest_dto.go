package entity

import "time"

// ProcessFilesRequest triggers ingestion of previously uploaded binary
// files, referenced by their uploaded_files IDs.
type ProcessFilesRequest struct {
	FileIDs []string `json:"file_ids"`
}

// IngestDocumentsRequest carries inline text or JSON sources that never
// touch object storage.
type IngestDocumentsRequest struct {
	Files []InlineDocument `json:"files"`
}

type InlineDocument struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// ProcessedFile describes one successfully ingested file in the
// response body. Files that were skipped or failed are absent from this
// list and reported in IngestResponse.Skipped instead.
type ProcessedFile struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Chunks          int    `json:"chunks"`
	ExtractedLength int    `json:"extracted_length,omitempty"`
}

type SkippedFile struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type IngestResponse struct {
	Message string          `json:"message"`
	Files   []ProcessedFile `json:"files"`
	Skipped []SkippedFile   `json:"skipped,omitempty"`
}

type FileDetail struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	FileType     string    `json:"file_type"`
	Size         int64     `json:"file_size"`
	RAGProcessed bool      `json:"rag_processed"`
	CreatedAt    time.Time `json:"created_at"`
}

type UploadFilesResponse struct {
	Files []FileDetail `json:"files"`
}

type ListFilesResponse struct {
	Files []FileDetail `json:"files"`
}

type DeleteFileResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
