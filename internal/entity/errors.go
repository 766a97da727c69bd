package entity

import "errors"

// Domain errors
var (
	// Request errors
	ErrNoFiles = errors.New("no files provided")

	// File errors
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidFile       = errors.New("invalid file")
	ErrFileTooLarge      = errors.New("file too large")
	ErrTooManyFiles      = errors.New("too many files")
	ErrTotalSizeTooLarge = errors.New("total file size too large")

	// Pipeline errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrTooManyChunks     = errors.New("chunk count exceeds limit")

	// Vector store errors
	ErrSchemaBootstrap = errors.New("vector store schema bootstrap failed")
	ErrBatchInsert     = errors.New("batch insert failed")
)
