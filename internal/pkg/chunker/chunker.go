// Package chunker splits document text into overlapping fixed-size word
// windows sized for embedding and retrieval.
package chunker

import (
	"errors"
	"strings"
)

const (
	DefaultChunkSize = 220
	DefaultOverlap   = 40
)

// ErrInvalidWindow is returned when the window parameters would produce
// a zero or negative stride.
var ErrInvalidWindow = errors.New("chunker: overlap must be non-negative and smaller than chunk size")

// Split cuts text into chunks of chunkSize words, each window starting
// chunkSize-overlap words after the previous one. The final window runs
// to the last word and may be shorter than chunkSize; it is not padded.
// Splitting stops as soon as a window reaches the end of the text, so
// no chunk is ever a pure repeat of its predecessor's tail: a text of
// exactly chunkSize words yields exactly one chunk. Words are runs of
// non-whitespace, rejoined with single spaces, so the original
// whitespace layout is not preserved. Empty or whitespace-only text
// yields no chunks.
//
// Split is pure: identical inputs always produce identical output.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidWindow
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	stride := chunkSize - overlap
	chunks := make([]string, 0, (len(words)+stride-1)/stride)

	for start := 0; start < len(words); start += stride {
		end := start + chunkSize
		if end >= len(words) {
			chunks = append(chunks, strings.Join(words[start:], " "))
			break
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	return chunks, nil
}
