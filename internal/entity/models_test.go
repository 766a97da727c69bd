package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFormat(t *testing.T) {
	cases := []struct {
		mimeType string
		want     FileFormat
	}{
		{"application/pdf", FormatPDF},
		{"APPLICATION/PDF", FormatPDF},
		{"image/png", FormatImage},
		{"image/jpeg", FormatImage},
		{"application/msword", FormatOffice},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", FormatOffice},
		{"application/vnd.openxmlformats-officedocument.presentationml.presentation", FormatOffice},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatOffice},
		{"text/plain", FormatPlainText},
		{"text/csv", FormatPlainText},
		{"text/markdown", FormatPlainText},
		{"application/json", FormatPlainText},
		{"application/zip", FormatUnsupported},
		{"audio/mpeg", FormatUnsupported},
		{"video/mp4", FormatUnsupported},
		{"", FormatUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.mimeType, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyFormat(tc.mimeType))
		})
	}
}

func TestOutcomeConstructors(t *testing.T) {
	processed := ProcessedOutcome("id-1", "a.pdf", 7, 1500)
	assert.Equal(t, OutcomeProcessed, processed.Status)
	assert.Equal(t, 7, processed.ChunkCount)
	assert.Equal(t, 1500, processed.ExtractedLength)
	assert.Empty(t, processed.Reason)

	skipped := SkippedOutcome("id-2", "b.zip", "unsupported file type: application/zip")
	assert.Equal(t, OutcomeSkipped, skipped.Status)
	assert.NotEmpty(t, skipped.Reason)

	failed := FailedOutcome("id-3", "c.pdf", "download: not found")
	assert.Equal(t, OutcomeFailed, failed.Status)
	assert.Equal(t, "c.pdf", failed.FileName)
}
