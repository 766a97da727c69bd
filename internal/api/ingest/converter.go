package ingest

import "github.com/tactohq/ingest-backend/internal/entity"

// toIngestResponse splits per-file outcomes into the processed list and
// the skipped/failed list of the response body.
func toIngestResponse(message string, outcomes []entity.FileOutcome) *entity.IngestResponse {
	resp := &entity.IngestResponse{
		Message: message,
		Files:   make([]entity.ProcessedFile, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		if o.Status == entity.OutcomeProcessed {
			resp.Files = append(resp.Files, entity.ProcessedFile{
				ID:              o.FileID,
				Name:            o.FileName,
				Chunks:          o.ChunkCount,
				ExtractedLength: o.ExtractedLength,
			})
			continue
		}

		resp.Skipped = append(resp.Skipped, entity.SkippedFile{
			ID:     o.FileID,
			Name:   o.FileName,
			Status: string(o.Status),
			Reason: o.Reason,
		})
	}

	return resp
}
