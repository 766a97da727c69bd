package files

import "github.com/tactohq/ingest-backend/internal/entity"

// toFileDetail converts SourceFile entity to FileDetail DTO
func toFileDetail(f *entity.SourceFile) entity.FileDetail {
	return entity.FileDetail{
		ID:           f.ID,
		FileName:     f.FileName,
		FileType:     f.FileType,
		Size:         f.Size,
		RAGProcessed: f.RAGProcessed,
		CreatedAt:    f.CreatedAt,
	}
}
