package entity

// Wire types for the Weaviate-compatible REST API (schema and batch
// object endpoints).

type VectorClass struct {
	Class        string                      `json:"class"`
	Description  string                      `json:"description,omitempty"`
	Vectorizer   string                      `json:"vectorizer"`
	ModuleConfig map[string]VectorizerConfig `json:"moduleConfig,omitempty"`
	Properties   []VectorProperty            `json:"properties"`
}

type VectorizerConfig struct {
	Model        string `json:"model"`
	ModelVersion string `json:"modelVersion,omitempty"`
	Type         string `json:"type"`
}

type VectorProperty struct {
	Name        string   `json:"name"`
	DataType    []string `json:"dataType"`
	Description string   `json:"description,omitempty"`
}

type VectorObject struct {
	Class      string          `json:"class"`
	Properties ChunkProperties `json:"properties"`
}

// ChunkProperties is the fixed property set every object carries:
// content, title, document_name, chunk_index.
type ChunkProperties struct {
	Content      string `json:"content"`
	Title        string `json:"title"`
	DocumentName string `json:"document_name"`
	ChunkIndex   int    `json:"chunk_index"`
}

type BatchObjectsRequest struct {
	Objects []VectorObject `json:"objects"`
}
