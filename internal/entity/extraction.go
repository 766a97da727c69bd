package entity

// Wire types for the multimodal messages API used for PDF and image
// text extraction. Requests carry mixed content blocks (a base64
// document or image plus a text instruction); the extracted text comes
// back as the first content block of the assistant message.

type ExtractionRequest struct {
	Model     string              `json:"model"`
	MaxTokens int                 `json:"max_tokens"`
	Messages  []ExtractionMessage `json:"messages"`
}

type ExtractionMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *BlockSource `json:"source,omitempty"`
}

type BlockSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type ExtractionResponse struct {
	Content []ExtractionContent `json:"content"`
}

type ExtractionContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Text returns the extracted text, or ok=false when the response is
// missing the expected first text block.
func (r *ExtractionResponse) Text() (string, bool) {
	if len(r.Content) == 0 || r.Content[0].Text == "" {
		return "", false
	}
	return r.Content[0].Text, true
}
