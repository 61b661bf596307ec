package api

import "fmt"

// HistoryEntry is one prior turn serialized for the backend.
// The backend tags assistant turns as "ai" on the wire.
type HistoryEntry struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ChatRequest is the payload for POST /chat/.
type ChatRequest struct {
	Question    string         `json:"question"`
	ModelName   string         `json:"model_name"`
	ChatHistory []HistoryEntry `json:"chat_history"`
}

// SourceDocument is a retrieved passage returned alongside an answer.
type SourceDocument struct {
	Source      string `json:"source"`
	PageContent string `json:"page_content"`
}

// ChatResponse is the backend's answer for one exchange.
type ChatResponse struct {
	Answer  string           `json:"answer"`
	Sources []SourceDocument `json:"sources"`
}

// Point is one 2-D embedding coordinate from GET /documents/visualize/.
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Source string  `json:"source"`
	Text   string  `json:"text"`
}

// UploadResult describes a processed document upload.
type UploadResult struct {
	Filename    string `json:"filename"`
	Detail      string `json:"detail"`
	ChunksCount int    `json:"chunks_count"`
}

// APIError is a non-2xx response from the backend. Detail carries the
// server's human-readable explanation when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}
