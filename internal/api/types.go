package api

import "encoding/json"

// Upload is the backend's response to a document upload. IDs are numeric
// rows server-side but opaque here, so they arrive as json.Number and get
// normalized to strings.
type Upload struct {
	DocumentID     string
	Filename       string
	ContentPreview string
}

type wireUpload struct {
	DocumentID     json.Number `json:"document_id"`
	Filename       string      `json:"filename"`
	ContentPreview string      `json:"content_preview"`
}

// HistoryEntry is one completed session in the backend's history listing,
// newest first.
type HistoryEntry struct {
	ID         string
	FileName   string
	Date       string
	Score      int
	Total      int
	Percentage int
}

type wireHistoryEntry struct {
	ID         json.Number `json:"id"`
	FileName   string      `json:"fileName"`
	Date       string      `json:"date"`
	Score      int         `json:"score"`
	Total      int         `json:"total"`
	Percentage int         `json:"percentage"`
}

// Analytics are the aggregate figures across all completed sessions.
type Analytics struct {
	TotalSessions  int     `json:"total_sessions"`
	TotalQuestions int     `json:"total_questions"`
	AvgScore       float64 `json:"avg_score"`
}

// ChatParams carries one discussion turn with its grounding context.
type ChatParams struct {
	DocumentID     string
	Message        string
	History        []ChatTurn
	WrongQuestions []string
	Language       string
}

// ChatTurn is one prior message of the discussion, in the backend's shape.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
