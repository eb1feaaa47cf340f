package quiz

import "sort"

// Snapshot is the serializable projection of a Session. The bookmark set
// becomes an ordered list (sorted, for stable output); the raw upload file
// never appears here at all — only the backend's document descriptor does.
type Snapshot struct {
	Version    int               `json:"version"`
	SessionID  string            `json:"session_id,omitempty"`
	DocumentID string            `json:"document_id,omitempty"`
	Document   *DocumentInfo     `json:"document,omitempty"`
	Phase      Phase             `json:"phase"`
	Questions  []Question        `json:"questions,omitempty"`
	Answers    map[string]string `json:"answers,omitempty"`
	Bookmarks  []string          `json:"bookmarks,omitempty"`
	Results    *Result           `json:"results,omitempty"`
	Chat       []ChatMessage     `json:"chat,omitempty"`
	Elapsed    int               `json:"elapsed_seconds,omitempty"`
	Settings   Settings          `json:"settings"`
}

// SnapshotVersion is bumped when the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot captures the Session for persistence.
func (s *Session) Snapshot() Snapshot {
	bookmarks := make([]string, 0, len(s.Bookmarks))
	for id := range s.Bookmarks {
		bookmarks = append(bookmarks, id)
	}
	sort.Strings(bookmarks)

	answers := make(map[string]string, len(s.Answers))
	for id, key := range s.Answers {
		answers[id] = key
	}

	return Snapshot{
		Version:    SnapshotVersion,
		SessionID:  s.SessionID,
		DocumentID: s.DocumentID,
		Document:   s.Document,
		Phase:      s.Phase,
		Questions:  s.Questions,
		Answers:    answers,
		Bookmarks:  bookmarks,
		Results:    s.Results,
		Chat:       s.Chat,
		Elapsed:    s.Timer.ElapsedSeconds,
		Settings:   s.Settings,
	}
}

// FromSnapshot rebuilds a Session from a persisted snapshot. The bookmark
// list collapses back into a set (duplicates drop, order is irrelevant) and
// invariants are re-established via Normalize.
func FromSnapshot(snap Snapshot) *Session {
	s := NewSession()
	s.SessionID = snap.SessionID
	s.DocumentID = snap.DocumentID
	s.Document = snap.Document
	s.Phase = snap.Phase
	s.Questions = snap.Questions
	s.Chat = snap.Chat
	s.Results = snap.Results
	s.Timer.ElapsedSeconds = snap.Elapsed
	if snap.Settings != (Settings{}) {
		s.Settings = snap.Settings
	}
	for id, key := range snap.Answers {
		s.Answers[id] = key
	}
	for _, id := range snap.Bookmarks {
		s.Bookmarks[id] = true
	}
	s.Normalize()
	return s
}
