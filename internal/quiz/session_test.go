package quiz

import (
	"reflect"
	"testing"
)

func populatedSession() *Session {
	s := NewSession()
	s.DocumentID = "doc-1"
	s.Document = &DocumentInfo{Filename: "notes.pdf"}
	s.SessionID = "sess-1"
	s.Questions = []Question{q("q1"), q("q2")}
	s.Answers["q1"] = "A"
	s.Bookmarks["q2"] = true
	s.Chat = []ChatMessage{{Role: "user", Content: "hi"}}
	s.Phase = PhaseAnswering
	s.GenAttempt = 3
	return s
}

func TestReset_FromAnyPhase(t *testing.T) {
	for _, phase := range []Phase{PhaseUpload, PhaseGenerating, PhaseAnswering, PhaseResults} {
		t.Run(string(phase), func(t *testing.T) {
			s := populatedSession()
			s.Phase = phase
			s.Settings.Difficulty = "hard"
			if phase == PhaseResults {
				s.Results = &Result{Correct: 1, Total: 2}
			}

			s.Reset()

			want := NewSession()
			want.Settings.Difficulty = "hard"
			want.GenAttempt = s.GenAttempt // monotonic, not part of equality

			if s.Phase != PhaseUpload {
				t.Errorf("phase after reset = %q, want upload", s.Phase)
			}
			if s.SessionID != "" || s.DocumentID != "" || s.Document != nil {
				t.Error("identifiers survived reset")
			}
			if len(s.Questions) != 0 || len(s.Answers) != 0 || len(s.Bookmarks) != 0 {
				t.Error("quiz data survived reset")
			}
			if s.Results != nil || len(s.Chat) != 0 {
				t.Error("results or chat survived reset")
			}
			if s.Timer.Running() || s.Timer.ElapsedSeconds != 0 {
				t.Error("timer survived reset")
			}
			if !reflect.DeepEqual(s.Settings, want.Settings) {
				t.Errorf("settings = %+v, want retained %+v", s.Settings, want.Settings)
			}
		})
	}
}

func TestReset_KeepsAttemptCounterMonotonic(t *testing.T) {
	s := populatedSession()
	s.Reset()
	if s.GenAttempt != 3 {
		t.Errorf("GenAttempt after reset = %d, want 3", s.GenAttempt)
	}
}

func TestAdvance_Validation(t *testing.T) {
	tests := []struct {
		name    string
		prep    func(*Session)
		to      Phase
		wantErr bool
	}{
		{"upload always allowed", func(s *Session) {}, PhaseUpload, false},
		{"generating without document", func(s *Session) {}, PhaseGenerating, true},
		{"generating with document", func(s *Session) { s.DocumentID = "d" }, PhaseGenerating, false},
		{"answering without session id", func(s *Session) {
			s.Questions = []Question{q("q1")}
		}, PhaseAnswering, true},
		{"answering without questions", func(s *Session) {
			s.SessionID = "sess"
		}, PhaseAnswering, true},
		{"answering ready", func(s *Session) {
			s.SessionID = "sess"
			s.Questions = []Question{q("q1")}
		}, PhaseAnswering, false},
		{"results without result", func(s *Session) {}, PhaseResults, true},
		{"results with result", func(s *Session) {
			s.Results = &Result{Total: 1}
		}, PhaseResults, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			tt.prep(s)
			err := s.Advance(tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Advance(%q) error = %v, wantErr %v", tt.to, err, tt.wantErr)
			}
			if err == nil && s.Phase != tt.to {
				t.Errorf("phase = %q, want %q", s.Phase, tt.to)
			}
		})
	}
}

func TestStartupAction(t *testing.T) {
	s := NewSession()
	if got := s.StartupAction(); got != ActionNone {
		t.Errorf("empty session: %v, want ActionNone", got)
	}

	s.Questions = []Question{q("q1")}
	if got := s.StartupAction(); got != ActionStartSession {
		t.Errorf("orphaned questions: %v, want ActionStartSession", got)
	}

	s.SessionID = "sess-1"
	if got := s.StartupAction(); got != ActionResumeAnswering {
		t.Errorf("questions + session id: %v, want ActionResumeAnswering", got)
	}

	// Idempotent: repeating on consistent state changes nothing.
	if got := s.StartupAction(); got != ActionResumeAnswering {
		t.Errorf("repeat: %v, want ActionResumeAnswering", got)
	}

	s.Results = &Result{Total: 1}
	if got := s.StartupAction(); got != ActionNone {
		t.Errorf("with results: %v, want ActionNone", got)
	}
}

func TestNormalize_PrunesToQuestionIDs(t *testing.T) {
	s := NewSession()
	s.Questions = []Question{q("q1")}
	s.SessionID = "sess"
	s.Answers["q1"] = "A"
	s.Answers["ghost"] = "B"
	s.Bookmarks["q1"] = true
	s.Bookmarks["ghost"] = true

	s.Normalize()

	if len(s.Answers) != 1 || s.Answers["q1"] != "A" {
		t.Errorf("answers = %v, want only q1", s.Answers)
	}
	if len(s.Bookmarks) != 1 || !s.Bookmarks["q1"] {
		t.Errorf("bookmarks = %v, want only q1", s.Bookmarks)
	}
	if s.Phase != PhaseAnswering {
		t.Errorf("phase = %q, want answering", s.Phase)
	}
}

func TestNormalize_DowngradesInconsistentPhase(t *testing.T) {
	s := NewSession()
	s.Phase = PhaseResults // claims results, has none
	s.Normalize()
	if s.Phase != PhaseUpload {
		t.Errorf("phase = %q, want upload", s.Phase)
	}
}
