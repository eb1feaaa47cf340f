package quiz

import "fmt"

// Session is the single active quiz lifecycle instance. It is owned by the
// application root and mutated only from Update handlers, so no locking is
// needed; every mutation is followed by a persistence write.
type Session struct {
	SessionID  string
	DocumentID string
	Document   *DocumentInfo
	Phase      Phase
	Questions  []Question
	Answers    map[string]string // question id -> option key
	Bookmarks  map[string]bool   // set of question ids
	Results    *Result
	Chat       []ChatMessage
	Timer      Timer
	Settings   Settings

	// GenAttempt increases every time a generation stream is opened.
	// Events tagged with an older attempt are stale and must be dropped.
	GenAttempt int
}

// NewSession returns the empty post-load default Session.
func NewSession() *Session {
	return &Session{
		Phase:     PhaseUpload,
		Answers:   make(map[string]string),
		Bookmarks: make(map[string]bool),
		Settings:  DefaultSettings(),
	}
}

// Reset is the hard "new session" transition: every field is cleared except
// the generation settings. Reachable from any phase.
func (s *Session) Reset() {
	settings := s.Settings
	attempt := s.GenAttempt
	*s = *NewSession()
	s.Settings = settings
	// Keep the attempt counter monotonic so a stream left open by the old
	// session can never match a future attempt id.
	s.GenAttempt = attempt
}

// Advance moves the Session to the given phase, enforcing that the data
// required by that phase is present.
func (s *Session) Advance(p Phase) error {
	switch p {
	case PhaseUpload:
		// Always reachable: the discard direction.
	case PhaseGenerating:
		if s.DocumentID == "" {
			return fmt.Errorf("cannot enter generating: no document uploaded")
		}
	case PhaseAnswering:
		if s.SessionID == "" {
			return fmt.Errorf("cannot enter answering: no remote session started")
		}
		if len(s.Questions) == 0 {
			return fmt.Errorf("cannot enter answering: no questions")
		}
	case PhaseResults:
		if s.Results == nil {
			return fmt.Errorf("cannot enter results: no result received")
		}
	default:
		return fmt.Errorf("unknown phase %q", p)
	}
	s.Phase = p
	return nil
}

// StartupAction is the decision made when reconciling a loaded snapshot
// with the remote session state.
type StartupAction int

const (
	// ActionNone: state is consistent, nothing to do.
	ActionNone StartupAction = iota
	// ActionResumeAnswering: questions and a session id exist, no results.
	ActionResumeAnswering
	// ActionStartSession: questions exist but the remote session id was
	// lost; a session-start request must be re-issued before answering.
	ActionStartSession
)

// StartupAction decides how to reconcile the Session on application start.
// It is a pure function of the Session: repeating it on already-consistent
// state yields ActionNone or ActionResumeAnswering, never a network call.
func (s *Session) StartupAction() StartupAction {
	if len(s.Questions) == 0 || s.Results != nil {
		return ActionNone
	}
	if s.SessionID != "" {
		return ActionResumeAnswering
	}
	return ActionStartSession
}

// Resumable reports whether there is an in-progress quiz worth offering to
// resume.
func (s *Session) Resumable() bool {
	return len(s.Questions) > 0 && s.Results == nil
}

// Normalize restores the data-model invariants after loading a snapshot:
// answers and bookmarks are pruned to known question ids, and the phase is
// downgraded if its required fields are missing.
func (s *Session) Normalize() {
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	if s.Bookmarks == nil {
		s.Bookmarks = make(map[string]bool)
	}

	known := make(map[string]bool, len(s.Questions))
	for _, q := range s.Questions {
		known[q.ID] = true
	}
	for id := range s.Answers {
		if !known[id] {
			delete(s.Answers, id)
		}
	}
	for id := range s.Bookmarks {
		if !known[id] {
			delete(s.Bookmarks, id)
		}
	}

	switch {
	case s.Results != nil:
		s.Phase = PhaseResults
	case len(s.Questions) > 0 && s.SessionID != "":
		s.Phase = PhaseAnswering
	default:
		s.Phase = PhaseUpload
	}
}
