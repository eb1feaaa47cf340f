package generating

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/screens/answering"
	"github.com/abhisek/quizdeck/internal/stream"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// streamOpenedMsg carries the opened stream or the connection failure.
type streamOpenedMsg struct {
	Stream *stream.Stream
	Err    error
}

// streamEventMsg is one event read off the open stream.
type streamEventMsg struct {
	Event stream.Event
}

// streamClosedMsg is sent when the event channel closes.
type streamClosedMsg struct{}

// sessionStartedMsg reports the remote session registration.
type sessionStartedMsg struct {
	SessionID string
	Err       error
}

// GeneratingScreen consumes the question stream and reduces it into the
// session. Each retry opens a fresh attempt; events from earlier attempts
// are discarded by their attempt tag.
type GeneratingScreen struct {
	deps     *screens.Deps
	gen      *quiz.Generation
	strm     *stream.Stream
	starting bool
	errMsg   string
}

var _ screen.Screen = (*GeneratingScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratingScreen)(nil)

// New creates a new GeneratingScreen.
func New(deps *screens.Deps) *GeneratingScreen {
	return &GeneratingScreen{deps: deps}
}

func (s *GeneratingScreen) Init() tea.Cmd {
	return s.openStream()
}

// Close tears down the stream when the screen leaves the stack.
func (s *GeneratingScreen) Close() {
	if s.strm != nil {
		s.strm.Close()
	}
}

func (s *GeneratingScreen) Title() string {
	return "Generating"
}

func (s *GeneratingScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Cancel"},
	}
}

// openStream starts a new generation attempt. The attempt counter is
// bumped first so anything still arriving from an older stream is stale.
func (s *GeneratingScreen) openStream() tea.Cmd {
	if s.strm != nil {
		s.strm.Close()
		s.strm = nil
	}
	sess := s.deps.Session
	sess.GenAttempt++
	s.gen = quiz.NewGeneration(sess.GenAttempt)
	s.errMsg = ""
	s.starting = false
	// A retry re-enters the generating phase after a failure dropped the
	// session back to upload.
	if sess.Phase != quiz.PhaseGenerating {
		sess.Advance(quiz.PhaseGenerating)
	}

	deps := s.deps
	params := stream.GenerateParams{
		DocumentID: sess.DocumentID,
		Count:      sess.Settings.QuestionCount,
		Difficulty: sess.Settings.Difficulty,
		Language:   deps.Prefs.Language(context.Background()),
		Attempt:    sess.GenAttempt,
	}
	return func() tea.Msg {
		strm, err := deps.Stream.OpenGeneration(context.Background(), params)
		return streamOpenedMsg{Stream: strm, Err: err}
	}
}

// waitEvent blocks on the next stream event.
func waitEvent(strm *stream.Stream) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-strm.Events()
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{Event: ev}
	}
}

func (s *GeneratingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case streamOpenedMsg:
		if msg.Err != nil {
			s.fail(msg.Err.Error())
			return s, nil
		}
		s.strm = msg.Stream
		return s, waitEvent(s.strm)

	case streamEventMsg:
		return s.handleEvent(msg.Event)

	case streamClosedMsg:
		// Channel closed without a terminal event reaching us; treat as a
		// dropped connection.
		if s.gen != nil && !s.gen.Terminal() {
			s.gen.ApplyDrop()
			return s.handleOutcome()
		}
		return s, nil

	case sessionStartedMsg:
		return s.handleSessionStarted(msg)

	case tea.KeyMsg:
		if msg.String() == "r" && s.errMsg != "" {
			if s.gen != nil && s.gen.Outcome() == quiz.OutcomeComplete {
				// Generation succeeded; only the session registration
				// failed. Retry just that.
				s.errMsg = ""
				s.starting = true
				return s, s.startSession()
			}
			return s, s.openStream()
		}
	}

	return s, nil
}

func (s *GeneratingScreen) handleEvent(ev stream.Event) (screen.Screen, tea.Cmd) {
	// Stale events from a closed attempt must never touch current state.
	if ev.Attempt != s.deps.Session.GenAttempt {
		return s, waitEvent(s.strm)
	}

	switch ev.Kind {
	case stream.EventQuestion:
		s.gen.ApplyQuestion(ev.Question)
	case stream.EventDone:
		s.gen.ApplyDone()
	case stream.EventError:
		s.gen.ApplyError(ev.Details)
	case stream.EventDropped:
		s.gen.ApplyDrop()
	}

	if s.gen.Terminal() {
		return s.handleOutcome()
	}
	return s, waitEvent(s.strm)
}

func (s *GeneratingScreen) handleOutcome() (screen.Screen, tea.Cmd) {
	switch s.gen.Outcome() {
	case quiz.OutcomeComplete:
		sess := s.deps.Session
		sess.Questions = s.gen.Questions
		s.deps.Sessions.Save(context.Background(), sess.Snapshot())
		s.starting = true
		return s, s.startSession()

	case quiz.OutcomeFailed:
		msg := s.gen.FailureMsg
		if msg == "" {
			msg = "question generation failed"
		}
		s.fail(msg)
		return s, nil
	}
	return s, nil
}

// fail shows the error and drops the session back to the upload phase, so
// the persisted state matches what the user can act on.
func (s *GeneratingScreen) fail(msg string) {
	s.errMsg = msg
	sess := s.deps.Session
	sess.Advance(quiz.PhaseUpload)
	s.deps.Sessions.Save(context.Background(), sess.Snapshot())
}

// startSession registers the quiz with the backend so the submission can
// be graded later.
func (s *GeneratingScreen) startSession() tea.Cmd {
	deps := s.deps
	docID := deps.Session.DocumentID
	total := len(deps.Session.Questions)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		id, err := deps.API.StartSession(ctx, docID, total)
		return sessionStartedMsg{SessionID: id, Err: err}
	}
}

func (s *GeneratingScreen) handleSessionStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	s.starting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	sess := s.deps.Session
	sess.SessionID = msg.SessionID
	if err := sess.Advance(quiz.PhaseAnswering); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	sess.Timer.Start(time.Now())
	s.deps.Sessions.Save(context.Background(), sess.Snapshot())

	deps := s.deps
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: answering.New(deps)}
	}
}

func (s *GeneratingScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Generation failed"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Hint.GetForeground()).
			Render("Press R to retry or Esc to go back."))
		return b.String()
	}

	if s.starting {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Registering session..."))
		return b.String()
	}

	received := 0
	if s.gen != nil {
		received = len(s.gen.Questions)
	}
	want := s.deps.Session.Settings.QuestionCount

	b.WriteString(theme.Title.Width(width).Render("Generating questions"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("%d of %d received", received, want)))
	b.WriteString("\n\n")

	percent := 0.0
	if want > 0 {
		percent = float64(received) / float64(want)
	}
	bar := components.NewProgressBar("", percent, false, min(width-20, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
