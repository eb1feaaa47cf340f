// Package answering is the quiz-taking screen: question navigation, answer
// selection, bookmarks, the optional countdown, and the final submission.
package answering

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
	"github.com/abhisek/quizdeck/internal/screens/results"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// timerTickMsg carries the wall clock for the countdown recomputation.
type timerTickMsg time.Time

// submitDoneMsg reports the graded result from the backend.
type submitDoneMsg struct {
	Result *quiz.Result
	Err    error
}

// AnsweringScreen walks the question set. All answer state lives in the
// Session; the screen only holds cursors and in-flight flags.
type AnsweringScreen struct {
	deps      *screens.Deps
	cursor    int // current question
	optCursor int // highlighted option of the current question

	now        time.Time
	submitting bool
	expired    bool // the forced submit on expiry already fired
	errMsg     string
}

var _ screen.Screen = (*AnsweringScreen)(nil)
var _ screen.KeyHintProvider = (*AnsweringScreen)(nil)

// New creates a new AnsweringScreen positioned on the first unanswered
// question.
func New(deps *screens.Deps) *AnsweringScreen {
	s := &AnsweringScreen{deps: deps, now: time.Now()}
	for i, q := range deps.Session.Questions {
		if _, ok := deps.Session.Answers[q.ID]; !ok {
			s.cursor = i
			break
		}
	}
	s.syncOptCursor()
	return s
}

func (s *AnsweringScreen) Init() tea.Cmd {
	sess := s.deps.Session
	if sess.Settings.TimerMinutes > 0 {
		// A resumed snapshot has no running clock; restart the countdown.
		if !sess.Timer.Running() {
			sess.Timer.Start(time.Now())
		}
		return tickCmd()
	}
	return nil
}

func (s *AnsweringScreen) Title() string {
	return "Quiz"
}

func (s *AnsweringScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1-9/Enter", Description: "Answer"},
		{Key: "Left/Right", Description: "Question"},
		{Key: "B", Description: "Bookmark"},
	}
	if s.deps.Session.CanSubmit() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	}
	return hints
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *AnsweringScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(time.Time(msg))

	case submitDoneMsg:
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AnsweringScreen) handleTick(now time.Time) (screen.Screen, tea.Cmd) {
	s.now = now
	sess := s.deps.Session
	limit := sess.Settings.TimerMinutes
	if limit <= 0 || !sess.Timer.Running() {
		return s, nil
	}
	if sess.Timer.Remaining(limit, now) <= 0 && !s.expired && !s.submitting {
		// Expiry submits whatever is answered, exactly once. The backend
		// grades unanswered questions as wrong.
		s.expired = true
		return s, s.submit()
	}
	return s, tickCmd()
}

func (s *AnsweringScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.deps.Session
	q := sess.Questions[s.cursor]

	switch key := msg.String(); key {
	case "up", "k":
		if s.optCursor > 0 {
			s.optCursor--
		}
	case "down", "j":
		if s.optCursor < len(q.Options)-1 {
			s.optCursor++
		}
	case "left", "h":
		if s.cursor > 0 {
			s.cursor--
			s.syncOptCursor()
		}
	case "right", "l", "tab", "space":
		if s.cursor < len(sess.Questions)-1 {
			s.cursor++
			s.syncOptCursor()
		}
	case "enter":
		return s, s.choose(q.Options[s.optCursor].Key)
	case "b":
		sess.ToggleBookmark(q.ID)
		s.save()
	case "s":
		if sess.CanSubmit() || s.errMsg != "" {
			s.errMsg = ""
			return s, s.submit()
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if n := int(key[0] - '0'); n <= len(q.Options) {
				s.optCursor = n - 1
				return s, s.choose(q.Options[n-1].Key)
			}
		}
	}
	return s, nil
}

// choose records the answer and moves on to the next question.
func (s *AnsweringScreen) choose(optionKey string) tea.Cmd {
	sess := s.deps.Session
	sess.RecordAnswer(sess.Questions[s.cursor].ID, optionKey)
	s.save()
	if s.cursor < len(sess.Questions)-1 {
		s.cursor++
		s.syncOptCursor()
	}
	return nil
}

// syncOptCursor parks the cursor on the recorded answer of the current
// question, or the first option.
func (s *AnsweringScreen) syncOptCursor() {
	sess := s.deps.Session
	q := sess.Questions[s.cursor]
	s.optCursor = 0
	if chosen, ok := sess.Answers[q.ID]; ok {
		for i, opt := range q.Options {
			if opt.Key == chosen {
				s.optCursor = i
				break
			}
		}
	}
}

func (s *AnsweringScreen) save() {
	s.deps.Sessions.Save(context.Background(), s.deps.Session.Snapshot())
}

// submit freezes the clock and sends the answers for grading.
func (s *AnsweringScreen) submit() tea.Cmd {
	s.submitting = true
	deps := s.deps
	sess := deps.Session
	sess.Timer.Freeze(time.Now())
	s.save()

	docID, sessID := sess.DocumentID, sess.SessionID
	answers := make(map[string]string, len(sess.Answers))
	for id, key := range sess.Answers {
		answers[id] = key
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		res, err := deps.API.SubmitAnswers(ctx, docID, sessID, answers)
		return submitDoneMsg{Result: res, Err: err}
	}
}

func (s *AnsweringScreen) handleSubmitted(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	sess := s.deps.Session
	msg.Result.TimeTakenSecs = sess.Timer.ElapsedSeconds
	sess.Results = msg.Result
	if err := sess.Advance(quiz.PhaseResults); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.save()

	deps := s.deps
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(deps)}
	}
}

func (s *AnsweringScreen) View(width, height int) string {
	sess := s.deps.Session
	if len(sess.Questions) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nNo questions loaded.")
	}
	q := sess.Questions[s.cursor]

	var b strings.Builder
	b.WriteString("\n")

	counter := fmt.Sprintf("Question %d of %d", s.cursor+1, len(sess.Questions))
	if sess.Bookmarks[q.ID] {
		counter += "  #"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(counter))

	if clock := s.clockView(); clock != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, clock))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width-8).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	list := components.OptionList{
		Options:    q.Options,
		Cursor:     s.optCursor,
		ChosenKey:  sess.Answers[q.ID],
		Bookmarked: sess.Bookmarks[q.ID],
	}
	b.WriteString(list.View(width))
	b.WriteString("\n")

	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d answered", sess.AnsweredCount(), len(sess.Questions)),
		sess.CompletionRatio(), false, min(width-20, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))

	switch {
	case s.submitting:
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Submitting..."))
	case s.errMsg != "":
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Submit failed: " + s.errMsg + "  (S to retry)"))
	case sess.CanSubmit():
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("All answered. Press S to submit."))
	}

	return b.String()
}

// clockView renders the countdown, or nothing when no limit is set.
func (s *AnsweringScreen) clockView() string {
	sess := s.deps.Session
	limit := sess.Settings.TimerMinutes
	if limit <= 0 || !sess.Timer.Running() {
		return ""
	}
	left := sess.Timer.Remaining(limit, s.now)
	if left < 0 {
		left = 0
	}
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if left <= 30 {
		style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	return style.Render(fmt.Sprintf("Time left  %02d:%02d", left/60, left%60))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
