// Package results shows the graded outcome of a quiz: the score, the time
// taken, and a review of every mistake with its explanation. It renders
// either the live session result or a stored one replayed from history.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/screens/discussion"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ResultsScreen renders a graded result. In replay mode the retry,
// discussion and reset actions are unavailable: the reviewed session is
// history, not the live one.
type ResultsScreen struct {
	deps   *screens.Deps
	result *quiz.Result
	title  string
	replay bool
	scroll int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for the live session result.
func New(deps *screens.Deps) *ResultsScreen {
	title := "Results"
	if deps.Session.Document != nil {
		title = deps.Session.Document.Filename
	}
	return &ResultsScreen{
		deps:   deps,
		result: deps.Session.Results,
		title:  title,
	}
}

// NewReplay creates a view-only ResultsScreen for a stored result fetched
// from history.
func NewReplay(deps *screens.Deps, result *quiz.Result, title string) *ResultsScreen {
	return &ResultsScreen{
		deps:   deps,
		result: result,
		title:  title,
		replay: true,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Up/Down", Description: "Scroll"},
	}
	if !s.replay {
		hints = append(hints,
			layout.KeyHint{Key: "D", Description: "Discuss"},
			layout.KeyHint{Key: "R", Description: "Retry"},
			layout.KeyHint{Key: "N", Description: "New Quiz"},
		)
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	return hints
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	case "down", "j":
		if s.result != nil && s.scroll < len(s.result.Wrong)-1 {
			s.scroll++
		}

	case "d":
		if s.replay || s.result == nil {
			return s, nil
		}
		deps := s.deps
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: discussion.New(deps)}
		}

	case "r":
		// Same questions, fresh attempt. The application root registers
		// a new remote session before re-entering the quiz.
		if s.replay {
			return s, nil
		}
		return s, func() tea.Msg { return screens.RetryQuizMsg{} }

	case "n":
		if s.replay {
			return s, nil
		}
		s.deps.Session.Reset()
		s.deps.Sessions.Save(context.Background(), s.deps.Session.Snapshot())
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}

	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.result == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nNo result to show.")
	}
	r := s.result

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.title))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if r.Percentage() < 50 {
		scoreStyle = theme.Incorrect
	}
	score := fmt.Sprintf("%d / %d correct  (%d%%)", r.Correct, r.Total, r.Percentage())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scoreStyle.Render(score)))
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(scoreBand(r.Percentage())))
	b.WriteString("\n")

	if r.TimeTakenSecs > 0 {
		took := fmt.Sprintf("Time taken  %02d:%02d", r.TimeTakenSecs/60, r.TimeTakenSecs%60)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(took))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(r.Wrong) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Perfect score. Nothing to review."))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Review  (%d of %d)", s.scroll+1, len(r.Wrong))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.wrongCard(r.Wrong[s.scroll], width)))

	return b.String()
}

// wrongCard renders one reviewed mistake.
func (s *ResultsScreen) wrongCard(w quiz.WrongAnswer, width int) string {
	cardWidth := min(width-8, 70)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.Question))
	b.WriteString("\n\n")
	b.WriteString(theme.Incorrect.Render("Your answer:    " + w.UserAnswer))
	b.WriteString("\n")
	b.WriteString(theme.Correct.Render("Correct answer: " + w.CorrectAnswer))
	if w.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(w.Explanation))
	}

	return theme.Card.Width(cardWidth).Render(b.String())
}

// scoreBand maps the percentage to the encouragement line.
func scoreBand(pct int) string {
	switch {
	case pct == 100:
		return "Flawless. Every answer correct."
	case pct >= 80:
		return "Excellent work."
	case pct >= 60:
		return "Good effort. Review the mistakes below."
	case pct >= 40:
		return "Keep practicing. The explanations below will help."
	default:
		return "Tough one. Go through the material again and retry."
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
