// Package analytics shows the aggregate figures the backend keeps across
// all completed sessions.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// statsLoadedMsg carries the aggregate figures.
type statsLoadedMsg struct {
	Stats api.Analytics
	Err   error
}

// AnalyticsScreen displays totals and the average score.
type AnalyticsScreen struct {
	deps    *screens.Deps
	stats   api.Analytics
	loading bool
	errMsg  string
}

var _ screen.Screen = (*AnalyticsScreen)(nil)
var _ screen.KeyHintProvider = (*AnalyticsScreen)(nil)

// New creates a new AnalyticsScreen.
func New(deps *screens.Deps) *AnalyticsScreen {
	return &AnalyticsScreen{deps: deps, loading: true}
}

func (s *AnalyticsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *AnalyticsScreen) Title() string {
	return "Analytics"
}

func (s *AnalyticsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AnalyticsScreen) load() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		stats, err := deps.API.Analytics(ctx)
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *AnalyticsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.stats = msg.Stats
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !s.loading {
			s.loading = true
			return s, s.load()
		}
	}
	return s, nil
}

func (s *AnalyticsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Analytics"))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Loading..."))
		return b.String()

	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg))
		return b.String()
	}

	rows := []string{
		statRow("Sessions completed", fmt.Sprintf("%d", s.stats.TotalSessions)),
		statRow("Questions answered", fmt.Sprintf("%d", s.stats.TotalQuestions)),
		statRow("Average score", fmt.Sprintf("%.1f%%", s.stats.AvgScore)),
	}
	card := theme.Card.Render(strings.Join(rows, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	return b.String()
}

func statRow(label, value string) string {
	l := lipgloss.NewStyle().Foreground(theme.TextDim).Width(22).Render(label)
	v := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
	return l + "  " + v
}
