// Package history lists recent completed sessions from the backend and
// lets the user replay a stored result or delete an entry.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/screens/results"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// historyLoadedMsg carries the session listing.
type historyLoadedMsg struct {
	Entries []api.HistoryEntry
	Err     error
}

// resultLoadedMsg carries a stored result fetched for replay.
type resultLoadedMsg struct {
	Result *quiz.Result
	Title  string
	Err    error
}

// deleteDoneMsg reports an entry deletion.
type deleteDoneMsg struct {
	Err error
}

// HistoryScreen shows past sessions, newest first.
type HistoryScreen struct {
	deps       *screens.Deps
	entries    []api.HistoryEntry
	cursor     int
	loading    bool
	confirming bool // delete confirmation pending
	errMsg     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(deps *screens.Deps) *HistoryScreen {
	return &HistoryScreen{deps: deps, loading: true}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "View"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) load() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		entries, err := deps.API.History(ctx)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.entries = msg.Entries
		if s.cursor >= len(s.entries) {
			s.cursor = 0
		}
		return s, nil

	case resultLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		deps := s.deps
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: results.NewReplay(deps, msg.Result, msg.Title)}
		}

	case deleteDoneMsg:
		if msg.Err != nil {
			s.loading = false
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirming {
		switch msg.String() {
		case "y":
			s.confirming = false
			s.loading = true
			return s, s.deleteCurrent()
		case "n", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "enter":
		if s.loading || len(s.entries) == 0 {
			return s, nil
		}
		s.loading = true
		return s, s.openCurrent()
	case "d":
		if !s.loading && len(s.entries) > 0 {
			s.confirming = true
		}
	case "r":
		s.loading = true
		return s, s.load()
	}
	return s, nil
}

func (s *HistoryScreen) openCurrent() tea.Cmd {
	deps := s.deps
	entry := s.entries[s.cursor]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := deps.API.SessionResult(ctx, entry.ID)
		return resultLoadedMsg{Result: res, Title: entry.FileName, Err: err}
	}
}

func (s *HistoryScreen) deleteCurrent() tea.Cmd {
	deps := s.deps
	id := s.entries[s.cursor].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return deleteDoneMsg{Err: deps.API.DeleteSession(ctx, id)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Session History"))
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
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Hint.GetForeground()).
			Render("Press R to reload."))
		return b.String()

	case len(s.entries) == 0:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No completed sessions yet."))
		return b.String()
	}

	var rows []string
	for i, e := range s.entries {
		line := fmt.Sprintf("%-30s  %s  %3d/%-3d  %3d%%",
			truncate(e.FileName, 30), e.Date, e.Score, e.Total, e.Percentage)
		style := theme.Unselected
		if i == s.cursor {
			style = theme.Selected
			line = "> " + line
		} else {
			line = "  " + line
		}
		rows = append(rows, style.Render(line))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	if s.confirming {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Delete this session? (y/n)"))
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
