package home

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
	"github.com/abhisek/quizdeck/internal/screens/analytics"
	"github.com/abhisek/quizdeck/internal/screens/answering"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/screens/results"
	"github.com/abhisek/quizdeck/internal/screens/settings"
	"github.com/abhisek/quizdeck/internal/screens/upload"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps *screens.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The menu adapts to the session: resume and
// discard entries only appear when there is something to resume or discard.
func New(deps *screens.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.buildItems())
	return h
}

func (h *HomeScreen) buildItems() []components.MenuItem {
	deps := h.deps
	s := deps.Session

	items := []components.MenuItem{
		{Label: "Upload Document", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: upload.New(deps)}
			}
		}},
		{Label: "Resume Quiz", Disabled: !s.Resumable(), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: answering.New(deps)}
			}
		}},
		{Label: "View Results", Disabled: s.Results == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: results.New(deps)}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps)}
			}
		}},
		{Label: "Analytics", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: analytics.New(deps)}
			}
		}},
		{Label: "Settings", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(deps)}
			}
		}},
		{Label: "New Session (discard progress)", Disabled: s.DocumentID == "", Action: func() tea.Cmd {
			deps.Session.Reset()
			deps.Sessions.Save(context.Background(), deps.Session.Snapshot())
			return func() tea.Msg { return router.PopToRootMsg{} }
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			if deps.Session.DocumentID != "" {
				deps.Sessions.Save(context.Background(), deps.Session.Snapshot())
			}
			return tea.Quit
		}},
	}
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Rebuild so resume/discard availability tracks the session.
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.buildItems())
	if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("QuizDeck"))
	sections = append(sections, theme.Subtitle.Width(width).Render("Turn any document into a quiz"))

	if status := h.sessionStatus(); status != "" {
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(status))
	}

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return "\n\n" + strings.Join(sections, "\n\n")
}

// sessionStatus summarizes the loaded session for the home banner.
func (h *HomeScreen) sessionStatus() string {
	s := h.deps.Session
	if s.Document == nil || s.DocumentID == "" {
		return ""
	}
	switch s.Phase {
	case quiz.PhaseAnswering:
		return fmt.Sprintf("%s  -  %d/%d answered", s.Document.Filename, s.AnsweredCount(), len(s.Questions))
	case quiz.PhaseResults:
		if s.Results != nil {
			return fmt.Sprintf("%s  -  scored %d%%", s.Document.Filename, s.Results.Percentage())
		}
	}
	return s.Document.Filename
}

func (h *HomeScreen) Title() string {
	return "Home"
}
