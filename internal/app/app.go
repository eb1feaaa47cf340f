// Package app wires the root Bubble Tea model: the screen router, the
// shared Session, and the periodic persistence heartbeat.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/screens/answering"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Snapshots are written on every heartbeat while a document is loaded, so
// a crash loses at most this much progress.
const heartbeatInterval = 30 * time.Second

// heartbeatMsg fires the periodic snapshot save.
type heartbeatMsg time.Time

// sessionRestoredMsg reports the result of re-issuing a lost remote
// session start during startup reconciliation.
type sessionRestoredMsg struct {
	SessionID string
	Err       error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screens.Deps
	router *router.Router
	width  int
	height int
}

func newAppModel(deps *screens.Deps) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(home.New(deps)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.startupCmd(),
		heartbeatCmd(),
	)
}

// startupCmd reconciles the loaded snapshot with the remote session. The
// decision itself is pure; only ActionStartSession touches the network.
func (m AppModel) startupCmd() tea.Cmd {
	switch m.deps.Session.StartupAction() {
	case quiz.ActionResumeAnswering:
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: answering.New(m.deps)}
		}
	case quiz.ActionStartSession:
		return m.startSessionCmd()
	default:
		return nil
	}
}

// startSessionCmd re-issues the remote session registration for the
// questions already in hand.
func (m AppModel) startSessionCmd() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		id, err := deps.API.StartSession(ctx, deps.Session.DocumentID, len(deps.Session.Questions))
		return sessionRestoredMsg{SessionID: id, Err: err}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case heartbeatMsg:
		if m.deps.Session.DocumentID != "" {
			m.deps.Sessions.Save(context.Background(), m.deps.Session.Snapshot())
		}
		return m, heartbeatCmd()

	case sessionRestoredMsg:
		if msg.Err != nil {
			// The saved questions are unusable without a remote session;
			// fall back to a clean slate rather than a broken resume.
			m.deps.Log.Warn().Err(msg.Err).Msg("could not restore remote session")
			m.deps.Session.Reset()
			m.deps.Sessions.Save(context.Background(), m.deps.Session.Snapshot())
			m.router.PopToRoot()
			return m, nil
		}
		m.deps.Session.SessionID = msg.SessionID
		if err := m.deps.Session.Advance(quiz.PhaseAnswering); err != nil {
			m.deps.Log.Error().Err(err).Msg("restore transition rejected")
			return m, nil
		}
		m.deps.Session.Timer.Start(time.Now())
		m.deps.Sessions.Save(context.Background(), m.deps.Session.Snapshot())
		m.router.PopToRoot()
		return m, m.router.Push(answering.New(m.deps))

	case screens.RetryQuizMsg:
		// Same question set, new remote session. The answering screen is
		// pushed once the registration lands as sessionRestoredMsg.
		m.deps.Session.ClearProgress()
		m.deps.Session.SessionID = ""
		m.deps.Sessions.Save(context.Background(), m.deps.Session.Snapshot())
		return m, m.startSessionCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.deps.Session.DocumentID != "" {
				m.deps.Sessions.Save(context.Background(), m.deps.Session.Snapshot())
			}
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, stepIndex(m.deps.Session.Phase), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(interface{ KeyHints() []layout.KeyHint }); ok && hp.KeyHints() != nil {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Up/Down", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// stepIndex maps the session phase to the header stepper position.
func stepIndex(p quiz.Phase) int {
	switch p {
	case quiz.PhaseUpload:
		return 0
	case quiz.PhaseGenerating:
		return 1
	case quiz.PhaseAnswering:
		return 2
	case quiz.PhaseResults:
		return 3
	default:
		return -1
	}
}

func heartbeatCmd() tea.Cmd {
	return tea.Tick(heartbeatInterval, func(t time.Time) tea.Msg {
		return heartbeatMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(deps *screens.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
