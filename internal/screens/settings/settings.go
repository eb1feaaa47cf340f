// Package settings edits the generation preferences and the UI options.
// Generation settings live on the Session and survive a hard reset; theme
// and language are stored as preferences.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

var (
	questionCounts = []int{5, 10, 15, 20, 30, 50}
	difficulties   = []string{"easy", "medium", "hard"}
	questionTypes  = []string{"mcq"}
	timerMinutes   = []int{0, 1, 2, 5, 10, 15, 30}
	languages      = []string{"en", "bn"}
	themes         = []string{"dark", "light"}
)

const (
	rowCount = iota
	rowDifficulty
	rowType
	rowTimer
	rowLanguage
	rowTheme
	rowMax
)

// SettingsScreen is a row-per-option editor. Left and right cycle through
// the values of the highlighted row; every change is persisted immediately.
type SettingsScreen struct {
	deps   *screens.Deps
	cursor int
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a new SettingsScreen.
func New(deps *screens.Deps) *SettingsScreen {
	return &SettingsScreen{deps: deps}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Row"},
		{Key: "Left/Right", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < rowMax-1 {
			s.cursor++
		}
	case "left", "h":
		s.cycle(-1)
	case "right", "l", "enter":
		s.cycle(1)
	}
	return s, nil
}

// cycle steps the highlighted row's value by delta, wrapping around.
func (s *SettingsScreen) cycle(delta int) {
	ctx := context.Background()
	sess := s.deps.Session

	switch s.cursor {
	case rowCount:
		sess.Settings.QuestionCount = cycleInt(questionCounts, sess.Settings.QuestionCount, delta)
	case rowDifficulty:
		sess.Settings.Difficulty = cycleString(difficulties, sess.Settings.Difficulty, delta)
	case rowType:
		sess.Settings.QuestionType = cycleString(questionTypes, sess.Settings.QuestionType, delta)
	case rowTimer:
		sess.Settings.TimerMinutes = cycleInt(timerMinutes, sess.Settings.TimerMinutes, delta)

	case rowLanguage:
		lang := cycleString(languages, s.deps.Prefs.Language(ctx), delta)
		s.deps.Prefs.SetLanguage(ctx, lang)
		return
	case rowTheme:
		name := cycleString(themes, s.deps.Prefs.Theme(ctx), delta)
		s.deps.Prefs.SetTheme(ctx, name)
		theme.Apply(name)
		return
	}
	s.deps.Sessions.Save(ctx, sess.Snapshot())
}

func cycleInt(values []int, current, delta int) int {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(values)) % len(values)
	return values[idx]
}

func cycleString(values []string, current string, delta int) string {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(values)) % len(values)
	return values[idx]
}

func (s *SettingsScreen) View(width, height int) string {
	ctx := context.Background()
	set := s.deps.Session.Settings

	timerLabel := "off"
	if set.TimerMinutes > 0 {
		timerLabel = fmt.Sprintf("%d min", set.TimerMinutes)
	}

	rows := []struct {
		label string
		value string
	}{
		{"Questions", fmt.Sprintf("%d", set.QuestionCount)},
		{"Difficulty", set.Difficulty},
		{"Question type", set.QuestionType},
		{"Timer", timerLabel},
		{"Language", s.deps.Prefs.Language(ctx)},
		{"Theme", s.deps.Prefs.Theme(ctx)},
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Settings"))
	b.WriteString("\n\n")

	var lines []string
	for i, row := range rows {
		label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16).Render(row.label)
		value := fmt.Sprintf("< %s >", row.value)
		line := label + "  " + value
		if i == s.cursor {
			line = theme.Selected.Render("> " + line)
		} else {
			line = theme.Unselected.Render("  " + line)
		}
		lines = append(lines, line)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Generation settings apply to the next quiz."))

	return b.String()
}
