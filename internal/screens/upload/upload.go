package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/screens/generating"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// uploadDoneMsg reports the backend's response to the document upload.
type uploadDoneMsg struct {
	Result api.Upload
	Err    error
}

// UploadScreen asks for a document path and sends the file to the backend.
type UploadScreen struct {
	deps      *screens.Deps
	input     components.TextInput
	uploading bool
	errMsg    string
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates a new UploadScreen.
func New(deps *screens.Deps) *UploadScreen {
	return &UploadScreen{
		deps:  deps,
		input: components.NewTextInput("Path to .pdf, .docx or .txt file", false, 0),
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UploadScreen) Title() string {
	return "Upload"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Upload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		s.uploading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s.acceptUpload(msg.Result)

	case tea.KeyMsg:
		if s.uploading {
			return s, nil
		}
		if msg.String() == "enter" {
			path := strings.TrimSpace(s.input.Value())
			if path == "" {
				return s, nil
			}
			s.errMsg = ""
			s.uploading = true
			return s, s.uploadCmd(path)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// acceptUpload installs the new document into a fresh session and moves on
// to generation. Re-uploading discards the previous quiz but keeps the
// generation settings.
func (s *UploadScreen) acceptUpload(up api.Upload) (screen.Screen, tea.Cmd) {
	sess := s.deps.Session
	sess.Reset()
	sess.DocumentID = up.DocumentID
	sess.Document = &quiz.DocumentInfo{Filename: up.Filename}
	if err := sess.Advance(quiz.PhaseGenerating); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.deps.Sessions.Save(context.Background(), sess.Snapshot())

	deps := s.deps
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: generating.New(deps)}
	}
}

// uploadCmd reads the file and sends it to the backend.
func (s *UploadScreen) uploadCmd(path string) tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{Err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		language := deps.Prefs.Language(ctx)
		up, err := deps.API.Upload(ctx, filepath.Base(path), f, language)
		return uploadDoneMsg{Result: up, Err: err}
	}
}

func (s *UploadScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Upload a document"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("The backend extracts the text and generates questions from it."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "File: "+s.input.View()))
	b.WriteString("\n\n")

	if s.uploading {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Uploading..."))
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg))
	}

	return b.String()
}
