// Package discussion is the post-quiz chat: a threaded conversation with
// the backend assistant, grounded in the uploaded document and the
// questions that were answered wrong.
package discussion

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// chatReplyMsg carries the assistant's reply, or the request failure.
type chatReplyMsg struct {
	Reply string
	Err   error
}

// exportDoneMsg reports the markdown export outcome.
type exportDoneMsg struct {
	Path string
	Err  error
}

// DiscussionScreen renders the chat thread. The thread itself lives on the
// Session so it survives restarts alongside the rest of the quiz state.
type DiscussionScreen struct {
	deps    *screens.Deps
	input   components.TextInput
	waiting bool
	status  string
	errMsg  string
}

var _ screen.Screen = (*DiscussionScreen)(nil)
var _ screen.KeyHintProvider = (*DiscussionScreen)(nil)

// New creates a new DiscussionScreen. A fresh thread opens with a locally
// synthesized assistant greeting built from the quiz result.
func New(deps *screens.Deps) *DiscussionScreen {
	sess := deps.Session
	if len(sess.Chat) == 0 && sess.Results != nil {
		sess.Chat = append(sess.Chat, quiz.ChatMessage{
			Role:    "assistant",
			Content: openingMessage(sess.Results),
		})
		deps.Sessions.Save(context.Background(), sess.Snapshot())
	}
	return &DiscussionScreen{
		deps:  deps,
		input: components.NewTextInput("Ask about the material or your mistakes", false, 0),
	}
}

// openingMessage frames the thread around the result without a network call.
func openingMessage(r *quiz.Result) string {
	if len(r.Wrong) == 0 {
		return fmt.Sprintf("You scored %d out of %d. A perfect run. Ask me anything about the material.",
			r.Correct, r.Total)
	}
	return fmt.Sprintf("You scored %d out of %d. Let's go over the %d you missed, or ask me anything about the material.",
		r.Correct, r.Total, len(r.Wrong))
}

func (s *DiscussionScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *DiscussionScreen) Title() string {
	return "Discussion"
}

func (s *DiscussionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+E", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DiscussionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		s.waiting = false
		sess := s.deps.Session
		reply := msg.Reply
		if msg.Err != nil {
			// A failed send degrades to an in-thread apology; the thread
			// stays usable and the user message is already recorded.
			s.deps.Log.Warn().Err(msg.Err).Msg("chat request failed")
			reply = "Sorry, I could not respond right now. Please try again."
		}
		sess.Chat = append(sess.Chat, quiz.ChatMessage{Role: "assistant", Content: reply})
		s.deps.Sessions.Save(context.Background(), sess.Snapshot())
		return s, nil

	case exportDoneMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = "Exported to " + msg.Path
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.waiting {
				return s, nil
			}
			text := strings.TrimSpace(s.input.Value())
			if text == "" {
				return s, nil
			}
			return s, s.send(text)
		case "ctrl+e":
			if len(s.deps.Session.Chat) == 0 {
				return s, nil
			}
			return s, s.export()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send appends the user turn and asks the backend for a reply. The history
// sent along excludes the new message; the backend gets it separately.
func (s *DiscussionScreen) send(text string) tea.Cmd {
	deps := s.deps
	sess := deps.Session

	history := make([]api.ChatTurn, 0, len(sess.Chat))
	for _, m := range sess.Chat {
		history = append(history, api.ChatTurn{Role: m.Role, Content: m.Content})
	}
	var wrong []string
	if sess.Results != nil {
		for _, w := range sess.Results.Wrong {
			wrong = append(wrong, w.Question)
		}
	}

	sess.Chat = append(sess.Chat, quiz.ChatMessage{Role: "user", Content: text})
	deps.Sessions.Save(context.Background(), sess.Snapshot())
	s.input.Reset()
	s.waiting = true
	s.errMsg = ""
	s.status = ""

	params := api.ChatParams{
		DocumentID:     sess.DocumentID,
		Message:        text,
		History:        history,
		WrongQuestions: wrong,
		Language:       deps.Prefs.Language(context.Background()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		reply, err := deps.API.Chat(ctx, params)
		return chatReplyMsg{Reply: reply, Err: err}
	}
}

// export writes the thread as a markdown file into the working directory.
func (s *DiscussionScreen) export() tea.Cmd {
	sess := s.deps.Session
	title := "Discussion"
	if sess.Document != nil {
		title = sess.Document.Filename
	}
	thread := make([]quiz.ChatMessage, len(sess.Chat))
	copy(thread, sess.Chat)

	return func() tea.Msg {
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", title)
		fmt.Fprintf(&b, "Exported %s\n\n", time.Now().Format("2006-01-02 15:04"))
		for _, m := range thread {
			who := "You"
			if m.Role == "assistant" {
				who = "Assistant"
			}
			fmt.Fprintf(&b, "**%s**\n\n%s\n\n", who, m.Content)
		}

		path := fmt.Sprintf("quizdeck-discussion-%s.md", time.Now().Format("20060102-150405"))
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return exportDoneMsg{Err: fmt.Errorf("export discussion: %w", err)}
		}
		return exportDoneMsg{Path: path}
	}
}

func (s *DiscussionScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	thread := s.deps.Session.Chat
	if len(thread) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Ask anything about the document or the questions you missed."))
		b.WriteString("\n\n")
	}

	// Show the newest turns that fit; older ones scroll off the top.
	lineBudget := height - 6
	if lineBudget < 4 {
		lineBudget = 4
	}
	var rendered []string
	used := 0
	for i := len(thread) - 1; i >= 0; i-- {
		card := s.turnView(thread[i], width)
		h := lipgloss.Height(card) + 1
		if used+h > lineBudget && len(rendered) > 0 {
			break
		}
		rendered = append([]string{card}, rendered...)
		used += h
	}
	for _, card := range rendered {
		b.WriteString(card)
		b.WriteString("\n\n")
	}

	if s.waiting {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  Thinking..."))
		b.WriteString("\n\n")
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("  Error: " + s.errMsg))
		b.WriteString("\n\n")
	}
	if s.status != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Success).
			Render("  " + s.status))
		b.WriteString("\n\n")
	}

	b.WriteString("  " + s.input.View())
	return b.String()
}

func (s *DiscussionScreen) turnView(m quiz.ChatMessage, width int) string {
	cardWidth := min(width-12, 64)
	if m.Role == "user" {
		card := theme.Card.Width(cardWidth).Render(
			lipgloss.NewStyle().Foreground(theme.Text).Render(m.Content))
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, card)
	}
	card := theme.Card.Width(cardWidth).Render(
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(m.Content))
	return "  " + card
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
