package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// OptionList renders the answer choices of one question. Selection and
// answer state live in the Session; this component only draws.
type OptionList struct {
	Options    []quiz.Option
	Cursor     int
	ChosenKey  string
	Bookmarked bool
}

// View renders the options with the current cursor and chosen answer.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor {
			prefix = "> "
		}

		marker := " "
		if opt.Key == o.ChosenKey {
			marker = "*"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, opt.Key, opt.Text)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if opt.Key == o.ChosenKey {
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		}
		if i == o.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if o.Bookmarked {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  # bookmarked"))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
