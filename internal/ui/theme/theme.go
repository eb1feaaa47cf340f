package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Dark is the default; Apply swaps in the light palette
// when the saved preference asks for it.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Apply switches the palette by name ("dark" or "light") and rebuilds the
// derived styles. Unknown names keep the dark palette.
func Apply(name string) {
	if name == "light" {
		Primary = lipgloss.Color("#4F46E5")
		Secondary = lipgloss.Color("#0D9488")
		Accent = lipgloss.Color("#D97706")
		Success = lipgloss.Color("#16A34A")
		Error = lipgloss.Color("#E11D48")
		Text = lipgloss.Color("#0F172A")
		TextDim = lipgloss.Color("#64748B")
		BgDark = lipgloss.Color("#F8FAFC")
		BgCard = lipgloss.Color("#E2E8F0")
		Border = lipgloss.Color("#CBD5E1")
	} else {
		Primary = lipgloss.Color("#6366F1")
		Secondary = lipgloss.Color("#14B8A6")
		Accent = lipgloss.Color("#F59E0B")
		Success = lipgloss.Color("#22C55E")
		Error = lipgloss.Color("#F43F5E")
		Text = lipgloss.Color("#F8FAFC")
		TextDim = lipgloss.Color("#94A3B8")
		BgDark = lipgloss.Color("#0F172A")
		BgCard = lipgloss.Color("#1E293B")
		Border = lipgloss.Color("#334155")
	}
	rebuild()
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

func rebuild() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body = lipgloss.NewStyle().Foreground(Text)
	Hint = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Header = lipgloss.NewStyle().Background(BgCard).Padding(0, 2)
	Footer = lipgloss.NewStyle().Background(BgCard).Padding(0, 2)
	Card = lipgloss.NewStyle().Background(BgCard).Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(1, 2)

	Selected = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)
}
