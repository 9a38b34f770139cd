package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	cPurple    = lipgloss.Color("99")
	cCyan      = lipgloss.Color("39")
	cNeonGreen = lipgloss.Color("118")
	cRed       = lipgloss.Color("203")
	cGold      = lipgloss.Color("220")
	cGray      = lipgloss.Color("240")
	cLightGray = lipgloss.Color("250")
	cWhite     = lipgloss.Color("255")
	cHighlight = lipgloss.Color("57")

	styleAppHeader = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(cPurple).
			Bold(true).
			Padding(0, 1)

	styleHeaderMuted = lipgloss.NewStyle().Foreground(cLightGray)

	styleSectionTitle = lipgloss.NewStyle().
				Foreground(cCyan).
				Bold(true).
				MarginTop(1)

	styleNormalText = lipgloss.NewStyle().Foreground(cWhite)
	styleMutedText  = lipgloss.NewStyle().Foreground(cGray)
	styleURI        = lipgloss.NewStyle().Foreground(cGold)

	styleSelected = lipgloss.NewStyle().
			Background(cHighlight).
			Foreground(cWhite).
			Bold(true)

	styleDialog = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cPurple).
			Padding(1, 2)

	styleUpdateDialog = styleDialog.BorderForeground(cNeonGreen)

	styleDialogTitle = lipgloss.NewStyle().
				Foreground(cWhite).
				Bold(true)

	styleChip = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	styleChipActive = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(lipgloss.Color("25")).
			Bold(true).
			Padding(0, 1)

	styleChipFocused = lipgloss.NewStyle().
				Foreground(cWhite).
				Background(cHighlight).
				Bold(true).
				Padding(0, 1)

	styleInfoToast = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cCyan).
			Padding(0, 1)

	styleErrorToast = styleInfoToast.BorderForeground(cRed)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(cWhite).
			Background(lipgloss.Color("238")).
			Padding(0, 1)

	styleFooterDesc = lipgloss.NewStyle().Foreground(cLightGray)
)

// buildMarkdownRenderer returns a glamour renderer for the configured
// style, degrading to plain word wrapping for "plain" or on error.
func buildMarkdownRenderer(format string, width int) func(string) string {
	if width < 20 {
		width = 20
	}
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	switch style {
	case "", "rich":
		style = "dark"
	case "plain":
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
