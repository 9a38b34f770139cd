package ui

import (
	"strings"

	"imagetoolbox/internal/nav"

	"github.com/charmbracelet/lipgloss"
)

// footerHint is a key hint for the footer bar. These are shorter than the
// KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

var globalFooterHints = []footerHint{
	{"U", "Updates"},
	{"q", "Quit"},
}

var mainFooterHints = []footerHint{
	{"↑↓", "Navigate"},
	{"⏎", "Choose"},
	{"o", "Open"},
	{"X", "Clear recent"},
}

var batchFooterHints = []footerHint{
	{"a", "Replace"},
	{"y", "Copy"},
	{"g", "Collage"},
	{"←→", "Format"},
	{"⇥", "Variant"},
	{"s", "Save"},
	{"esc", "Back"},
}

var toolFooterHints = []footerHint{
	{"o", "Open"},
	{"←→", "Format"},
	{"⇥", "Variant"},
	{"s", "Save"},
	{"esc", "Back"},
}

var promptFooterHints = []footerHint{
	{"⏎", "Submit"},
	{"esc", "Cancel"},
}

// renderFooter renders the footer bar with pill-style key hints.
func (m *App) renderFooter() string {
	var hints []footerHint
	switch {
	case m.prompting:
		hints = promptFooterHints
	case m.state.Screen() == nav.Main:
		hints = append(hints, mainFooterHints...)
		hints = append(hints, globalFooterHints...)
	case m.state.Screen() == nav.BatchResize:
		hints = append(hints, batchFooterHints...)
		hints = append(hints, globalFooterHints...)
	default:
		hints = append(hints, toolFooterHints...)
		hints = append(hints, globalFooterHints...)
	}

	right := styleFooterDesc.Render(m.state.Screen().Title())
	hints = trimHintsToFit(hints, m.width-lipgloss.Width(right)-4)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + right
}

// trimHintsToFit drops hints from the end until the bar fits.
func trimHintsToFit(hints []footerHint, width int) []footerHint {
	for len(hints) > 0 {
		total := 0
		for i, h := range hints {
			if i > 0 {
				total += 2
			}
			total += lipgloss.Width(keyPill(h.key, h.desc))
		}
		if total <= width {
			break
		}
		hints = hints[:len(hints)-1]
	}
	return hints
}

func keyPill(key, desc string) string {
	return styleFooterKey.Render(key) + " " + styleFooterDesc.Render(desc)
}
