package ui

import (
	"strings"

	"imagetoolbox/internal/nav"
	"imagetoolbox/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// SelectDialog asks which tool to open for a freshly picked image.
type SelectDialog struct {
	ref    session.URI
	tools  []nav.Screen
	cursor int
	keys   KeyMap
}

// NewSelectDialog creates the dialog for ref.
func NewSelectDialog(ref session.URI, keys KeyMap) *SelectDialog {
	return &SelectDialog{ref: ref, tools: nav.SingleImageTools(), keys: keys}
}

// Update handles keys while the dialog has focus.
func (d *SelectDialog) Update(msg tea.Msg) (*SelectDialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch {
	case key.Matches(keyMsg, d.keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(keyMsg, d.keys.Down):
		if d.cursor < len(d.tools)-1 {
			d.cursor++
		}
	case key.Matches(keyMsg, d.keys.Enter):
		screen := d.Selected()
		return d, func() tea.Msg { return ScreenSelectedMsg{Screen: screen} }
	case key.Matches(keyMsg, d.keys.Back):
		return d, func() tea.Msg { return SelectDismissedMsg{} }
	}
	return d, nil
}

// Selected returns the highlighted tool.
func (d *SelectDialog) Selected() nav.Screen {
	return d.tools[d.cursor]
}

// View renders the dialog box.
func (d *SelectDialog) View(width int) string {
	inner := width - 8
	if inner < 24 {
		inner = 24
	}
	lines := []string{
		styleDialogTitle.Render("What do you want to do?"),
		styleURI.Render(ansi.Truncate(string(d.ref), inner, "…")),
		"",
	}
	for i, tool := range d.tools {
		line := "  " + tool.Title()
		if i == d.cursor {
			line = styleSelected.Render("▸ " + tool.Title())
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", styleMutedText.Render("⏎ open • esc dismiss"))
	return styleDialog.Render(strings.Join(lines, "\n"))
}
