package ui

import (
	"fmt"
	"strings"

	"imagetoolbox/internal/nav"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the whole screen. Dialogs replace the body while visible.
func (m *App) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case m.updateDialog != nil && m.state.Flags.ShowUpdateDialog:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.updateDialog.View())
	case m.selectDialog != nil && m.state.Flags.ShowSelectDialog:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.selectDialog.View(m.width))
	default:
		body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(m.renderScreen())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *App) renderHeader() string {
	title := "IMAGE TOOLBOX"
	if m.version != "" {
		title = fmt.Sprintf("IMAGE TOOLBOX %s", m.version)
	}
	status := styleHeaderMuted.Render(m.state.Screen().Title())
	if m.updateInFlight {
		status += " " + m.updateSpinner.View() + styleHeaderMuted.Render(" checking for updates")
	} else if m.state.Tag != "" {
		status += styleHeaderMuted.Render(" • latest " + m.state.Tag)
	}
	header := styleAppHeader.Render(title) + " " + status
	if m.toastText != "" {
		header += "\n" + m.renderToast()
	}
	return header
}

func (m *App) renderToast() string {
	style := styleInfoToast
	if m.toastError {
		style = styleErrorToast
	}
	return style.Render(ansi.Truncate(m.toastText, m.width-4, "…"))
}

func (m *App) renderScreen() string {
	var b strings.Builder
	switch screen := m.state.Screen(); screen {
	case nav.Main:
		m.renderMain(&b)
	case nav.BatchResize, nav.Collage:
		m.renderBatch(&b, screen)
	default:
		m.renderTool(&b, screen)
	}
	if m.prompting {
		b.WriteString("\n\n")
		b.WriteString(styleSectionTitle.Render(m.promptTitle()))
		b.WriteString("\n")
		b.WriteString(m.prompt.View())
	}
	return b.String()
}

func (m *App) promptTitle() string {
	switch m.promptMode {
	case promptSingle:
		return "Image path"
	case promptMulti:
		return "Image paths (comma or newline separated)"
	default:
		return "Image path(s)"
	}
}

func (m *App) renderMain(b *strings.Builder) {
	width := m.width - 4
	b.WriteString(styleSectionTitle.Render("Pick images"))
	b.WriteString("\n")
	b.WriteString(m.menuLine(0, "Open image(s)…", width))

	b.WriteString("\n")
	b.WriteString(styleSectionTitle.Render("Recent"))
	if len(m.recentEntries) == 0 {
		b.WriteString("\n")
		b.WriteString(styleMutedText.Render("  nothing yet"))
		return
	}
	for i, entry := range m.recentEntries {
		b.WriteString("\n")
		b.WriteString(m.menuLine(i+1, string(entry.URI), width))
	}
}

func (m *App) menuLine(index int, text string, width int) string {
	text = ansi.Truncate(text, width, "…")
	if index == m.menuCursor {
		return styleSelected.Render("▸ " + text)
	}
	if index == 0 {
		return styleNormalText.Render("  " + text)
	}
	return "  " + styleURI.Render(text)
}

func (m *App) renderBatch(b *strings.Builder, screen nav.Screen) {
	refs := m.state.Selection.Multi
	b.WriteString(styleSectionTitle.Render(fmt.Sprintf("%s: %d images", screen.Title(), len(refs))))
	if len(refs) == 0 {
		b.WriteString("\n")
		b.WriteString(styleMutedText.Render("  no images picked"))
	}
	for i, ref := range refs {
		b.WriteString("\n")
		b.WriteString(styleMutedText.Render(fmt.Sprintf("%3d ", i+1)))
		b.WriteString(styleURI.Render(ansi.Truncate(string(ref), m.width-8, "…")))
	}
	b.WriteString("\n")
	b.WriteString(renderFormatSelector(m.selector, m.width-2))
}

func (m *App) renderTool(b *strings.Builder, screen nav.Screen) {
	b.WriteString(styleSectionTitle.Render(screen.Title()))
	b.WriteString("\n")
	if ref := m.state.Selection.Single; ref != nil {
		b.WriteString(styleURI.Render(ansi.Truncate(string(*ref), m.width-4, "…")))
	} else {
		b.WriteString(styleMutedText.Render("No image picked. Press o to open one."))
	}
	b.WriteString("\n")
	b.WriteString(renderFormatSelector(m.selector, m.width-2))
}
