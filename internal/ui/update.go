package ui

import (
	"fmt"
	"strings"
	"time"

	appErrors "imagetoolbox/internal/errors"
	"imagetoolbox/internal/nav"
	"imagetoolbox/internal/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is the single entry point for state changes.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if model, cmd, handled := m.handleBackgroundMsg(msg); handled {
		return model, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SingleImagePickedMsg:
		m.state.SetSingleImage(msg.Ref)
		if m.state.Flags.ShowSelectDialog && msg.Ref != nil {
			m.selectDialog = NewSelectDialog(*msg.Ref, m.keys)
		}
		if msg.Ref == nil {
			return m, nil
		}
		return m, m.remember([]session.URI{*msg.Ref})

	case MultiImagesPickedMsg:
		m.state.SetMultiImage(msg.Refs)
		return m, m.remember(msg.Refs)

	case ScreenSelectedMsg:
		if m.selectDialog == nil {
			// A repeated choice from a dialog that already closed.
			return m, nil
		}
		m.state.HideSelectDialog()
		m.selectDialog = nil
		m.state.OpenScreen(msg.Screen)
		return m, nil

	case SelectDismissedMsg:
		m.state.HideSelectDialog()
		m.selectDialog = nil
		return m, nil

	case UpdateDismissedMsg:
		m.state.CancelUpdate()
		m.updateDialog = nil
		return m, nil

	case UpdateCopiedMsg:
		if msg.Err != nil {
			return m, m.showToast("Could not copy link: "+msg.Err.Error(), true)
		}
		return m, m.showToast("Copied "+msg.URL, false)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.prompting {
		// Cursor blink and paste messages belong to the prompt.
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleBackgroundMsg processes results of background commands and timers.
func (m *App) handleBackgroundMsg(msg tea.Msg) (tea.Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case updateCheckedMsg:
		m.updateInFlight = false
		if msg.err != nil {
			// Best effort: a failed check never reaches the user.
			logUpdate("check failed [%s]: %v", appErrors.CodeOf(msg.err), msg.err)
			return m, nil, true
		}
		if m.state.ApplyUpdate(msg.info) {
			logUpdate("release %s differs from %s", msg.info.LatestTag, msg.info.CurrentVersion)
			m.updateDialog = NewUpdateDialog(msg.info, m.keys, m.width, buildMarkdownRenderer(m.outputFormat, m.width-12))
		}
		return m, nil, true

	case spinner.TickMsg:
		if !m.updateInFlight {
			return m, nil, true
		}
		var cmd tea.Cmd
		m.updateSpinner, cmd = m.updateSpinner.Update(msg)
		return m, cmd, true

	case recentLoadedMsg:
		if msg.err != nil {
			logRecent("load failed [%s]: %v", appErrors.CodeOf(msg.err), msg.err)
			return m, nil, true
		}
		m.recentEntries = msg.entries
		if m.menuCursor >= m.menuLen() {
			m.menuCursor = m.menuLen() - 1
		}
		return m, nil, true

	case recentRecordedMsg:
		if msg.err != nil {
			logRecent("record failed [%s]: %v", appErrors.CodeOf(msg.err), msg.err)
		}
		return m, nil, true

	case toastTickMsg:
		if m.toastText == "" {
			return m, nil, true
		}
		if time.Since(m.toastStart) >= toastDuration {
			m.toastText = ""
			return m, nil, true
		}
		return m, scheduleToastTick(), true
	}
	return m, nil, false
}

func (m *App) remember(refs []session.URI) tea.Cmd {
	m.picked += len(refs)
	if m.recentStore == nil || len(refs) == 0 {
		return nil
	}
	return recordRecent(m.recentStore, m.recentLimit, refs)
}

// handleKeyMsg routes keys to whichever layer has focus: prompt, update
// dialog, select dialog, then the active screen.
func (m *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}

	if m.updateDialog != nil && m.state.Flags.ShowUpdateDialog {
		var cmd tea.Cmd
		m.updateDialog, cmd = m.updateDialog.Update(msg)
		return m, cmd
	}

	if m.selectDialog != nil && m.state.Flags.ShowSelectDialog {
		var cmd tea.Cmd
		m.selectDialog, cmd = m.selectDialog.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.CheckUpdate):
		return m, m.checkForUpdate()
	}

	switch m.state.Screen() {
	case nav.Main:
		return m.handleMainKey(msg)
	case nav.BatchResize:
		return m.handleBatchKey(msg)
	default:
		return m.handleToolKey(msg)
	}
}

func (m *App) openPrompt(mode promptMode) tea.Cmd {
	m.prompting = true
	m.promptMode = mode
	m.prompt.SetValue("")
	return m.prompt.Focus()
}

func (m *App) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.prompting = false
		m.prompt.Blur()
		return m, m.submitPrompt(m.prompt.Value())
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// submitPrompt converts typed paths into a pick message.
func (m *App) submitPrompt(input string) tea.Cmd {
	refs := session.ParseURIs(input)
	mode := m.promptMode
	if mode == promptAuto && len(refs) > 1 {
		mode = promptMulti
	}
	if mode == promptMulti {
		return func() tea.Msg { return MultiImagesPickedMsg{Refs: refs} }
	}
	var ref *session.URI
	if len(refs) > 0 {
		first := refs[0]
		ref = &first
	}
	return func() tea.Msg { return SingleImagePickedMsg{Ref: ref} }
}

// Main screen rows: "Open" first, then recent entries.
func (m *App) menuLen() int {
	return 1 + len(m.recentEntries)
}

func (m *App) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < m.menuLen()-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Open):
		return m, m.openPrompt(promptAuto)
	case key.Matches(msg, m.keys.Enter):
		if m.menuCursor == 0 {
			return m, m.openPrompt(promptAuto)
		}
		ref := m.recentEntries[m.menuCursor-1].URI
		return m, func() tea.Msg { return SingleImagePickedMsg{Ref: &ref} }
	case key.Matches(msg, m.keys.ClearRecent):
		if m.recentStore != nil {
			m.menuCursor = 0
			return m, clearRecent(m.recentStore)
		}
	}
	return m, nil
}

func (m *App) handleBatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.OpenMany), key.Matches(msg, m.keys.Open):
		return m, m.openPrompt(promptMulti)
	case key.Matches(msg, m.keys.Copy):
		list := make([]string, 0, len(m.state.Selection.Multi))
		for _, ref := range m.state.Selection.Multi {
			list = append(list, string(ref))
		}
		if err := writeClipboard(strings.Join(list, "\n")); err != nil {
			return m, m.showToast("Could not copy: "+err.Error(), true)
		}
		return m, m.showToast(fmt.Sprintf("Copied %d paths", len(list)), false)
	case key.Matches(msg, m.keys.Collage):
		if len(m.state.Selection.Multi) < 2 {
			return m, m.showToast("A collage needs at least two images", true)
		}
		m.state.OpenScreen(nav.Collage)
		return m, nil
	}
	return m.handleFormatKey(msg)
}

func (m *App) handleToolKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Open) && m.state.Screen() != nav.Collage {
		return m, m.openPrompt(promptSingle)
	}
	return m.handleFormatKey(msg)
}

// handleFormatKey covers keys shared by every non-main screen.
func (m *App) handleFormatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state.Back()
		return m, nil
	case key.Matches(msg, m.keys.Left):
		err = moveFormatGroup(m.selector, -1)
	case key.Matches(msg, m.keys.Right):
		err = moveFormatGroup(m.selector, 1)
	case key.Matches(msg, m.keys.Tab):
		err = cycleSubformat(m.selector)
	case key.Matches(msg, m.keys.SaveFormat):
		if err := saveFormat(m.selector.Value().ID()); err != nil {
			return m, m.showToast("Could not save format: "+err.Error(), true)
		}
		return m, m.showToast("Default format: "+m.selector.Value().Title, false)
	default:
		return m, nil
	}
	if appErrors.IsCode(err, appErrors.CodeFormatLocked) {
		return m, m.showToast("Format is locked while overwriting files", true)
	}
	if err != nil {
		return m, m.showToast("Could not change format: "+err.Error(), true)
	}
	return m, nil
}
