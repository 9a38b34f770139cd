package ui

import (
	"fmt"
	"strings"

	"imagetoolbox/internal/update"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/microcosm-cc/bluemonday"
)

const (
	updateDialogMaxWidth  = 72
	updateDialogNotesRows = 10
)

// UpdateDialog announces a release whose tag differs from the running build.
type UpdateDialog struct {
	info     *update.UpdateInfo
	notes    viewport.Model
	keys     KeyMap
	copyKey  key.Binding
	laterKey key.Binding
}

// NewUpdateDialog renders info's release notes with render into a
// scrollable viewport.
func NewUpdateDialog(info *update.UpdateInfo, keys KeyMap, width int, render func(string) string) *UpdateDialog {
	w := width - 8
	if w > updateDialogMaxWidth {
		w = updateDialogMaxWidth
	}
	if w < 30 {
		w = 30
	}
	vp := viewport.New(w, updateDialogNotesRows)
	vp.SetContent(render(releaseMarkdown(info)))
	return &UpdateDialog{
		info:     info,
		notes:    vp,
		keys:     keys,
		copyKey:  key.NewBinding(key.WithKeys("c", "enter")),
		laterKey: key.NewBinding(key.WithKeys("esc", "n")),
	}
}

// Update handles keys while the dialog has focus.
func (d *UpdateDialog) Update(msg tea.Msg) (*UpdateDialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch {
	case key.Matches(keyMsg, d.copyKey):
		url := d.info.ReleaseURL
		return d, func() tea.Msg {
			return UpdateCopiedMsg{URL: url, Err: writeClipboard(url)}
		}
	case key.Matches(keyMsg, d.laterKey):
		return d, func() tea.Msg { return UpdateDismissedMsg{} }
	case key.Matches(keyMsg, d.keys.Up):
		d.notes.LineUp(1)
	case key.Matches(keyMsg, d.keys.Down):
		d.notes.LineDown(1)
	}
	return d, nil
}

// View renders the dialog box.
func (d *UpdateDialog) View() string {
	lines := []string{
		styleDialogTitle.Render(d.title()),
		styleMutedText.Render("You are running " + displayVersion(d.info.CurrentVersion)),
		"",
		d.notes.View(),
		"",
		styleMutedText.Render("c copy release link • ↑↓ scroll • esc not now"),
	}
	return styleUpdateDialog.Render(strings.Join(lines, "\n"))
}

func (d *UpdateDialog) title() string {
	tag := d.info.LatestTag
	if d.info.Newer {
		return fmt.Sprintf("⬆ New version %s is available", tag)
	}
	current, errCur := update.ParseVersion(d.info.CurrentVersion)
	latest, errLat := update.ParseVersion(tag)
	if errCur == nil && errLat == nil && latest.LessThan(current) {
		return fmt.Sprintf("⬇ Release %s is older than this build", tag)
	}
	return fmt.Sprintf("⬆ Release %s differs from this build", tag)
}

// displayVersion normalises semver builds ("v2.5" reads as "v2.5.0") and
// shows anything else as given.
func displayVersion(v string) string {
	if strings.TrimSpace(v) == "" {
		return "an unknown build"
	}
	if parsed, err := update.ParseVersion(v); err == nil {
		return "v" + parsed.String()
	}
	return v
}

var notesPolicy = bluemonday.UGCPolicy()

// releaseMarkdown turns the feed entry into markdown. Feed content is HTML;
// it is sanitised and then converted so links, code blocks and lists keep
// their structure.
func releaseMarkdown(info *update.UpdateInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", info.LatestTag)
	if !info.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "_Published %s_\n\n", info.PublishedAt.Format("2006-01-02"))
	}

	notes := ""
	if raw := strings.TrimSpace(info.ReleaseNotes); raw != "" {
		converted, err := htmltomarkdown.ConvertString(notesPolicy.Sanitize(raw))
		if err != nil {
			logUpdate("convert release notes: %v", err)
			converted = notesPolicy.Sanitize(raw)
		}
		notes = strings.TrimSpace(converted)
	}
	if notes == "" {
		notes = "No release notes."
	}
	b.WriteString(notes)
	if info.ReleaseURL != "" {
		fmt.Fprintf(&b, "\n\n%s\n", info.ReleaseURL)
	}
	return b.String()
}
