package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"imagetoolbox/internal/format"
	"imagetoolbox/internal/recent"
	"imagetoolbox/internal/session"
	"imagetoolbox/internal/update"

	tea "github.com/charmbracelet/bubbletea"
)

type stubChecker struct {
	mu    sync.Mutex
	info  *update.UpdateInfo
	err   error
	calls int
}

func (s *stubChecker) Check(_ context.Context, current string) (*update.UpdateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	info := *s.info
	info.CurrentVersion = current
	return &info, nil
}

type stubRecent struct {
	entries []recent.Entry
	addErr  error
	listErr error
	added   [][]session.URI
	cleared bool
}

func (s *stubRecent) Add(_ context.Context, refs ...session.URI) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, refs)
	for i := len(refs) - 1; i >= 0; i-- {
		s.entries = append([]recent.Entry{{URI: refs[i], PickedAt: time.Now(), PickCount: 1}}, s.entries...)
	}
	return nil
}

func (s *stubRecent) List(_ context.Context, limit int) ([]recent.Entry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if limit > 0 && len(s.entries) > limit {
		return append([]recent.Entry(nil), s.entries[:limit]...), nil
	}
	return append([]recent.Entry(nil), s.entries...), nil
}

func (s *stubRecent) Clear(context.Context) error {
	s.cleared = true
	s.entries = nil
	return nil
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.Version == "" {
		cfg.Version = "2.5.0"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "plain"
	}
	if cfg.DefaultFormat == (format.Format{}) {
		cfg.DefaultFormat = format.PNGLossless
	}
	return NewApp(cfg)
}

// stubClipboard replaces the clipboard writer for the duration of the test.
func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var written []string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		written = append(written, text)
		return err
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &written
}

func send(t *testing.T, m *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

// sendAndFollow delivers msg, then feeds the message produced by the
// resulting command back into the model.
func sendAndFollow(t *testing.T, m *App, msg tea.Msg) {
	t.Helper()
	cmd := send(t, m, msg)
	if cmd == nil {
		t.Fatalf("expected a command after %T", msg)
	}
	send(t, m, cmd())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func uriPtr(s string) *session.URI {
	u := session.URI(s)
	return &u
}
