package ui

import (
	"context"
	"time"

	"imagetoolbox/internal/nav"
	"imagetoolbox/internal/recent"
	"imagetoolbox/internal/session"
	"imagetoolbox/internal/update"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	recentTimeout  = 2 * time.Second
	toastDuration  = 4 * time.Second
	toastTickEvery = 250 * time.Millisecond
)

// SingleImagePickedMsg replaces the single-image selection. A nil Ref clears it.
type SingleImagePickedMsg struct {
	Ref *session.URI
}

// MultiImagesPickedMsg replaces the multi-image selection. A nil Refs clears it.
type MultiImagesPickedMsg struct {
	Refs []session.URI
}

// ScreenSelectedMsg is sent when a tool is chosen from the select dialog.
type ScreenSelectedMsg struct {
	Screen nav.Screen
}

// SelectDismissedMsg is sent when the select dialog closes without a choice.
type SelectDismissedMsg struct{}

// UpdateDismissedMsg is sent when the user declines the update.
type UpdateDismissedMsg struct{}

// UpdateCopiedMsg reports the outcome of copying the release URL.
type UpdateCopiedMsg struct {
	URL string
	Err error
}

type updateCheckedMsg struct {
	info *update.UpdateInfo
	err  error
}

type recentLoadedMsg struct {
	entries []recent.Entry
	err     error
}

type recentRecordedMsg struct {
	err error
}

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickEvery, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}

// UpdateChecker is satisfied by *update.Checker.
type UpdateChecker interface {
	Check(ctx context.Context, currentVersion string) (*update.UpdateInfo, error)
}

// RecentStore is satisfied by *recent.Store.
type RecentStore interface {
	Add(ctx context.Context, refs ...session.URI) error
	List(ctx context.Context, limit int) ([]recent.Entry, error)
	Clear(ctx context.Context) error
}

func runUpdateCheck(checker UpdateChecker, version string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		info, err := checker.Check(ctx, version)
		return updateCheckedMsg{info: info, err: err}
	}
}

func loadRecent(store RecentStore, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recentTimeout)
		defer cancel()
		entries, err := store.List(ctx, limit)
		return recentLoadedMsg{entries: entries, err: err}
	}
}

// recordRecent stores refs and then reloads the list.
func recordRecent(store RecentStore, limit int, refs []session.URI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recentTimeout)
		defer cancel()
		if err := store.Add(ctx, refs...); err != nil {
			return recentRecordedMsg{err: err}
		}
		entries, err := store.List(ctx, limit)
		return recentLoadedMsg{entries: entries, err: err}
	}
}

func clearRecent(store RecentStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recentTimeout)
		defer cancel()
		if err := store.Clear(ctx); err != nil {
			return recentRecordedMsg{err: err}
		}
		return recentLoadedMsg{}
	}
}
