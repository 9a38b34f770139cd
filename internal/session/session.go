// Package session holds the main screen's selection and dialog state.
//
// State is not safe for concurrent use. It is owned by the UI root model and
// mutated only from its Update loop; background work reports back through
// messages that end in one of the methods below.
package session

import (
	"strings"

	"imagetoolbox/internal/nav"
	"imagetoolbox/internal/update"
)

// URI references an image resource. It is never resolved or validated here.
type URI string

// ParseURIs splits user input into references. Fields are separated by
// newlines or commas; order is kept and duplicates are not removed.
func ParseURIs(input string) []URI {
	var refs []URI
	for _, line := range strings.FieldsFunc(input, func(r rune) bool { return r == '\n' || r == ',' }) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			refs = append(refs, URI(trimmed))
		}
	}
	return refs
}

// Selection is replaced wholesale on every change. Nil means absent.
type Selection struct {
	Single *URI
	Multi  []URI
}

// Flags are presentation toggles.
type Flags struct {
	ShowSelectDialog bool
	ShowUpdateDialog bool
	CancelledUpdate  bool
}

// State is the selection coordinator plus update-prompt bookkeeping.
type State struct {
	Selection Selection
	Flags     Flags
	// Tag is the latest version tag seen in the release feed.
	Tag string

	nav *nav.Stack
}

// New creates state rooted at the main screen.
func New() *State {
	return &State{nav: nav.NewStack(nav.Main)}
}

// Screen returns the active screen.
func (s *State) Screen() nav.Screen {
	return s.nav.Top()
}

// BackStack returns a copy of the navigation stack, bottom first.
func (s *State) BackStack() []nav.Screen {
	return s.nav.Entries()
}

// SetSingleImage replaces the single-image reference. Picking an image on
// the main screen asks for the selection dialog.
func (s *State) SetSingleImage(ref *URI) {
	if ref != nil {
		v := *ref
		ref = &v
	}
	s.Selection.Single = ref
	if ref != nil && s.nav.Top() == nav.Main {
		s.Flags.ShowSelectDialog = true
	}
}

// HideSelectDialog dismisses the selection dialog.
func (s *State) HideSelectDialog() {
	s.Flags.ShowSelectDialog = false
}

// SetMultiImage replaces the multi-image list. Any non-nil list, empty
// included, routes to the batch screen with main directly beneath it.
func (s *State) SetMultiImage(refs []URI) {
	if refs != nil {
		refs = append(make([]URI, 0, len(refs)), refs...)
	}
	s.Selection.Multi = refs
	if refs != nil && s.nav.Top() != nav.BatchResize {
		s.nav.PopUpTo(nav.Main)
		s.nav.Navigate(nav.BatchResize)
	}
}

// OpenScreen pushes screen.
func (s *State) OpenScreen(screen nav.Screen) {
	s.nav.Navigate(screen)
}

// Back pops the active screen. The main screen is never popped.
func (s *State) Back() bool {
	return s.nav.Pop()
}

// CanCheckForUpdate reports whether an update check may start.
func (s *State) CanCheckForUpdate() bool {
	return !s.Flags.CancelledUpdate
}

// ApplyUpdate records a finished check and raises the prompt when the feed
// differs from the running build. It reports whether the prompt was raised.
func (s *State) ApplyUpdate(info *update.UpdateInfo) bool {
	if info == nil || s.Flags.CancelledUpdate {
		return false
	}
	s.Tag = info.LatestTag
	if !info.UpdateAvailable {
		return false
	}
	s.Flags.ShowUpdateDialog = true
	return true
}

// CancelUpdate suppresses update prompts for the rest of the session.
func (s *State) CancelUpdate() {
	s.Flags.CancelledUpdate = true
	s.Flags.ShowUpdateDialog = false
}
