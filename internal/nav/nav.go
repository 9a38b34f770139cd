// Package nav models the screen back stack.
package nav

// Screen is an opaque destination token.
type Screen string

const (
	Main             Screen = "main"
	SingleResize     Screen = "single_resize"
	BatchResize      Screen = "batch_resize"
	Crop             Screen = "crop"
	Filter           Screen = "filter"
	FormatConversion Screen = "format_conversion"
	Collage          Screen = "collage"
	Cutting          Screen = "cutting"
)

var titles = map[Screen]string{
	Main:             "Image Toolbox",
	SingleResize:     "Single Edit",
	BatchResize:      "Batch Resize",
	Crop:             "Crop",
	Filter:           "Filters",
	FormatConversion: "Format Conversion",
	Collage:          "Collage Maker",
	Cutting:          "Image Cutting",
}

// Title is the human-readable screen name.
func (s Screen) Title() string {
	if t, ok := titles[s]; ok {
		return t
	}
	return string(s)
}

// SingleImageTools lists the screens offered once a single image is picked.
func SingleImageTools() []Screen {
	return []Screen{SingleResize, Crop, Filter, FormatConversion, Cutting}
}

// Stack is a back stack whose last entry is the active screen. The root
// entry is never popped.
type Stack struct {
	entries []Screen
}

// NewStack creates a stack holding only root.
func NewStack(root Screen) *Stack {
	return &Stack{entries: []Screen{root}}
}

// Top returns the active screen.
func (s *Stack) Top() Screen {
	return s.entries[len(s.entries)-1]
}

// Entries returns a copy of the stack, bottom first.
func (s *Stack) Entries() []Screen {
	out := make([]Screen, len(s.entries))
	copy(out, s.entries)
	return out
}

// Navigate pushes screen.
func (s *Stack) Navigate(screen Screen) {
	s.entries = append(s.entries, screen)
}

// Pop removes the active screen unless it is the root.
func (s *Stack) Pop() bool {
	if len(s.entries) <= 1 {
		return false
	}
	s.entries = s.entries[:len(s.entries)-1]
	return true
}

// PopUpTo removes entries above the topmost occurrence of screen, leaving
// screen active. The stack is untouched when screen is absent.
func (s *Stack) PopUpTo(screen Screen) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i] == screen {
			s.entries = s.entries[:i+1]
			return true
		}
	}
	return false
}
