package format

import "fmt"

// Options control whether and how the selector accepts changes.
type Options struct {
	// OverwriteFiles locks the format: output must match the source file.
	OverwriteFiles bool
	ForceEnabled   bool
	Legacy         bool
}

// Selector tracks the chosen format within a set of groups.
type Selector struct {
	entries []Group
	value   Format
	opts    Options
}

// NewSelector builds a selector over entries (the full catalogue when nil)
// and normalises value against them.
func NewSelector(entries []Group, value Format, opts Options) *Selector {
	if entries == nil {
		entries = Groups()
	}
	if opts.Legacy {
		entries = FilterLegacy(entries)
	}
	s := &Selector{entries: entries, value: value, opts: opts}
	s.normalize()
	return s
}

// normalize replaces a value that is not offered with PNG Lossless, or the
// first offered format when PNG Lossless is missing too.
func (s *Selector) normalize() {
	all := Flatten(s.entries)
	if len(all) == 0 || contains(all, s.value) {
		return
	}
	if contains(all, PNGLossless) {
		s.value = PNGLossless
		return
	}
	s.value = all[0]
}

// Enabled reports whether changes are accepted.
func (s *Selector) Enabled() bool {
	return !s.opts.OverwriteFiles || s.opts.ForceEnabled
}

// Value returns the selected format.
func (s *Selector) Value() Format {
	return s.value
}

// Groups returns the offered groups.
func (s *Selector) Groups() []Group {
	return s.entries
}

// ActiveGroup returns the index of the group holding the value, or -1.
func (s *Selector) ActiveGroup() int {
	for i, g := range s.entries {
		if contains(g.Formats, s.value) {
			return i
		}
	}
	return -1
}

// Subformats returns the variants of the active group.
func (s *Selector) Subformats() []Format {
	if i := s.ActiveGroup(); i >= 0 {
		return s.entries[i].Formats
	}
	return nil
}

// SelectGroup picks the first format of group i.
func (s *Selector) SelectGroup(i int) error {
	if !s.Enabled() {
		return ErrFormatLocked
	}
	if i < 0 || i >= len(s.entries) || len(s.entries[i].Formats) == 0 {
		return fmt.Errorf("select group: index %d out of range", i)
	}
	s.value = s.entries[i].Formats[0]
	return nil
}

// SelectFormat picks f, which must be offered.
func (s *Selector) SelectFormat(f Format) error {
	if !s.Enabled() {
		return ErrFormatLocked
	}
	if !contains(Flatten(s.entries), f) {
		return fmt.Errorf("select format: %s is not offered", f.Title)
	}
	s.value = f
	return nil
}
