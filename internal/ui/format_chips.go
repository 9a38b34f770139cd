package ui

import (
	"strings"

	"imagetoolbox/internal/format"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// moveFormatGroup selects the group delta steps away from the active one.
func moveFormatGroup(sel *format.Selector, delta int) error {
	groups := sel.Groups()
	if len(groups) == 0 {
		return nil
	}
	i := sel.ActiveGroup()
	if i < 0 {
		i = 0
	} else {
		i = (i + delta + len(groups)) % len(groups)
	}
	return sel.SelectGroup(i)
}

// cycleSubformat selects the next variant inside the active group.
func cycleSubformat(sel *format.Selector) error {
	subs := sel.Subformats()
	if len(subs) < 2 {
		return nil
	}
	current := sel.Value()
	for i, f := range subs {
		if f == current {
			return sel.SelectFormat(subs[(i+1)%len(subs)])
		}
	}
	return sel.SelectFormat(subs[0])
}

// renderFormatSelector draws the group chips and, when the active group has
// more than one variant, the compression chips below them.
func renderFormatSelector(sel *format.Selector, width int) string {
	var groupChips []string
	active := sel.ActiveGroup()
	for i, g := range sel.Groups() {
		style := styleChip
		if i == active {
			style = styleChipActive
		}
		groupChips = append(groupChips, style.Render(g.Title))
	}

	title := "Image format"
	if !sel.Enabled() {
		title += " (locked: overwriting files)"
	}
	lines := []string{
		styleSectionTitle.Render(title),
		wrapChips(groupChips, width),
	}

	if subs := sel.Subformats(); len(subs) > 1 {
		var subChips []string
		for _, f := range subs {
			style := styleChip
			if f == sel.Value() {
				style = styleChipFocused
			}
			subChips = append(subChips, style.Render(f.Title))
		}
		lines = append(lines, styleMutedText.Render("Compression type"), wrapChips(subChips, width))
	}
	return strings.Join(lines, "\n")
}

// wrapChips flows chips into rows no wider than width.
func wrapChips(chips []string, width int) string {
	if width <= 0 {
		return strings.Join(chips, " ")
	}
	var rows []string
	var row []string
	rowWidth := 0
	for _, chip := range chips {
		w := lipgloss.Width(chip)
		if rowWidth > 0 && rowWidth+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
		if rowWidth > 0 {
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

// formatSummary is a one-line description used in the exit summary.
func formatSummary(f format.Format, width int) string {
	kind := "lossy"
	if f.Lossless {
		kind = "lossless"
	}
	return wordwrap.String(f.Title+" ("+kind+", ."+f.Extension+")", width)
}
