package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"imagetoolbox/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("99")
	dimColor     = lipgloss.Color("240")
	textColor    = lipgloss.Color("252")
	accentColor  = lipgloss.Color("#50FA7B")
)

// ExitSummary holds data for the summary printed after the TUI exits.
type ExitSummary struct {
	Version   string
	Session   ui.Summary
	StartTime time.Time
}

// printExitSummary prints a formatted exit summary to the writer.
func printExitSummary(w io.Writer, summary ExitSummary) {
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	versionStyle := lipgloss.NewStyle().Foreground(dimColor)
	statsStyle := lipgloss.NewStyle().Foreground(textColor)
	tagStyle := lipgloss.NewStyle().Foreground(accentColor)

	versionStr := ""
	if summary.Version != "" {
		versionStr = versionStyle.Render(" " + summary.Version)
	}
	sessionStr := ""
	if !summary.StartTime.IsZero() {
		sessionStr = versionStyle.Render(fmt.Sprintf(" • %s session", formatDuration(time.Since(summary.StartTime))))
	}

	parts := []string{pluralize(summary.Session.Picked, "image", "images") + " picked"}
	if summary.Session.Screen != "" {
		parts = append(parts, "last screen "+summary.Session.Screen)
	}
	if summary.Session.Format != "" {
		parts = append(parts, "format "+strings.TrimSpace(summary.Session.Format))
	}

	_, _ = fmt.Fprintln(w, appStyle.Render("Image Toolbox")+versionStr+sessionStr)
	_, _ = fmt.Fprintln(w, statsStyle.Render(strings.Join(parts, ", ")))
	if tag := summary.Session.LatestTag; tag != "" && strings.TrimSpace(tag) != strings.TrimSpace(summary.Version) {
		_, _ = fmt.Fprintln(w, "Latest release: "+tagStyle.Render(tag))
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
