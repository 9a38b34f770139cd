package ui

import (
	"strings"
	"testing"
	"time"

	"imagetoolbox/internal/update"
)

func TestReleaseMarkdown(t *testing.T) {
	info := &update.UpdateInfo{
		LatestTag:    "3.0.0",
		ReleaseURL:   "https://example.com/r/3.0.0",
		ReleaseNotes: `<h2>What's new</h2><ul><li>Jxl &amp; Avif</li><li><a href="https://example.com/pr/42">Batch</a> fixes</li></ul><script>alert(1)</script>`,
		PublishedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	md := releaseMarkdown(info)

	for _, want := range []string{"# 3.0.0", "_Published 2026-03-01_", "## What's new", "- Jxl & Avif", "[Batch](https://example.com/pr/42) fixes", "https://example.com/r/3.0.0"} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "<") || strings.Contains(md, "alert") {
		t.Errorf("expected markup to be stripped:\n%s", md)
	}
}

func TestReleaseMarkdownKeepsBlocksAndLiterals(t *testing.T) {
	info := &update.UpdateInfo{
		LatestTag:    "3.0.1",
		ReleaseNotes: "<pre><code>a &lt; b\n  indented</code></pre><p>Use _x_ here</p>",
	}
	md := releaseMarkdown(info)

	if !strings.Contains(md, "a < b\n  indented\n```") {
		t.Errorf("expected fenced code block:\n%s", md)
	}
	if strings.Contains(md, "indentedUse") {
		t.Errorf("expected code block to stay separate from the paragraph:\n%s", md)
	}
	if !strings.Contains(md, `\_x\_`) {
		t.Errorf("expected literal underscores to be escaped:\n%s", md)
	}
}

func TestReleaseMarkdownWithoutNotes(t *testing.T) {
	md := releaseMarkdown(&update.UpdateInfo{LatestTag: "3.0.0"})
	if !strings.Contains(md, "No release notes.") {
		t.Fatalf("expected placeholder:\n%s", md)
	}
}

func TestUpdateDialogTitle(t *testing.T) {
	plain := func(s string) string { return s }
	d := NewUpdateDialog(&update.UpdateInfo{LatestTag: "beta-7", CurrentVersion: "2.5.0"}, DefaultKeyMap(), 80, plain)
	if !strings.Contains(d.View(), "differs from this build") {
		t.Fatal("expected neutral wording when the tag is not newer")
	}

	d = NewUpdateDialog(&update.UpdateInfo{LatestTag: "2.6.0", Newer: true}, DefaultKeyMap(), 80, plain)
	view := d.View()
	if !strings.Contains(view, "New version 2.6.0") || !strings.Contains(view, "an unknown build") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	d = NewUpdateDialog(&update.UpdateInfo{LatestTag: "2.4.0", CurrentVersion: "2.5"}, DefaultKeyMap(), 80, plain)
	view = d.View()
	if !strings.Contains(view, "older than this build") || !strings.Contains(view, "v2.5.0") {
		t.Fatalf("unexpected view for an older release:\n%s", view)
	}
}

func TestDisplayVersion(t *testing.T) {
	tests := map[string]string{
		"":         "an unknown build",
		"2.5":      "v2.5.0",
		"v3.0-rc1": "v3.0.0-rc1",
		"nightly":  "nightly",
	}
	for in, want := range tests {
		if got := displayVersion(in); got != want {
			t.Errorf("displayVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
