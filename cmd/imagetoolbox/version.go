package main

import (
	"fmt"
	"io"
	"runtime"
	rtdebug "runtime/debug"
	"strings"
)

// Build metadata, set with -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

// versionLine is the first line of --version output.
func versionLine() string {
	var b strings.Builder
	b.WriteString("imagetoolbox version " + Version)
	if Build != "" && Build != "unknown" {
		b.WriteString(" (build: " + Build + ")")
	}
	if BuildTime != "" {
		b.WriteString(" [" + BuildTime + "]")
	}
	return b.String()
}

// vcsRevision returns the short commit recorded by the Go toolchain, if any.
func vcsRevision() string {
	info, ok := rtdebug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
			return setting.Value[:7]
		}
	}
	return ""
}

func printVersion(w io.Writer) {
	lines := []string{
		versionLine(),
		"Go version: " + runtime.Version(),
		fmt.Sprintf("OS/Arch: %s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if Version == "dev" {
		if rev := vcsRevision(); rev != "" {
			lines = append(lines, "Commit: "+rev)
		}
		lines = append(lines, "Update checks are disabled for development builds.")
	}
	_, _ = fmt.Fprintln(w, strings.Join(lines, "\n"))
}
