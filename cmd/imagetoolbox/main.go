package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"imagetoolbox/internal/config"
	"imagetoolbox/internal/debug"
	"imagetoolbox/internal/format"
	"imagetoolbox/internal/recent"
	"imagetoolbox/internal/ui"
	"imagetoolbox/internal/update"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const recentOpenTimeout = 3 * time.Second

var logStartup = debug.Scope("startup")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole program. It returns the process exit code so deferred
// cleanup always happens before exit.
func run(args []string, stdout, stderr io.Writer) int {
	if err := config.Initialize(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error initializing config: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("imagetoolbox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	versionFlag := fs.Bool("version", false, "Print version information and exit")
	debugFlag := fs.Bool("debug", false, "Write a debug log to ~/.imagetoolbox/debug.log")
	outputFormatFlag := fs.String("output-format", config.GetString(config.KeyOutputFormat), "Release notes markdown style (dark, light, plain)")
	skipUpdateCheckFlag := fs.Bool("skip-update-check", config.GetBool(config.KeySkipUpdateCheck), "Do not query the release feed on start (or set IT_SKIP_UPDATE_CHECK=true)")
	noColorFlag := fs.Bool("no-color", config.GetBool(config.KeyNoColor), "Disable colors")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		printVersion(stdout)
		return 0
	}

	if err := debug.Init(*debugFlag); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: debug log unavailable: %v\n", err)
	}
	defer debug.Close()
	reportDebugLog(stderr)

	visited := map[string]struct{}{}
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	runtime := computeRuntimeOptions(runtimeFlags{
		outputFormat:    outputFormatFlag,
		skipUpdateCheck: skipUpdateCheckFlag,
		noColor:         noColorFlag,
	}, visited)

	if runtime.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	store := openRecent(runtime.recentPath)
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logStartup("close recent store: %v", err)
			}
		}()
	}

	appCfg := buildAppConfig(runtime, Version, store)
	start := time.Now()
	app, err := runProgram(ui.NewApp(appCfg), func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	printExitSummary(stdout, ExitSummary{
		Version:   Version,
		Session:   app.Summary(),
		StartTime: start,
	})
	return 0
}

// reportDebugLog tells the user where --debug output goes.
func reportDebugLog(w io.Writer) {
	if !debug.Enabled() {
		return
	}
	debug.Log("imagetoolbox ", Version, " starting")
	if path, err := debug.GetLogPath(); err == nil {
		_, _ = fmt.Fprintf(w, "Debug log: %s\n", path)
	}
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

// runProgram runs the TUI and returns the final model.
func runProgram(app *ui.App, factory programFactory) (*ui.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app is nil")
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	if finalApp, ok := final.(*ui.App); ok && finalApp != nil {
		return finalApp, nil
	}
	return app, nil
}

type runtimeFlags struct {
	outputFormat    *string
	skipUpdateCheck *bool
	noColor         *bool
}

type runtimeOptions struct {
	outputFormat    string
	skipUpdateCheck bool
	noColor         bool
	feedURL         string
	updateTimeout   time.Duration
	recentPath      string
	recentLimit     int
	formatOptions   format.Options
	defaultFormat   string
}

func computeRuntimeOptions(flags runtimeFlags, visited map[string]struct{}) runtimeOptions {
	outputFormat := strings.TrimSpace(config.GetString(config.KeyOutputFormat))
	if flagWasExplicitlySet("output-format", visited) {
		outputFormat = strings.TrimSpace(*flags.outputFormat)
	}

	skipUpdateCheck := config.GetBool(config.KeySkipUpdateCheck)
	if flagWasExplicitlySet("skip-update-check", visited) {
		skipUpdateCheck = *flags.skipUpdateCheck
	}

	noColor := config.GetBool(config.KeyNoColor)
	if flagWasExplicitlySet("no-color", visited) {
		noColor = *flags.noColor
	}

	return runtimeOptions{
		outputFormat:    outputFormat,
		skipUpdateCheck: skipUpdateCheck,
		noColor:         noColor,
		feedURL:         strings.TrimSpace(config.GetString(config.KeyUpdateFeedURL)),
		updateTimeout:   config.UpdateTimeout(),
		recentPath:      strings.TrimSpace(config.GetString(config.KeyRecentPath)),
		recentLimit:     config.GetInt(config.KeyRecentLimit),
		formatOptions: format.Options{
			OverwriteFiles: config.GetBool(config.KeyOverwriteFiles),
			Legacy:         config.GetBool(config.KeyFormatLegacy),
		},
		defaultFormat: strings.TrimSpace(config.GetString(config.KeyFormatDefault)),
	}
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	_, ok := visited[name]
	return ok
}

// buildAppConfig assembles the UI configuration. Development builds carry no
// release tag, so they never query the feed.
func buildAppConfig(runtime runtimeOptions, version string, store *recent.Store) ui.Config {
	cfg := ui.Config{
		Version:       version,
		UpdateTimeout: runtime.updateTimeout,
		RecentLimit:   runtime.recentLimit,
		FormatOptions: runtime.formatOptions,
		OutputFormat:  runtime.outputFormat,
	}
	if !runtime.skipUpdateCheck && version != "dev" && strings.TrimSpace(version) != "" {
		checker := update.NewChecker(
			update.WithFeedURL(runtime.feedURL),
			update.WithTimeout(runtime.updateTimeout),
		)
		logStartup("checking %s for releases", checker.FeedURL())
		cfg.Checker = checker
	}
	if store != nil {
		cfg.Recent = store
	}
	if f, ok := format.Lookup(runtime.defaultFormat); ok {
		cfg.DefaultFormat = f
	} else {
		if runtime.defaultFormat != "" {
			logStartup("unknown default format %q", runtime.defaultFormat)
		}
		cfg.DefaultFormat = format.PNGLossless
	}
	return cfg
}

// openRecent opens the recent-images store. Failures disable the feature.
func openRecent(path string) *recent.Store {
	if path == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), recentOpenTimeout)
	defer cancel()
	store, err := recent.Open(ctx, path)
	if err != nil {
		logStartup("recent images disabled: %v", err)
		return nil
	}
	return store
}
