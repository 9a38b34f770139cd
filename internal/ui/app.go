package ui

import (
	"strings"
	"time"

	"imagetoolbox/internal/config"
	"imagetoolbox/internal/debug"
	"imagetoolbox/internal/format"
	"imagetoolbox/internal/recent"
	"imagetoolbox/internal/session"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultUpdateTimeout = 5 * time.Second

var (
	// writeClipboard and saveFormat are swapped out in tests.
	writeClipboard = clipboard.WriteAll
	saveFormat     = config.SaveDefaultFormat

	logUpdate = debug.Scope("update")
	logRecent = debug.Scope("recent")
)

// Config configures the UI application.
type Config struct {
	Version string
	// Checker is nil when update checks are disabled.
	Checker       UpdateChecker
	UpdateTimeout time.Duration

	Recent      RecentStore
	RecentLimit int

	FormatOptions format.Options
	DefaultFormat format.Format
	OutputFormat  string
}

// App is the root Bubble Tea model. It is the only writer of session state;
// background commands report back through messages handled in Update.
type App struct {
	state    *session.State
	selector *format.Selector
	keys     KeyMap

	version        string
	checker        UpdateChecker
	updateTimeout  time.Duration
	updateInFlight bool
	updateSpinner  spinner.Model

	recentStore   RecentStore
	recentLimit   int
	recentEntries []recent.Entry
	picked        int

	menuCursor int

	prompt     textinput.Model
	promptMode promptMode
	prompting  bool

	selectDialog *SelectDialog
	updateDialog *UpdateDialog

	toastText  string
	toastError bool
	toastStart time.Time

	outputFormat string
	width        int
	height       int
}

type promptMode int

const (
	// promptAuto picks a single image for one path and a batch for several.
	promptAuto promptMode = iota
	promptSingle
	promptMulti
)

// NewApp builds the root model. State starts on the main screen.
func NewApp(cfg Config) *App {
	ti := textinput.New()
	ti.Placeholder = "path/to/image.png, another.jpg"
	ti.Prompt = "› "
	ti.CharLimit = 4096

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styleHeaderMuted

	timeout := cfg.UpdateTimeout
	if timeout <= 0 {
		timeout = defaultUpdateTimeout
	}
	limit := cfg.RecentLimit
	if limit <= 0 {
		limit = recent.DefaultLimit
	}

	return &App{
		state:         session.New(),
		selector:      format.NewSelector(nil, cfg.DefaultFormat, cfg.FormatOptions),
		keys:          DefaultKeyMap(),
		version:       cfg.Version,
		checker:       cfg.Checker,
		updateTimeout: timeout,
		updateSpinner: sp,
		recentStore:   cfg.Recent,
		recentLimit:   limit,
		prompt:        ti,
		outputFormat:  cfg.OutputFormat,
		width:         80,
		height:        24,
	}
}

// Init starts the update check and loads the recent list.
func (m *App) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkForUpdate()}
	if m.recentStore != nil {
		cmds = append(cmds, loadRecent(m.recentStore, m.recentLimit))
	}
	return tea.Batch(cmds...)
}

// checkForUpdate starts a background check unless one is running, checks
// are disabled, or the user has declined updates this session.
func (m *App) checkForUpdate() tea.Cmd {
	if m.checker == nil || m.updateInFlight || !m.state.CanCheckForUpdate() {
		return nil
	}
	m.updateInFlight = true
	return tea.Batch(
		runUpdateCheck(m.checker, m.version, m.updateTimeout),
		m.updateSpinner.Tick,
	)
}

// State exposes the session for the exit summary.
func (m *App) State() *session.State {
	return m.state
}

// Summary describes the session once the program exits.
type Summary struct {
	Picked    int
	Screen    string
	Format    string
	LatestTag string
}

// Summary returns what happened during the session.
func (m *App) Summary() Summary {
	return Summary{
		Picked:    m.picked,
		Screen:    m.state.Screen().Title(),
		Format:    formatSummary(m.selector.Value(), 60),
		LatestTag: m.state.Tag,
	}
}

func (m *App) showToast(text string, isError bool) tea.Cmd {
	first := m.toastText == ""
	m.toastText = strings.TrimSpace(text)
	m.toastError = isError
	m.toastStart = time.Now()
	if !first {
		// A tick loop is already running.
		return nil
	}
	return scheduleToastTick()
}
