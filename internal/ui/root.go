// Package ui is the full-screen interactive shell.
//
// Commands typed at the prompt run through the interpreter on the update
// loop, and their output is appended to a scrollback viewport.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/tasklist/internal/interp"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/render"
	"github.com/dori/tasklist/internal/ui/theme"
)

// Lines reserved around the scrollback: header, input, status, help
const chromeHeight = 4

// Options configures the shell
type Options struct {
	Interp   *interp.Interpreter
	Renderer *render.Renderer
	Theme    string
	Plain    bool
	Logger   *slog.Logger
}

// Model is the shell model
type Model struct {
	ctx      context.Context
	interp   *interp.Interpreter
	renderer *render.Renderer
	logger   *slog.Logger

	keys     KeyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int

	themeName string
	plain     bool
	styles    theme.Styles

	transcript  *strings.Builder
	history     []string
	historyPos  int
	helpVisible bool
	quitting    bool

	statusMsg string
	errorMsg  string
}

// New creates the shell model
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Prompt = interp.Prompt
	ti.Placeholder = "type a command, or help"
	ti.Focus()

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctx:        ctx,
		interp:     opts.Interp,
		renderer:   opts.Renderer,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       h,
		input:      ti,
		viewport:   viewport.New(80, 20),
		plain:      opts.Plain,
		transcript: &strings.Builder{},
	}
	m.applyTheme(opts.Theme)

	m.transcript.WriteString(interp.StartupText + "\n")
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(interp.Prompt) - 1
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()

		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.transcript.Reset()
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			line := m.input.Value()
			m.input.Reset()
			return m.execute(line)

		case key.Matches(msg, m.keys.HistoryPrev):
			m.recall(-1)
			return m, nil

		case key.Matches(msg, m.keys.HistoryNext):
			m.recall(1)
			return m, nil

		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case ExecuteMsg:
		return m.execute(msg.Line)

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execute runs line through the interpreter and appends the exchange
func (m Model) execute(line string) (tea.Model, tea.Cmd) {
	trimmed := strings.TrimSpace(line)
	if trimmed != "" {
		m.history = append(m.history, trimmed)
	}
	m.historyPos = len(m.history)

	m.transcript.WriteString(m.styles.Render(m.styles.Prompt, interp.Prompt) + line + "\n")

	var out bytes.Buffer
	if !m.interp.Execute(m.ctx, &out, line) {
		m.quitting = true
		return m, tea.Quit
	}
	m.transcript.Write(out.Bytes())
	m.logger.Debug("command executed", "line", trimmed, "bytes", out.Len())

	m.refresh()
	return m, nil
}

// recall moves through command history, dir -1 for older
func (m *Model) recall(dir int) {
	if len(m.history) == 0 {
		return
	}
	pos := m.historyPos + dir
	switch {
	case pos < 0:
		pos = 0
	case pos >= len(m.history):
		m.historyPos = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
}

// cycleTheme switches to the next theme
func (m *Model) cycleTheme() tea.Cmd {
	if m.plain {
		return func() tea.Msg { return StatusMsg{Message: "Plain output: themes are off"} }
	}
	next := theme.Next(m.themeName)
	m.applyTheme(next.Name)
	name := next.Name
	return func() tea.Msg { return ThemeChangedMsg{ThemeName: name} }
}

// applyTheme restyles the shell and the renderer. Unknown names fall
// back to the first available theme.
func (m *Model) applyTheme(name string) {
	t, ok := theme.ByName(name)
	if !ok {
		t = theme.Available()[0]
	}
	m.themeName = t.Name

	if m.plain {
		m.styles = theme.PlainStyles()
	} else {
		m.styles = theme.NewStyles(t)
	}
	if m.renderer != nil {
		m.renderer.SetStyles(m.styles)
	}

	m.input.PromptStyle = m.styles.Prompt
	m.input.TextStyle = m.styles.Input
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.HelpDesc
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.FullDesc = m.styles.HelpDesc
}

// refresh pushes the transcript into the viewport and scrolls to the end
func (m *Model) refresh() {
	m.viewport.SetContent(m.transcript.String())
	m.viewport.GotoBottom()
}

// Transcript returns everything shown in the scrollback so far
func (m Model) Transcript() string {
	return m.transcript.String()
}

// ThemeName returns the active theme
func (m Model) ThemeName() string {
	return m.themeName
}

// Quitting reports whether the shell has asked to exit
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.input.View(),
		m.renderStatus(),
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n")
}

// renderHeader renders the title bar
func (m Model) renderHeader() string {
	title := m.styles.Render(m.styles.Header, "tasklist")
	indicator := m.styles.Render(m.styles.HelpDesc, fmt.Sprintf("theme: %s", m.themeName))
	if m.plain {
		indicator = "plain"
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(indicator)
	if gap < 0 {
		gap = 0
	}
	return title + strings.Repeat(" ", gap) + indicator
}

// renderStatus renders the error or status line
func (m Model) renderStatus() string {
	switch {
	case m.errorMsg != "":
		return m.styles.Render(m.styles.Error, m.errorMsg)
	case m.statusMsg != "":
		return m.styles.Render(m.styles.Status, m.statusMsg)
	default:
		return ""
	}
}

// Run starts the shell and blocks until it exits
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}
