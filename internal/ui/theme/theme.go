package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme.
// When Plain is set every style is ignored and text is emitted as is.
type Styles struct {
	Plain bool

	// Report styles
	ProjectHeader lipgloss.Style
	DateHeader    lipgloss.Style
	TaskOpen      lipgloss.Style
	TaskDone      lipgloss.Style
	TaskID        lipgloss.Style
	Deadline      lipgloss.Style
	Overdue       lipgloss.Style

	// Messages
	Error  lipgloss.Style
	Status lipgloss.Style

	// REPL chrome
	Header   lipgloss.Style
	Prompt   lipgloss.Style
	Input    lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		ProjectHeader: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		DateHeader: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		TaskOpen: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		TaskID: lipgloss.NewStyle().
			Foreground(t.Info),

		Deadline: lipgloss.NewStyle().
			Foreground(t.Warning),

		Overdue: lipgloss.NewStyle().
			Foreground(t.Error),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(t.Success),

		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),
	}
}

// PlainStyles returns styles that leave text untouched
func PlainStyles() Styles {
	return Styles{Plain: true}
}

// Render applies style to text unless the styles are plain
func (s Styles) Render(style lipgloss.Style, text string) string {
	if s.Plain {
		return text
	}
	return style.Render(text)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after current in Available, wrapping around
func Next(current string) Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
