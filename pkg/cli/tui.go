package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Warn    lipgloss.Color // Interrupted or incomplete runs
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Warn:    lipgloss.Color("#ffb86c"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Warn   lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Value:  lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 1),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// PlainStyles renders without colors or borders, for logs and tests.
func PlainStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle(),
		Value:  lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
		Help:   lipgloss.NewStyle(),
	}
}

// Field is one labeled line of a Panel.
type Field struct {
	Label string
	Value string
	Warn  bool
}

// Panel renders a title, aligned label/value fields and an optional list of
// dimmed trailing lines inside the border style.
type Panel struct {
	Styles Styles
	Title  string
	Fields []Field
	Footer []string
}

// Render renders the panel to a string.
func (p Panel) Render() string {
	width := 0
	for _, f := range p.Fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	lines := []string{p.Styles.Title.Render(p.Title)}
	for _, f := range p.Fields {
		label := p.Styles.Label.Render(f.Label + strings.Repeat(" ", width-lipgloss.Width(f.Label)))
		value := p.Styles.Value.Render(f.Value)
		if f.Warn {
			value = p.Styles.Warn.Render(f.Value)
		}
		lines = append(lines, label+"  "+value)
	}
	if len(p.Footer) > 0 {
		lines = append(lines, "")
		for _, l := range p.Footer {
			lines = append(lines, p.Styles.Help.Render(l))
		}
	}
	return p.Styles.Border.Render(strings.Join(lines, "\n"))
}
