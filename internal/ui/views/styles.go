package views

import (
	"github.com/charmbracelet/lipgloss"

	"gitbattle/internal/config"
)

// palette holds the colors that differ between themes
type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	surface lipgloss.Color
	border  lipgloss.Color
}

var palettes = map[string]palette{
	config.ThemeLight: {text: "235", muted: "244", surface: "254", border: "250"},
	config.ThemeDark:  {text: "252", muted: "245", surface: "236", border: "240"},
}

// accent matches the active link color of the web version
const accent = lipgloss.Color("#d71868")

// Styles contains all the style definitions for the UI
type Styles struct {
	Theme string

	Nav        lipgloss.Style
	NavActive  lipgloss.Style
	Title      lipgloss.Style
	Language   lipgloss.Style
	LanguageOn lipgloss.Style
	Loading    lipgloss.Style
	Error      lipgloss.Style
	Card       lipgloss.Style
	CardHeader lipgloss.Style
	CardName   lipgloss.Style
	Dim        lipgloss.Style
	Stars      lipgloss.Style
	Forks      lipgloss.Style
	Issues     lipgloss.Style
	User       lipgloss.Style
	Label      lipgloss.Style
	Input      lipgloss.Style
	InputFocus lipgloss.Style
	Button     lipgloss.Style
	ButtonOn   lipgloss.Style
	ButtonOff  lipgloss.Style
	Help       lipgloss.Style
	Main       lipgloss.Style
}

// NewStyles creates the styles for theme, falling back to light
func NewStyles(theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		theme = config.ThemeLight
		p = palettes[theme]
	}

	return &Styles{
		Theme:      theme,
		Nav:        lipgloss.NewStyle().Foreground(p.text).Padding(0, 1),
		NavActive:  lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.text).MarginBottom(1),
		Language:   lipgloss.NewStyle().Foreground(p.text).Padding(0, 1),
		LanguageOn: lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
		Loading:    lipgloss.NewStyle().Foreground(p.muted).MarginTop(1),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).MarginTop(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Background(p.surface).
			Padding(0, 1).
			Width(cardWidth),
		CardHeader: lipgloss.NewStyle().Bold(true).Foreground(p.text).Align(lipgloss.Center).Width(cardWidth - 2),
		CardName:   lipgloss.NewStyle().Foreground(accent).Bold(true).Align(lipgloss.Center).Width(cardWidth - 2),
		Dim:        lipgloss.NewStyle().Foreground(p.muted),
		Stars:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd700")),
		Forks:      lipgloss.NewStyle().Foreground(lipgloss.Color("#81c3f5")),
		Issues:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f18a93")),
		User:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ffbf74")),
		Label:      lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(0, 1).
			Width(inputWidth),
		InputFocus: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(inputWidth),
		Button:    lipgloss.NewStyle().Foreground(p.text).Padding(0, 2),
		ButtonOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(accent).Bold(true).Padding(0, 2),
		ButtonOff: lipgloss.NewStyle().Foreground(p.muted).Padding(0, 2),
		Help:      lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main:      lipgloss.NewStyle().Padding(1, 2),
	}
}

// Toggled returns the styles for the other theme
func (s *Styles) Toggled() *Styles {
	if s.Theme == config.ThemeDark {
		return NewStyles(config.ThemeLight)
	}
	return NewStyles(config.ThemeDark)
}
