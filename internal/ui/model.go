package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"gitbattle/internal/battle"
	"gitbattle/internal/config"
	"gitbattle/internal/domain"
	"gitbattle/internal/ui/views"
)

// Client is what the UI needs from GitHub
type Client interface {
	FetchPopularRepos(ctx context.Context, lang domain.Language) ([]domain.Repo, error)
	battle.ProfileFetcher
}

// Deps bundles the collaborators of the UI
type Deps struct {
	Config *config.Config
	Client Client
	Logger *zap.Logger
}

func (d Deps) loadingSpeed() time.Duration {
	return time.Duration(d.Config.UI.LoadingSpeedMS) * time.Millisecond
}

// screen is one mounted view. Teardown is called before the screen is replaced.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View(s *views.Styles, width int) string
	// Capturing reports whether keys are going into a text input
	Capturing() bool
	Teardown()
}

type tab int

const (
	tabPopular tab = iota
	tabBattle
)

var tabTitles = map[tab]string{
	tabPopular: "Top Hits",
	tabBattle:  "Fight!",
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	deps    Deps
	keys    keyMap
	help    help.Model
	styles  *views.Styles
	tab     tab
	current screen
	width   int
	height  int
	logger  *zap.Logger
}

// NewModel creates the root model showing the popular screen
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	m := &Model{
		ctx:    ctx,
		deps:   deps,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: views.NewStyles(deps.Config.UI.Theme),
		tab:    tabPopular,
		logger: deps.Logger.Named("ui"),
	}
	m.current = newPopularScreen(ctx, deps, m.keys)
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.current.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, m.quit()
		case key.Matches(msg, m.keys.SwitchTab):
			if m.tab == tabPopular {
				return m, m.mount(tabBattle, newBattleScreen(m.deps, m.keys))
			}
			return m, m.mount(tabPopular, newPopularScreen(m.ctx, m.deps, m.keys))
		case key.Matches(msg, m.keys.Theme):
			m.styles = m.styles.Toggled()
			m.logger.Debug("theme toggled", zap.String("theme", m.styles.Theme))
			return m, nil
		}
		if !m.current.Capturing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, m.quit()
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}

	case startBattleMsg:
		return m, m.mount(tabBattle, newResultsScreen(m.ctx, m.deps, m.keys, msg.target))

	case resetBattleMsg:
		return m, m.mount(tabBattle, newBattleScreen(m.deps, m.keys))
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

// mount replaces the current screen with s
func (m *Model) mount(t tab, s screen) tea.Cmd {
	m.current.Teardown()
	m.tab = t
	m.current = s
	return s.Init()
}

func (m *Model) quit() tea.Cmd {
	m.current.Teardown()
	return tea.Quit
}

// View renders the UI
func (m *Model) View() string {
	s := m.styles

	titles := make([]string, 0, len(tabTitles)+1)
	for _, t := range []tab{tabPopular, tabBattle} {
		if t == m.tab {
			titles = append(titles, s.NavActive.Render(tabTitles[t]))
		} else {
			titles = append(titles, s.Nav.Render(tabTitles[t]))
		}
	}
	themeIcon := "🌙"
	if s.Theme == config.ThemeDark {
		themeIcon = "🌞"
	}
	titles = append(titles, s.Nav.Render(themeIcon))
	nav := lipgloss.JoinHorizontal(lipgloss.Top, titles...)

	width := m.width
	if width == 0 {
		width = 80
	}
	body := m.current.View(s, width-4)

	return s.Main.Render(lipgloss.JoinVertical(lipgloss.Left,
		nav,
		"",
		body,
		s.Help.Render(m.help.View(m.keys)),
	))
}
