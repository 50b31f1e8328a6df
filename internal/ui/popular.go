package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"gitbattle/internal/domain"
	"gitbattle/internal/popular"
	"gitbattle/internal/ui/loading"
	"gitbattle/internal/ui/views"
)

// popularScreen lists the most starred repositories per language
type popularScreen struct {
	keys      keyMap
	languages []domain.Language
	selected  int
	coord     *popular.Coordinator
	loading   loading.Model
	logger    *zap.Logger
}

func newPopularScreen(ctx context.Context, deps Deps, keys keyMap) *popularScreen {
	selected := 0
	for i, lang := range deps.Config.UI.Languages {
		if lang == deps.Config.UI.DefaultLanguage {
			selected = i
		}
	}
	return &popularScreen{
		keys:      keys,
		languages: deps.Config.UI.Languages,
		selected:  selected,
		coord:     popular.NewCoordinator(ctx, deps.Client.FetchPopularRepos, deps.Logger),
		loading:   loading.New(deps.Config.UI.LoadingText, deps.loadingSpeed()),
		logger:    deps.Logger.Named("ui.popular"),
	}
}

func (p *popularScreen) Init() tea.Cmd {
	return p.selectLanguage(p.selected)
}

func (p *popularScreen) current() domain.Language {
	return p.languages[p.selected]
}

// selectLanguage makes idx the active language and fetches it if needed
func (p *popularScreen) selectLanguage(idx int) tea.Cmd {
	p.selected = idx
	var cmd tea.Cmd
	if dispatch := p.coord.Select(p.current()); dispatch != nil {
		cmd = func() tea.Msg {
			return reposSettledMsg{settlement: dispatch()}
		}
	}
	return tea.Batch(cmd, p.syncLoading())
}

// syncLoading runs the loading widget exactly while the current language is loading
func (p *popularScreen) syncLoading() tea.Cmd {
	loadingNow := p.coord.IsLoading(p.current())
	switch {
	case loadingNow && !p.loading.Running():
		var cmd tea.Cmd
		p.loading, cmd = p.loading.Start()
		return cmd
	case !loadingNow && p.loading.Running():
		p.loading = p.loading.Stop()
	}
	return nil
}

func (p *popularScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Left):
			return p, p.selectLanguage((p.selected - 1 + len(p.languages)) % len(p.languages))
		case key.Matches(msg, p.keys.Right):
			return p, p.selectLanguage((p.selected + 1) % len(p.languages))
		}

	case reposSettledMsg:
		if _, err := p.coord.Settle(msg.settlement); err != nil {
			p.logger.Error("dropping settlement", zap.Error(err))
		}
		return p, p.syncLoading()

	case loading.TickMsg:
		var cmd tea.Cmd
		p.loading, cmd = p.loading.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *popularScreen) View(s *views.Styles, width int) string {
	var b strings.Builder

	tabs := make([]string, len(p.languages))
	for i, lang := range p.languages {
		if i == p.selected {
			tabs[i] = s.LanguageOn.Render(string(lang))
		} else {
			tabs[i] = s.Language.Render(string(lang))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	lang := p.current()
	state := p.coord.Snapshot()
	if p.coord.IsLoading(lang) {
		b.WriteString(s.Loading.Render(p.loading.View()))
		b.WriteString("\n")
	}
	if msg, ok := state.LastError(); ok {
		b.WriteString(s.Error.Render(msg))
		b.WriteString("\n")
	}
	if repos, ok := state.Repos(lang); ok {
		cards := make([]string, len(repos))
		for i, repo := range repos {
			cards[i] = views.RepoCard(s, i+1, repo)
		}
		b.WriteString("\n")
		b.WriteString(views.Grid(cards, width))
	}
	return b.String()
}

func (p *popularScreen) Capturing() bool { return false }

func (p *popularScreen) Teardown() {
	p.coord.Teardown()
	p.loading = p.loading.Stop()
}
