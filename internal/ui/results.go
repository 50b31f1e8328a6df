package ui

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitbattle/internal/battle"
	"gitbattle/internal/ui/loading"
	"gitbattle/internal/ui/views"
)

// resultsScreen runs one battle and shows the winner
type resultsScreen struct {
	ctx     context.Context
	keys    keyMap
	id      string
	alive   atomic.Bool
	target  battle.Target
	fetcher battle.ProfileFetcher
	players []battle.Player
	err     error
	done    bool
	loading loading.Model
	logger  *zap.Logger
}

func newResultsScreen(ctx context.Context, deps Deps, keys keyMap, target battle.Target) *resultsScreen {
	id := uuid.NewString()
	r := &resultsScreen{
		ctx:     ctx,
		keys:    keys,
		id:      id,
		target:  target,
		fetcher: deps.Client,
		loading: loading.New("Battling", deps.loadingSpeed()),
		logger:  deps.Logger.Named("ui.results").With(zap.String("view_id", id)),
	}
	r.alive.Store(true)
	return r
}

func (r *resultsScreen) Init() tea.Cmd {
	var tick tea.Cmd
	r.loading, tick = r.loading.Start()

	ctx, fetcher, target, id := r.ctx, r.fetcher, r.target, r.id
	fight := func() tea.Msg {
		players, err := battle.Fight(ctx, fetcher, target)
		return battleResultMsg{screenID: id, players: players, err: err}
	}
	return tea.Batch(fight, tick)
}

func (r *resultsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case battleResultMsg:
		if msg.screenID != r.id || !r.alive.Load() {
			r.logger.Debug("discarding battle result", zap.String("origin_view_id", msg.screenID))
			return r, nil
		}
		r.players, r.err, r.done = msg.players, msg.err, true
		r.loading = r.loading.Stop()
		if msg.err != nil {
			r.logger.Warn("battle failed", zap.Error(msg.err))
		}
		return r, nil

	case loading.TickMsg:
		var cmd tea.Cmd
		r.loading, cmd = r.loading.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		if key.Matches(msg, r.keys.Reset) {
			return r, func() tea.Msg { return resetBattleMsg{} }
		}
	}
	return r, nil
}

func (r *resultsScreen) View(s *views.Styles, width int) string {
	if !r.done {
		return s.Loading.Render(r.loading.View())
	}
	if r.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Error.Render(r.err.Error()),
			s.Help.Render("press r to reset"),
		)
	}

	winner, loser := r.players[0], r.players[1]
	headers := [2]string{"Winner", "Loser"}
	if winner.Score == loser.Score {
		headers = [2]string{"Tie", "Tie"}
	}
	cards := []string{
		views.PlayerCard(s, headers[0], winner.Profile, winner.Score),
		views.PlayerCard(s, headers[1], loser.Profile, loser.Score),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		views.Grid(cards, width),
		s.ButtonOn.Render("Reset"),
		s.Help.Render("press r to reset"),
	)
}

func (r *resultsScreen) Capturing() bool { return false }

func (r *resultsScreen) Teardown() {
	r.alive.Store(false)
	r.loading = r.loading.Stop()
}
