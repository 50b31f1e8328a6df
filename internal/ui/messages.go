package ui

import (
	"gitbattle/internal/battle"
	"gitbattle/internal/popular"
)

// reposSettledMsg carries a finished popular-repos fetch
type reposSettledMsg struct {
	settlement popular.Settlement
}

// startBattleMsg asks the root model to show the results for target
type startBattleMsg struct {
	target battle.Target
}

// battleResultMsg contains the outcome of a battle
type battleResultMsg struct {
	screenID string
	players  []battle.Player
	err      error
}

// resetBattleMsg asks the root model for a fresh battle setup screen
type resetBattleMsg struct{}
