package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"gitbattle/internal/config"
	"gitbattle/internal/domain"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestRepoCard(t *testing.T) {
	s := NewStyles(config.ThemeLight)
	card := RepoCard(s, 1, domain.Repo{
		Name:       "react",
		Owner:      domain.Owner{Login: "facebook"},
		HTMLURL:    "https://github.com/facebook/react",
		Stars:      220000,
		Forks:      45000,
		OpenIssues: 900,
	})

	assert.Contains(t, card, "#1")
	assert.Contains(t, card, "facebook/react")
	assert.Contains(t, card, "220,000 stars")
	assert.Contains(t, card, "45,000 forks")
	assert.Contains(t, card, "900 open")
}

func TestPlayerCard_SkipsEmptyFields(t *testing.T) {
	s := NewStyles(config.ThemeDark)
	card := PlayerCard(s, "Winner", domain.Profile{Login: "alice", Followers: 3}, 9)

	assert.Contains(t, card, "Winner")
	assert.Contains(t, card, "Score: 9")
	assert.Contains(t, card, "3 followers")
	assert.NotContains(t, card, "⌖")
}

func TestGrid_WrapsToWidth(t *testing.T) {
	card := lipgloss.NewStyle().Width(10).Render("x")
	grid := Grid([]string{card, card, card}, 23)

	assert.Equal(t, 2, len(strings.Split(grid, "\n")))
	assert.Equal(t, "", Grid(nil, 80))
	assert.Equal(t, 3, len(strings.Split(Grid([]string{card, card, card}, 5), "\n")))
}

func TestStyles_Toggle(t *testing.T) {
	s := NewStyles("neon")
	assert.Equal(t, config.ThemeLight, s.Theme)
	assert.Equal(t, config.ThemeDark, s.Toggled().Theme)
	assert.Equal(t, config.ThemeLight, s.Toggled().Toggled().Theme)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
