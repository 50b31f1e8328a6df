package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gitbattle/internal/domain"
)

const (
	cardWidth  = 34
	inputWidth = 28
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// RepoCard renders one ranked repository
func RepoCard(s *Styles, rank int, repo domain.Repo) string {
	lines := []string{
		s.CardHeader.Render(fmt.Sprintf("#%d", rank)),
		s.CardName.Render(truncate(repo.Owner.Login+"/"+repo.Name, cardWidth-2)),
		s.Dim.Render(truncate(repo.HTMLURL, cardWidth-2)),
		"",
		s.User.Render("👤 ") + repo.Owner.Login,
		s.Stars.Render("★ ") + FormatCount(repo.Stars) + " stars",
		s.Forks.Render("⑂ ") + FormatCount(repo.Forks) + " forks",
		s.Issues.Render("⚠ ") + FormatCount(repo.OpenIssues) + " open",
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}

// PlayerCard renders a scored battle participant under header
func PlayerCard(s *Styles, header string, profile domain.Profile, score int) string {
	lines := []string{
		s.CardHeader.Render(header),
		s.CardHeader.Render("Score: " + FormatCount(score)),
		s.CardName.Render(profile.Login),
		s.Dim.Render(truncate(profile.HTMLURL, cardWidth-2)),
		"",
	}
	if profile.Name != "" {
		lines = append(lines, s.User.Render("👤 ")+profile.Name)
	}
	if profile.Location != "" {
		lines = append(lines, s.Dim.Render("⌖ ")+profile.Location)
	}
	if profile.Company != "" {
		lines = append(lines, s.Dim.Render("▣ ")+profile.Company)
	}
	lines = append(lines,
		s.Forks.Render("⇄ ")+FormatCount(profile.Followers)+" followers",
		s.Stars.Render("⇆ ")+FormatCount(profile.Following)+" following",
		s.Issues.Render("⌂ ")+FormatCount(profile.PublicRepos)+" repositories",
	)
	return s.Card.Render(strings.Join(lines, "\n"))
}

// Grid lays cards out left to right, wrapping to fit width
func Grid(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := 1
	if w := lipgloss.Width(cards[0]) + 1; width > w {
		perRow = width / w
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		row := make([]string, 0, (end-start)*2)
		for i, c := range cards[start:end] {
			if i > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, limit int) string {
	if lipgloss.Width(s) <= limit {
		return s
	}
	r := []rune(s)
	if limit <= 1 || len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
