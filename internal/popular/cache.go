package popular

import (
	"errors"
	"fmt"

	"gitbattle/internal/domain"
)

// ErrInvariantViolation is returned when Apply receives an event it does not know.
// It indicates a programming error, not a runtime condition.
var ErrInvariantViolation = errors.New("invariant violation")

// State is an immutable snapshot of fetched repositories per language.
// A language without an entry has not resolved yet.
type State struct {
	repos   map[domain.Language][]domain.Repo
	lastErr *string
}

// NewState returns an empty state
func NewState() State {
	return State{repos: make(map[domain.Language][]domain.Repo)}
}

// Repos returns the repositories fetched for lang, if any
func (s State) Repos(lang domain.Language) ([]domain.Repo, bool) {
	repos, ok := s.repos[lang]
	return repos, ok
}

// LastError returns the most recent failure message for any language.
// Failures are not tracked per language.
func (s State) LastError() (string, bool) {
	if s.lastErr == nil {
		return "", false
	}
	return *s.lastErr, true
}

// Len returns the number of resolved languages
func (s State) Len() int {
	return len(s.repos)
}

// Apply returns the state that results from applying event to s.
// s itself is never modified.
func Apply(s State, event domain.DomainEvent) (State, error) {
	switch e := event.(type) {
	case domain.FetchSucceededEvent:
		next := State{repos: make(map[domain.Language][]domain.Repo, len(s.repos)+1)}
		for lang, repos := range s.repos {
			next.repos[lang] = repos
		}
		next.repos[e.Language] = e.Repos
		return next, nil

	case domain.FetchFailedEvent:
		msg := e.Message
		return State{repos: s.repos, lastErr: &msg}, nil

	default:
		return s, fmt.Errorf("%w: unexpected event %T", ErrInvariantViolation, event)
	}
}
