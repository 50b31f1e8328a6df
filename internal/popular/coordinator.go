package popular

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitbattle/internal/domain"
)

// FetchFunc fetches the ranked repositories for a language
type FetchFunc func(ctx context.Context, lang domain.Language) ([]domain.Repo, error)

// FetchError is a failed fetch as surfaced to the user
type FetchError struct {
	Language domain.Language
	Message  string
}

func (e *FetchError) Error() string {
	return e.Message
}

// Settlement carries the outcome of one dispatched fetch back to its coordinator
type Settlement struct {
	Language domain.Language
	Repos    []domain.Repo
	Err      *FetchError

	viewID string
	alive  *atomic.Bool
}

// Coordinator decides when a language gets fetched and routes the results into
// the cache. Each language is fetched at most once per coordinator.
type Coordinator struct {
	mu       sync.Mutex
	ctx      context.Context
	fetch    FetchFunc
	logger   *zap.Logger
	viewID   string
	alive    *atomic.Bool
	state    State
	seen     map[domain.Language]struct{}
	inFlight map[domain.Language]struct{}
}

// NewCoordinator creates a coordinator for one mounted view.
// ctx is handed to every fetch; Teardown does not cancel it.
func NewCoordinator(ctx context.Context, fetch FetchFunc, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	alive := &atomic.Bool{}
	alive.Store(true)

	viewID := uuid.NewString()
	return &Coordinator{
		ctx:      ctx,
		fetch:    fetch,
		logger:   logger.Named("popular").With(zap.String("view_id", viewID)),
		viewID:   viewID,
		alive:    alive,
		state:    NewState(),
		seen:     make(map[domain.Language]struct{}),
		inFlight: make(map[domain.Language]struct{}),
	}
}

// Select records that lang became the active language. It returns the fetch to
// run when lang has never been dispatched, and nil otherwise. Languages whose
// fetch failed are not retried.
func (c *Coordinator) Select(lang domain.Language) func() Settlement {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive.Load() {
		return nil
	}
	if _, ok := c.seen[lang]; ok {
		return nil
	}
	c.seen[lang] = struct{}{}
	c.inFlight[lang] = struct{}{}
	c.logger.Debug("dispatching fetch", zap.String("language", string(lang)))

	ctx, fetch, alive, viewID := c.ctx, c.fetch, c.alive, c.viewID
	return func() Settlement {
		s := Settlement{Language: lang, viewID: viewID, alive: alive}
		repos, err := fetch(ctx, lang)
		if err != nil {
			s.Err = &FetchError{Language: lang, Message: err.Error()}
			return s
		}
		s.Repos = repos
		return s
	}
}

// Settle applies a finished fetch. Results that arrive after Teardown, or that
// were dispatched by another coordinator, are dropped and Settle returns false.
func (c *Coordinator) Settle(s Settlement) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s.alive == nil || !s.alive.Load() || s.viewID != c.viewID {
		c.logger.Debug("discarding settled fetch",
			zap.String("language", string(s.Language)),
			zap.String("origin_view_id", s.viewID),
		)
		return false, nil
	}

	var event domain.DomainEvent
	if s.Err != nil {
		c.logger.Warn("fetch failed",
			zap.String("language", string(s.Language)),
			zap.String("error", s.Err.Message),
		)
		event = domain.FetchFailedEvent{Language: s.Language, Message: s.Err.Message}
	} else {
		c.logger.Debug("fetch succeeded",
			zap.String("language", string(s.Language)),
			zap.Int("repos", len(s.Repos)),
		)
		event = domain.FetchSucceededEvent{Language: s.Language, Repos: s.Repos}
	}

	next, err := Apply(c.state, event)
	if err != nil {
		return false, err
	}
	c.state = next
	delete(c.inFlight, s.Language)
	return true, nil
}

// Teardown marks the owning view as gone. Fetches still running keep going but
// their results are ignored.
func (c *Coordinator) Teardown() {
	if c.alive.CompareAndSwap(true, false) {
		c.mu.Lock()
		pending := len(c.inFlight)
		c.mu.Unlock()
		c.logger.Debug("view torn down", zap.Int("in_flight", pending))
	}
}

// IsLoading reports whether lang should render as loading: nothing resolved
// for it and no failure recorded for any language.
func (c *Coordinator) IsLoading(lang domain.Language) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ready := c.state.Repos(lang)
	_, failed := c.state.LastError()
	return !ready && !failed
}

// Snapshot returns the current cache state
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight reports whether a fetch for lang has been dispatched and not yet settled
func (c *Coordinator) InFlight(lang domain.Language) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[lang]
	return ok
}
