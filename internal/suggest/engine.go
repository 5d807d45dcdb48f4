// Package suggest computes the personalised suggestion list: a pool of
// nearby offers fetched independently of the main search, ranked so that
// entries complementing the user's own offers come first.
package suggest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPerPage = 50
	DefaultLimit   = 10
)

// Options configure an Engine.
type Options struct {
	PerPage int
	Limit   int
	Logger  logrus.FieldLogger
}

// Engine loads and caches suggestions for one identity at a time. Load may
// be called from any goroutine.
type Engine struct {
	searcher search.Searcher
	perPage  int
	limit    int
	logger   logrus.FieldLogger

	mu         sync.Mutex
	generation uint64
	loaded     bool
	owner      int64
	cached     []Candidate
}

// NewEngine builds an engine fetching its pool through searcher.
func NewEngine(searcher search.Searcher, opts Options) *Engine {
	e := &Engine{
		searcher: searcher,
		perPage:  opts.PerPage,
		limit:    opts.Limit,
		logger:   opts.Logger,
	}
	if e.perPage <= 0 {
		e.perPage = DefaultPerPage
	}
	if e.limit <= 0 {
		e.limit = DefaultLimit
	}
	if e.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		e.logger = logger
	}
	return e
}

// PoolParams is the request used for the candidate pool: no text, scoped to
// the user's location, first page only.
func (e *Engine) PoolParams() search.Params {
	return search.Params{
		Filters: search.FilterSet{OnlyMyLocation: true},
		Page:    1,
		PerPage: e.perPage,
	}
}

// Load returns the ranked suggestions for self. The result is computed once
// per identity id and reused until the id changes or Reset is called.
// Failed loads are not cached.
func (e *Engine) Load(ctx context.Context, self identity.Identity) ([]Candidate, error) {
	e.mu.Lock()
	if e.loaded && e.owner == self.ID {
		out := append([]Candidate(nil), e.cached...)
		e.mu.Unlock()
		return out, nil
	}
	generation := e.generation
	e.mu.Unlock()

	log := e.logger.WithField("user_id", self.ID)
	pool, err := e.searcher.Search(ctx, e.PoolParams())
	if err != nil {
		log.WithError(err).Warn("suggestion pool fetch failed")
		return nil, fmt.Errorf("load suggestion pool: %w", err)
	}

	ranked := Rank(pool.Skills, self, e.limit)
	log.WithFields(logrus.Fields{"pool": len(pool.Skills), "suggestions": len(ranked)}).Debug("suggestions ranked")

	e.mu.Lock()
	if e.generation == generation {
		e.loaded = true
		e.owner = self.ID
		e.cached = ranked
	}
	e.mu.Unlock()
	return append([]Candidate(nil), ranked...), nil
}

// Cached returns the suggestions already computed for id, if any.
func (e *Engine) Cached(id int64) ([]Candidate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded || e.owner != id {
		return nil, false
	}
	return append([]Candidate(nil), e.cached...), true
}

// Reset forgets the cached suggestions. A load already running when Reset
// is called still returns its result but does not repopulate the cache.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	e.loaded = false
	e.owner = 0
	e.cached = nil
}
