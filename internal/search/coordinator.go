package search

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	rateLimitedMessage = "Too many searches in a short time. Showing the last results; try again in a moment."
	failedMessage      = "Search failed. Check your connection and try again."
)

// HistoryRecorder receives every successful, non-empty network result.
type HistoryRecorder interface {
	Record(results ResultSet) bool
}

// OutcomeKind tells the caller which visible fields to touch.
type OutcomeKind int

const (
	// OutcomeNone means the attempt was superseded; nothing may change.
	OutcomeNone OutcomeKind = iota
	// OutcomePending means a request was issued; results arrive via Complete.
	OutcomePending
	// OutcomeResults carries results to display.
	OutcomeResults
	// OutcomeRateLimited keeps the current results and shows Message as a warning.
	OutcomeRateLimited
	// OutcomeFailed keeps the current results and shows Message as an error.
	OutcomeFailed
)

// Outcome is what the coordinator decided for one Search or Complete call.
type Outcome struct {
	Kind      OutcomeKind
	Results   ResultSet
	FromCache bool
	Message   string
	Err       error
	Attempt   *Attempt
}

// Completion is delivered by the request goroutine once the transport
// returns, whether or not the attempt is still current.
type Completion struct {
	Attempt *Attempt
	Results ResultSet
	Err     error
}

// Coordinator owns the search request lifecycle: cache lookups, the single
// in-flight attempt, outcome classification and cache/history write-back.
// Search, Complete, Cancel and Invalidate must all be called from the same
// goroutine (the event loop).
type Coordinator struct {
	searcher Searcher
	cache    *SessionCache
	history  HistoryRecorder
	logger   logrus.FieldLogger
	current  *Attempt
}

// NewCoordinator wires a coordinator. cache and history may be nil.
func NewCoordinator(searcher Searcher, cache *SessionCache, history HistoryRecorder, logger logrus.FieldLogger) *Coordinator {
	if cache == nil {
		cache = NewSessionCache()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Coordinator{
		searcher: searcher,
		cache:    cache,
		history:  history,
		logger:   logger,
	}
}

// Search starts a search for query and filters. Empty queries and cache hits
// resolve synchronously; otherwise the previous attempt is cancelled and a
// new request runs in its own goroutine, reporting through deliver.
func (c *Coordinator) Search(query string, filters FilterSet, deliver func(Completion)) Outcome {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.supersede()
		return Outcome{Kind: OutcomeResults, Results: EmptyResults()}
	}

	key := CacheKey(trimmed, filters)
	if cached, ok := c.cache.Get(key); ok {
		c.supersede()
		c.logger.WithField("query", trimmed).Debug("search served from session cache")
		return Outcome{Kind: OutcomeResults, Results: cached, FromCache: true}
	}

	c.supersede()

	attempt := newAttempt(key, trimmed)
	attempt.start()
	c.current = attempt

	params := Params{Query: trimmed, Filters: filters}
	searcher := c.searcher
	go func() {
		results, err := searcher.Search(attempt.Context(), params)
		if deliver != nil {
			deliver(Completion{Attempt: attempt, Results: results, Err: err})
		}
	}()

	c.logger.WithFields(logrus.Fields{"attempt": attempt.ID, "query": trimmed}).Debug("search request issued")
	return Outcome{Kind: OutcomePending, Attempt: attempt}
}

// Complete classifies a finished request. Completions of superseded
// attempts yield OutcomeNone and leave caches untouched.
func (c *Coordinator) Complete(done Completion) Outcome {
	attempt := done.Attempt
	if attempt == nil || attempt != c.current || attempt.Superseded() {
		if attempt != nil {
			c.logger.WithField("attempt", attempt.ID).Debug("discarding superseded search result")
		}
		return Outcome{Kind: OutcomeNone, Attempt: attempt}
	}
	c.current = nil

	log := c.logger.WithFields(logrus.Fields{"attempt": attempt.ID, "query": attempt.Query})

	if done.Err != nil {
		if errors.Is(done.Err, context.Canceled) {
			attempt.finish(AttemptCancelled)
			return Outcome{Kind: OutcomeNone, Attempt: attempt}
		}
		attempt.finish(AttemptFailed)
		if errors.Is(done.Err, ErrRateLimited) {
			log.Warn("search rate limited")
			return Outcome{Kind: OutcomeRateLimited, Message: rateLimitedMessage, Err: done.Err, Attempt: attempt}
		}
		log.WithError(done.Err).Warn("search failed")
		return Outcome{Kind: OutcomeFailed, Message: failedMessage, Err: done.Err, Attempt: attempt}
	}

	attempt.finish(AttemptApplied)
	results := done.Results
	if results.Skills == nil {
		results.Skills = []SkillResult{}
	}
	if results.Users == nil {
		results.Users = []UserResult{}
	}
	c.cache.Put(attempt.Key, results)
	if !results.IsEmpty() && c.history != nil {
		c.history.Record(results)
	}
	log.WithFields(logrus.Fields{"skills": len(results.Skills), "users": len(results.Users)}).Debug("search applied")
	return Outcome{Kind: OutcomeResults, Results: results.Clone(), Attempt: attempt}
}

// Cancel supersedes the in-flight attempt, if any.
func (c *Coordinator) Cancel() {
	c.supersede()
}

// Invalidate clears the session cache. Used when identity-affecting data
// changes, so no cached result can show another user's stale slug.
func (c *Coordinator) Invalidate() {
	c.cache.Clear()
	c.logger.Debug("session cache cleared")
}

// InFlight reports whether a request is outstanding.
func (c *Coordinator) InFlight() bool {
	return c.current != nil && c.current.State() == AttemptInFlight
}

// Current returns the in-flight attempt or nil.
func (c *Coordinator) Current() *Attempt {
	return c.current
}

func (c *Coordinator) supersede() {
	if c.current == nil {
		return
	}
	if c.current.Cancel() {
		c.logger.WithField("attempt", c.current.ID).Debug("search superseded")
	}
	c.current = nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
