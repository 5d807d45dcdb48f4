// Package history keeps the recent-search log: a capacity-bounded,
// deduplicated list of result snapshots persisted to a durable slot, plus
// the two-phase freshness pass run when an entry is reopened.
package history

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/sirupsen/logrus"
)

const (
	DefaultCapacity           = 20
	DefaultRefreshConcurrency = 4
	defaultRefreshTimeout     = 15 * time.Second
	saveTimeout               = 5 * time.Second
)

// Options configure a Store.
type Options struct {
	Capacity           int
	Profiles           Profiles
	RefreshConcurrency int
	RefreshTimeout     time.Duration
	Logger             logrus.FieldLogger
}

// Store is the recent-search history. It is read from its slot once in
// Open and then treated as a write-through cache: every mutation rewrites
// the whole array. Methods other than the background fetch started by
// Activate must be called from a single goroutine.
type Store struct {
	slot        Slot
	entries     []Entry
	capacity    int
	profiles    Profiles
	concurrency int
	timeout     time.Duration
	logger      logrus.FieldLogger
}

// Open loads the history from slot. Missing or unreadable data yields an
// empty history; the error is logged and never returned.
func Open(ctx context.Context, slot Slot, opts Options) *Store {
	s := &Store{
		slot:        slot,
		capacity:    opts.Capacity,
		profiles:    opts.Profiles,
		concurrency: opts.RefreshConcurrency,
		timeout:     opts.RefreshTimeout,
		logger:      opts.Logger,
	}
	if s.capacity <= 0 {
		s.capacity = DefaultCapacity
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultRefreshConcurrency
	}
	if s.timeout <= 0 {
		s.timeout = defaultRefreshTimeout
	}
	if s.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		s.logger = logger
	}
	s.entries = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []Entry {
	if s.slot == nil {
		return nil
	}
	data, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("history unavailable, starting empty")
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var stored []Entry
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.WithError(err).Warn("history is corrupt, starting empty")
		return nil
	}

	entries := make([]Entry, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, entry := range stored {
		if entry.Skills == nil {
			entry.Skills = []search.SkillResult{}
		}
		if entry.Users == nil {
			entry.Users = []search.UserResult{}
		}
		if entry.IsEmpty() {
			continue
		}
		key := entry.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, entry)
		if len(entries) == s.capacity {
			break
		}
	}
	s.logger.WithField("entries", len(entries)).Debug("history loaded")
	return entries
}

// Record prepends a snapshot of results unless it is empty or an entry with
// the same identity key already exists (the existing one keeps its place).
// It reports whether the history changed.
func (s *Store) Record(results search.ResultSet) bool {
	if results.IsEmpty() {
		return false
	}
	key := IdentityKey(results)
	for _, entry := range s.entries {
		if entry.Key() == key {
			return false
		}
	}

	entries := make([]Entry, 0, min(len(s.entries)+1, s.capacity))
	entries = append(entries, NewEntry(results))
	entries = append(entries, s.entries...)
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
	s.persist()
	return true
}

// Len reports the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns copies of all entries, newest first.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, entry := range s.entries {
		out[i] = NewEntry(entry.ResultSet)
	}
	return out
}

// Entry returns a copy of the entry at idx.
func (s *Store) Entry(idx int) (Entry, bool) {
	if idx < 0 || idx >= len(s.entries) {
		return Entry{}, false
	}
	return NewEntry(s.entries[idx].ResultSet), true
}

// Activate returns the entry at idx reconciled for immediate display, then
// starts a best-effort refresh of every other referenced user in the
// background. deliver receives the fetched profiles from that goroutine
// (only when at least one lookup succeeded); failures are silent.
func (s *Store) Activate(idx int, self identity.Identity, deliver func([]profile.Profile)) (search.ResultSet, bool) {
	entry, ok := s.Entry(idx)
	if !ok {
		return search.ResultSet{}, false
	}

	display := Reconcile(entry.ResultSet, self, s.profiles)

	targets := RefreshTargets(entry.ResultSet, self.ID)
	if len(targets) > 0 && deliver != nil && s.profiles != nil {
		fetcher := s.profiles
		limit := s.concurrency
		timeout := s.timeout
		logger := s.logger
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			fetched := FetchProfiles(ctx, fetcher, targets, limit)
			logger.WithFields(logrus.Fields{"requested": len(targets), "fetched": len(fetched)}).Debug("history profile refresh finished")
			if len(fetched) > 0 {
				deliver(fetched)
			}
		}()
	}
	return display, true
}

// ApplyProfiles rewrites every stored reference to the given users and
// persists when something changed.
func (s *Store) ApplyProfiles(profiles []profile.Profile) bool {
	changed := false
	for _, p := range profiles {
		for i := range s.entries {
			if s.entries[i].ApplyProfile(p.ID, p.Name(), p.Slug) {
				changed = true
			}
		}
	}
	if changed {
		s.persist()
	}
	return changed
}

// ApplyIdentity rewrites the signed-in user's own references.
func (s *Store) ApplyIdentity(self identity.Identity) bool {
	if !self.SignedIn() {
		return false
	}
	return s.ApplyProfiles([]profile.Profile{{ID: self.ID, DisplayName: self.Name(), Slug: self.Slug}})
}

func (s *Store) persist() {
	if s.slot == nil {
		return
	}
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.WithError(err).Warn("encode history")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.slot.Save(ctx, data); err != nil {
		s.logger.WithError(err).Warn("persist history")
	}
}
