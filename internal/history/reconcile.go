package history

import (
	"context"
	"sync"

	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"
)

// ProfileSource answers from memory; it must never block on I/O.
type ProfileSource interface {
	Peek(id int64) mo.Option[profile.Profile]
}

// ProfileFetcher asks the authoritative source.
type ProfileFetcher interface {
	Fetch(ctx context.Context, id int64) (profile.Profile, error)
}

// Profiles is what the store needs from the profile cache.
type Profiles interface {
	ProfileSource
	ProfileFetcher
}

// Reconcile returns a copy of results with every user reference refreshed
// from what is known locally: the signed-in identity for its own id, and
// the profile cache for everybody else. It performs no I/O.
func Reconcile(results search.ResultSet, self identity.Identity, source ProfileSource) search.ResultSet {
	out := results.Clone()
	for _, id := range out.UserIDs() {
		if self.SignedIn() && id == self.ID {
			out.ApplyProfile(id, self.Name(), self.Slug)
			continue
		}
		if source == nil {
			continue
		}
		if p, ok := source.Peek(id).Get(); ok {
			out.ApplyProfile(id, p.Name(), p.Slug)
		}
	}
	return out
}

// RefreshTargets lists the distinct user ids of results other than selfID.
func RefreshTargets(results search.ResultSet, selfID int64) []int64 {
	return lo.Filter(results.UserIDs(), func(id int64, _ int) bool {
		return id != selfID
	})
}

// FetchProfiles loads ids with at most limit requests at a time. Failed
// lookups are dropped; the returned profiles keep the order of ids.
func FetchProfiles(ctx context.Context, fetcher ProfileFetcher, ids []int64, limit int) []profile.Profile {
	if fetcher == nil || len(ids) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 1
	}

	var (
		mu      sync.Mutex
		fetched = make(map[int64]profile.Profile, len(ids))
		g       errgroup.Group
	)
	g.SetLimit(limit)
	for _, id := range ids {
		g.Go(func() error {
			p, err := fetcher.Fetch(ctx, id)
			if err != nil {
				return nil
			}
			if p.ID == 0 {
				p.ID = id
			}
			mu.Lock()
			fetched[id] = p
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := make([]profile.Profile, 0, len(fetched))
	for _, id := range ids {
		if p, ok := fetched[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
