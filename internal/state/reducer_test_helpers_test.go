package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kk-code-lab/skillsearch/internal/history"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/kk-code-lab/skillsearch/internal/suggest"
)

type searchFunc func(ctx context.Context, params search.Params) (search.ResultSet, error)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []search.Params
	handler searchFunc
}

func (f *fakeSearcher) Search(ctx context.Context, params search.Params) (search.ResultSet, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	handler := f.handler
	f.mu.Unlock()
	if handler == nil {
		return search.EmptyResults(), nil
	}
	return handler(ctx, params)
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearcher) setHandler(h searchFunc) {
	f.mu.Lock()
	f.handler = h
	f.mu.Unlock()
}

type fakeProfileFetcher struct {
	profiles map[int64]profile.Profile
}

func (f *fakeProfileFetcher) FetchProfile(ctx context.Context, id int64) (profile.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

type harness struct {
	reducer  *StateReducer
	state    *AppState
	actions  chan Action
	searcher *fakeSearcher
	history  *history.Store
	slot     *history.MemorySlot
}

func newHarness(t *testing.T, searcher *fakeSearcher, profiles map[int64]profile.Profile) *harness {
	t.Helper()
	slot := history.NewMemorySlot(nil)
	cache := profile.NewCache(&fakeProfileFetcher{profiles: profiles}, time.Minute, 0)
	store := history.Open(context.Background(), slot, history.Options{Profiles: cache})
	coordinator := search.NewCoordinator(searcher, search.NewSessionCache(), store, nil)
	engine := suggest.NewEngine(searcher, suggest.Options{})

	actions := make(chan Action, 16)
	state := &AppState{ScreenWidth: 80, ScreenHeight: 24}
	state.SetDispatch(func(a Action) { actions <- a })

	reducer := NewStateReducer(Services{
		Coordinator: coordinator,
		History:     store,
		Suggestions: engine,
	})
	reducer.LoadHistory(state)

	return &harness{
		reducer:  reducer,
		state:    state,
		actions:  actions,
		searcher: searcher,
		history:  store,
		slot:     slot,
	}
}

func (h *harness) reduce(t *testing.T, action Action) {
	t.Helper()
	if _, err := h.reducer.Reduce(h.state, action); err != nil {
		t.Fatalf("Reduce(%T) failed: %v", action, err)
	}
}

// pump waits for the next dispatched action and feeds it to the reducer,
// the way the application loop does.
func (h *harness) pump(t *testing.T) Action {
	t.Helper()
	select {
	case action := <-h.actions:
		h.reduce(t, action)
		return action
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a dispatched action")
		return nil
	}
}

func (h *harness) expectNoAction(t *testing.T) {
	t.Helper()
	select {
	case action := <-h.actions:
		t.Fatalf("unexpected dispatched action %T", action)
	case <-time.After(50 * time.Millisecond):
	}
}

func skillsResult(ids ...int64) search.ResultSet {
	rs := search.EmptyResults()
	for _, id := range ids {
		rs.Skills = append(rs.Skills, search.SkillResult{ID: id, Category: "remeslá"})
	}
	return rs
}

func byQuery(results map[string]search.ResultSet) searchFunc {
	return func(ctx context.Context, params search.Params) (search.ResultSet, error) {
		return results[params.Query], nil
	}
}
