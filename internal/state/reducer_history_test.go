package state

import (
	"context"
	"testing"

	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
)

// ===== HISTORY TESTS =====

func staleEntry() search.ResultSet {
	return search.ResultSet{
		Skills: []search.SkillResult{
			{ID: 1, Category: "maľovanie", OwnerUserID: 10, OwnerDisplayName: "Ján Starý", OwnerSlug: "jan-stary"},
			{ID: 2, Category: "upratovanie", OwnerUserID: 20, OwnerDisplayName: "Eva Stará", OwnerSlug: "eva-stara"},
		},
		Users: []search.UserResult{{ID: 20, DisplayName: "Eva Stará", Slug: "eva-stara"}},
	}
}

func TestHistoryActivationReconcilesSelf(t *testing.T) {
	h := newHarness(t, &fakeSearcher{}, nil)
	h.history.Record(staleEntry())
	h.reducer.LoadHistory(h.state)
	h.state.Identity = identity.Identity{ID: 10, FirstName: "Ján", LastName: "Nový", Slug: "jan-novy"}

	h.reduce(t, HistoryActivateAction{Index: 0})

	if h.state.Results == nil {
		t.Fatal("expected results from history")
	}
	if !h.state.IsFromHistory || !h.state.HasSearched || h.state.IsSearching {
		t.Fatalf("unexpected flags fromHistory=%v searched=%v searching=%v", h.state.IsFromHistory, h.state.HasSearched, h.state.IsSearching)
	}
	own := h.state.Results.Skills[0]
	if own.OwnerDisplayName != "Ján Nový" || own.OwnerSlug != "jan-novy" {
		t.Fatalf("own entry not reconciled: %+v", own)
	}
	if h.state.Focus != FocusResults {
		t.Fatalf("expected focus on results, got %v", h.state.Focus)
	}
}

func TestHistoryActivationRefreshesOthersInBackground(t *testing.T) {
	profiles := map[int64]profile.Profile{
		20: {ID: 20, DisplayName: "Eva Nová", Slug: "eva-nova"},
	}
	h := newHarness(t, &fakeSearcher{}, profiles)
	h.history.Record(staleEntry())
	h.reducer.LoadHistory(h.state)
	h.state.Identity = identity.Identity{ID: 10, DisplayName: "Ján"}

	h.reduce(t, HistoryActivateAction{Index: 0})
	if h.state.Results.Users[0].DisplayName != "Eva Stará" {
		t.Fatalf("phase one must not wait for the network, got %q", h.state.Results.Users[0].DisplayName)
	}

	action := h.pump(t)
	if _, ok := action.(ProfilesRefreshedAction); !ok {
		t.Fatalf("expected ProfilesRefreshedAction, got %T", action)
	}

	if got := h.state.Results.Users[0]; got.DisplayName != "Eva Nová" || got.Slug != "eva-nova" {
		t.Fatalf("live results not refreshed: %+v", got)
	}
	if got := h.state.Results.Skills[1]; got.OwnerDisplayName != "Eva Nová" {
		t.Fatalf("skill owner not refreshed: %+v", got)
	}
	if got := h.state.History[0].Users[0].DisplayName; got != "Eva Nová" {
		t.Fatalf("history not rewritten, got %q", got)
	}
	if len(h.slot.Bytes()) == 0 {
		t.Fatal("history should have been persisted")
	}
}

func TestLateProfileRefreshOnlyRewritesHistory(t *testing.T) {
	profiles := map[int64]profile.Profile{
		20: {ID: 20, DisplayName: "Eva Nová"},
	}
	h := newHarness(t, &fakeSearcher{}, profiles)
	h.history.Record(staleEntry())
	h.reducer.LoadHistory(h.state)

	h.reduce(t, HistoryActivateAction{Index: 0})
	h.reduce(t, SetQueryAction{Query: " "})
	h.reduce(t, SearchAction{})

	h.pump(t)

	if h.state.Results == nil || !h.state.Results.IsEmpty() {
		t.Fatalf("refresh for a replaced view must not touch results, got %+v", h.state.Results)
	}
	if got := h.state.History[0].Users[0].DisplayName; got != "Eva Nová" {
		t.Fatalf("history should still be rewritten, got %q", got)
	}
}

func TestHistoryActivationCancelsPendingSearch(t *testing.T) {
	release := make(chan struct{})
	searcher := &fakeSearcher{}
	searcher.setHandler(func(ctx context.Context, params search.Params) (search.ResultSet, error) {
		<-release
		return skillsResult(99), nil
	})
	h := newHarness(t, searcher, nil)
	h.history.Record(skillsResult(1))
	h.reducer.LoadHistory(h.state)

	h.reduce(t, SetQueryAction{Query: "pomalé"})
	h.reduce(t, SearchAction{})
	h.reduce(t, HistoryActivateAction{Index: 0})

	close(release)
	h.pump(t)

	if h.state.Results.Skills[0].ID != 1 || !h.state.IsFromHistory {
		t.Fatalf("pending search overwrote history view: %+v", h.state.Results)
	}
}

func TestHistoryActivationOutOfRange(t *testing.T) {
	h := newHarness(t, &fakeSearcher{}, nil)
	h.reduce(t, HistoryActivateAction{Index: 3})
	if h.state.Results != nil || h.state.IsFromHistory {
		t.Fatal("activating a missing entry must not change state")
	}
}

func TestActivateOnHistoryFocus(t *testing.T) {
	h := newHarness(t, &fakeSearcher{}, nil)
	h.history.Record(skillsResult(1))
	h.history.Record(skillsResult(2))
	h.reducer.LoadHistory(h.state)

	h.reduce(t, FocusAction{Focus: FocusHistory})
	h.reduce(t, NavigateAction{Direction: "down"})
	h.reduce(t, ActivateAction{})

	if h.state.Results == nil || h.state.Results.Skills[0].ID != 1 {
		t.Fatalf("expected the older entry, got %+v", h.state.Results)
	}
}
