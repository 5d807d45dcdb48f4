package render

import (
	"testing"

	"github.com/kk-code-lab/skillsearch/internal/history"
	"github.com/kk-code-lab/skillsearch/internal/search"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
)

func TestFormatResultSummary(t *testing.T) {
	two := &search.ResultSet{
		Skills: []search.SkillResult{{ID: 1}, {ID: 2}},
		Users:  []search.UserResult{{ID: 3}},
	}

	tests := []struct {
		name  string
		state *statepkg.AppState
		want  string
	}{
		{"idle", &statepkg.AppState{}, ""},
		{"searching", &statepkg.AppState{IsSearching: true, Results: two}, "searching…"},
		{"failed without results", &statepkg.AppState{HasSearched: true}, "no results"},
		{"empty", &statepkg.AppState{HasSearched: true, Results: &search.ResultSet{}}, "no results"},
		{"counts", &statepkg.AppState{HasSearched: true, Results: two}, "2 skills · 1 user"},
		{"from history", &statepkg.AppState{HasSearched: true, IsFromHistory: true, Results: two}, "2 skills · 1 user · from history"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatResultSummary(tt.state); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatSkillDetails(t *testing.T) {
	skill := search.SkillResult{
		OwnerDisplayName: "Eva",
		Price:            "15.50",
		Currency:         "EUR",
		District:         "Ruzinov",
		Location:         "Bratislava",
	}
	if got, want := formatSkillDetails(skill), "Eva · from 15.50 EUR · Ruzinov, Bratislava"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := formatSkillDetails(search.SkillResult{}); got != "" {
		t.Fatalf("expected empty details, got %q", got)
	}
}

func TestFormatHistoryLabel(t *testing.T) {
	entry := history.NewEntry(search.ResultSet{
		Skills: []search.SkillResult{
			{ID: 1, Category: "Plumber"},
			{ID: 2, Category: "Plumber"},
			{ID: 3, Category: "home", Subcategory: "Tiler"},
			{ID: 4, Category: "Painter"},
		},
	})
	if got, want := formatHistoryLabel(entry), "Plumber, Tiler +1"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	users := history.NewEntry(search.ResultSet{Users: []search.UserResult{{ID: 5, DisplayName: "Eva"}}})
	if got := formatHistoryLabel(users); got != "Eva" {
		t.Fatalf("expected user label, got %q", got)
	}
	if got := formatHistoryCounts(users); got != "0 skills · 1 user" {
		t.Fatalf("unexpected counts %q", got)
	}
}

func TestFormatFilterField(t *testing.T) {
	state := &statepkg.AppState{}
	state.SetPriceMin("10")

	if got := formatFilterField(state, statepkg.FilterOfferType); got != "type: all" {
		t.Fatalf("unexpected %q", got)
	}
	if got := formatFilterField(state, statepkg.FilterOnlyMyLocation); got != "only my location: off" {
		t.Fatalf("unexpected %q", got)
	}
	if got := formatFilterField(state, statepkg.FilterPriceMin); got != "price from: 10" {
		t.Fatalf("unexpected %q", got)
	}
	if got := formatFilterField(state, statepkg.FilterCountry); got != "country: –" {
		t.Fatalf("unexpected %q", got)
	}
}
