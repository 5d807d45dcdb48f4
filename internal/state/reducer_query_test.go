package state

import (
	"testing"

	"github.com/kk-code-lab/skillsearch/internal/search"
)

// ===== QUERY EDITING TESTS =====

func TestQueryEditing(t *testing.T) {
	state := &AppState{}
	reducer := NewStateReducer(Services{})

	for _, ch := range "maľba" {
		if _, err := reducer.Reduce(state, QueryCharAction{Char: ch}); err != nil {
			t.Fatalf("Failed to type: %v", err)
		}
	}
	if state.Query != "maľba" || state.CursorPos != 5 {
		t.Fatalf("expected query 'maľba' at 5, got %q at %d", state.Query, state.CursorPos)
	}

	_, _ = reducer.Reduce(state, QueryMoveCursorAction{Direction: "left"})
	_, _ = reducer.Reduce(state, QueryBackspaceAction{})
	if state.Query != "maľa" || state.CursorPos != 3 {
		t.Fatalf("expected 'maľa' at 3, got %q at %d", state.Query, state.CursorPos)
	}

	_, _ = reducer.Reduce(state, QueryMoveCursorAction{Direction: "home"})
	_, _ = reducer.Reduce(state, QueryDeleteAction{})
	if state.Query != "aľa" || state.CursorPos != 0 {
		t.Fatalf("expected 'aľa' at 0, got %q at %d", state.Query, state.CursorPos)
	}

	_, _ = reducer.Reduce(state, QueryBackspaceAction{})
	if state.Query != "aľa" {
		t.Fatalf("backspace at start must be a no-op, got %q", state.Query)
	}
}

func TestQueryDeleteWord(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		cursor     int
		wantQuery  string
		wantCursor int
	}{
		{"end of second word", "oprava bicyklov", 15, "oprava ", 7},
		{"trailing spaces", "oprava   ", 9, "", 0},
		{"middle", "oprava bicyklov", 6, " bicyklov", 0},
		{"start", "oprava", 0, "oprava", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &AppState{Query: tt.query, CursorPos: tt.cursor}
			reducer := NewStateReducer(Services{})
			if _, err := reducer.Reduce(state, QueryDeleteWordAction{}); err != nil {
				t.Fatalf("Reduce failed: %v", err)
			}
			if state.Query != tt.wantQuery || state.CursorPos != tt.wantCursor {
				t.Errorf("got %q at %d, want %q at %d", state.Query, state.CursorPos, tt.wantQuery, tt.wantCursor)
			}
		})
	}
}

func TestQueryWordMovement(t *testing.T) {
	state := &AppState{Query: "byt v Košiciach", CursorPos: 0}
	reducer := NewStateReducer(Services{})

	_, _ = reducer.Reduce(state, QueryMoveCursorAction{Direction: "word-right"})
	if state.CursorPos != 3 {
		t.Fatalf("expected cursor 3, got %d", state.CursorPos)
	}
	_, _ = reducer.Reduce(state, QueryMoveCursorAction{Direction: "end"})
	_, _ = reducer.Reduce(state, QueryMoveCursorAction{Direction: "word-left"})
	if state.CursorPos != 6 {
		t.Fatalf("expected cursor 6, got %d", state.CursorPos)
	}
}

// ===== FILTER TESTS =====

func TestCycleOfferType(t *testing.T) {
	state := &AppState{}
	reducer := NewStateReducer(Services{})

	want := []search.OfferType{search.OfferTypeOffer, search.OfferTypeSeeking, search.OfferTypeAll}
	for i, w := range want {
		_, _ = reducer.Reduce(state, CycleOfferTypeAction{})
		if state.Filters.OfferType != w {
			t.Fatalf("step %d: expected %q, got %q", i, w, state.Filters.OfferType)
		}
	}
}

func TestFilterFieldEditing(t *testing.T) {
	state := &AppState{Focus: FocusFilters}
	reducer := NewStateReducer(Services{})

	_, _ = reducer.Reduce(state, FilterCharAction{Char: 'x'})
	if state.Filters != (search.FilterSet{}) {
		t.Fatalf("offer type row is not editable, got %+v", state.Filters)
	}

	_, _ = reducer.Reduce(state, NavigateAction{Direction: "down"})
	_, _ = reducer.Reduce(state, NavigateAction{Direction: "down"})
	if state.FilterField != FilterPriceMin {
		t.Fatalf("expected price-min row, got %v", state.FilterField)
	}
	for _, ch := range "15.5" {
		_, _ = reducer.Reduce(state, FilterCharAction{Char: ch})
	}
	_, _ = reducer.Reduce(state, FilterBackspaceAction{})
	if state.Filters.PriceMin != "15." {
		t.Fatalf("expected price min '15.', got %q", state.Filters.PriceMin)
	}

	_, _ = reducer.Reduce(state, NavigateAction{Direction: "end"})
	if state.FilterField != FilterCountry {
		t.Fatalf("expected country row, got %v", state.FilterField)
	}
	_, _ = reducer.Reduce(state, FilterCharAction{Char: 'S'})
	_, _ = reducer.Reduce(state, FilterCharAction{Char: 'K'})
	if state.Filters.Country != "SK" {
		t.Fatalf("expected country SK, got %q", state.Filters.Country)
	}
}

// ===== NAVIGATION TESTS =====

func TestNavigateResultsClamps(t *testing.T) {
	results := search.ResultSet{
		Skills: []search.SkillResult{{ID: 1}, {ID: 2}},
		Users:  []search.UserResult{{ID: 3}},
	}
	state := &AppState{Focus: FocusResults, Results: &results, ScreenHeight: 24}
	reducer := NewStateReducer(Services{})

	_, _ = reducer.Reduce(state, NavigateAction{Direction: "up"})
	if state.ResultIndex != 0 {
		t.Fatalf("expected 0, got %d", state.ResultIndex)
	}
	_, _ = reducer.Reduce(state, NavigateAction{Direction: "page-down"})
	if state.ResultIndex != 2 {
		t.Fatalf("expected 2, got %d", state.ResultIndex)
	}
	if user, ok := state.SelectedUser(); !ok || user.ID != 3 {
		t.Fatalf("expected user 3 selected, got %+v %v", user, ok)
	}
	if _, ok := state.SelectedSkill(); ok {
		t.Fatal("no skill should be selected on a user row")
	}
	_, _ = reducer.Reduce(state, NavigateAction{Direction: "down"})
	if state.ResultIndex != 2 {
		t.Fatalf("expected to stay at 2, got %d", state.ResultIndex)
	}
}

func TestNavigateWithoutRowsIsNoop(t *testing.T) {
	state := &AppState{Focus: FocusSuggestions}
	reducer := NewStateReducer(Services{})
	_, _ = reducer.Reduce(state, NavigateAction{Direction: "down"})
	if state.SuggestionIndex != 0 {
		t.Fatalf("expected 0, got %d", state.SuggestionIndex)
	}
}

func TestFocusCycle(t *testing.T) {
	state := &AppState{}
	reducer := NewStateReducer(Services{})

	want := []Focus{FocusFilters, FocusResults, FocusHistory, FocusSuggestions, FocusQuery}
	for _, w := range want {
		_, _ = reducer.Reduce(state, FocusNextAction{})
		if state.Focus != w {
			t.Fatalf("expected %v, got %v", w, state.Focus)
		}
	}
	_, _ = reducer.Reduce(state, FocusPrevAction{})
	if state.Focus != FocusSuggestions {
		t.Fatalf("expected wrap to suggestions, got %v", state.Focus)
	}
}

func TestSearchWithoutServicesIsNoop(t *testing.T) {
	state := &AppState{Query: "x"}
	reducer := NewStateReducer(Services{})
	if _, err := reducer.Reduce(state, SearchAction{}); err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if state.IsSearching || state.HasSearched {
		t.Fatal("no coordinator, no search")
	}
}
