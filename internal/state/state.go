package state

import (
	"strings"

	"github.com/kk-code-lab/skillsearch/internal/history"
	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/kk-code-lab/skillsearch/internal/suggest"
)

// Focus is the pane receiving keyboard input.
type Focus int

const (
	FocusQuery Focus = iota
	FocusFilters
	FocusResults
	FocusHistory
	FocusSuggestions
)

var focusOrder = []Focus{FocusQuery, FocusFilters, FocusResults, FocusHistory, FocusSuggestions}

func (f Focus) String() string {
	switch f {
	case FocusFilters:
		return "filters"
	case FocusResults:
		return "results"
	case FocusHistory:
		return "history"
	case FocusSuggestions:
		return "suggestions"
	default:
		return "query"
	}
}

// FilterField is the filter row selected in the filter pane.
type FilterField int

const (
	FilterOfferType FilterField = iota
	FilterOnlyMyLocation
	FilterPriceMin
	FilterPriceMax
	FilterCountry
	filterFieldCount
)

func (f FilterField) String() string {
	switch f {
	case FilterOnlyMyLocation:
		return "only my location"
	case FilterPriceMin:
		return "price from"
	case FilterPriceMax:
		return "price to"
	case FilterCountry:
		return "country"
	default:
		return "type"
	}
}

// Editable reports whether the field takes typed text.
func (f FilterField) Editable() bool {
	return f == FilterPriceMin || f == FilterPriceMax || f == FilterCountry
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Query
	Query     string
	CursorPos int
	Filters   search.FilterSet

	// Search outcome
	Results       *search.ResultSet // nil until the first search or after Reset
	IsSearching   bool
	HasSearched   bool
	IsFromHistory bool
	Error         string
	Warning       string

	// Panes
	Focus           Focus
	FilterField     FilterField
	ResultIndex     int
	HistoryIndex    int
	SuggestionIndex int

	// History snapshot for display, newest first
	History []history.Entry

	// Suggestions
	Identity           identity.Identity
	Suggestions        []suggest.Candidate
	SuggestionsLoading bool
	SuggestionsLoaded  bool

	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error

	dispatchAction func(Action)
}

// ===== HELPER METHODS =====

func (s *AppState) setDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.setDispatch(fn)
}

// ===== QUERY STATE =====
// Setters only assign fields. Searching is always a separate action.

// SetQuery replaces the query text and moves the cursor to its end.
func (s *AppState) SetQuery(query string) {
	s.Query = query
	s.CursorPos = len([]rune(query))
}

// CleanQuery is the query as it will be sent.
func (s *AppState) CleanQuery() string {
	return strings.TrimSpace(s.Query)
}

func (s *AppState) SetOfferType(t search.OfferType) { s.Filters.OfferType = t }
func (s *AppState) SetOnlyMyLocation(v bool)        { s.Filters.OnlyMyLocation = v }
func (s *AppState) SetPriceMin(v string)            { s.Filters.PriceMin = v }
func (s *AppState) SetPriceMax(v string)            { s.Filters.PriceMax = v }
func (s *AppState) SetCountry(v string)             { s.Filters.Country = v }

// FilterValue returns the text of an editable filter field.
func (s *AppState) FilterValue(field FilterField) string {
	switch field {
	case FilterPriceMin:
		return s.Filters.PriceMin
	case FilterPriceMax:
		return s.Filters.PriceMax
	case FilterCountry:
		return s.Filters.Country
	default:
		return ""
	}
}

func (s *AppState) setFilterValue(field FilterField, value string) {
	switch field {
	case FilterPriceMin:
		s.SetPriceMin(value)
	case FilterPriceMax:
		s.SetPriceMax(value)
	case FilterCountry:
		s.SetCountry(value)
	}
}

// Reset clears the query and every outcome flag and returns focus to the
// query field. Filters are kept.
func (s *AppState) Reset() {
	s.Query = ""
	s.CursorPos = 0
	s.Results = nil
	s.IsSearching = false
	s.HasSearched = false
	s.IsFromHistory = false
	s.Error = ""
	s.Warning = ""
	s.ResultIndex = 0
	s.Focus = FocusQuery
}

// ResultCount is the number of selectable result rows (skills, then users).
func (s *AppState) ResultCount() int {
	if s.Results == nil {
		return 0
	}
	return len(s.Results.Skills) + len(s.Results.Users)
}

// SelectedSkill returns the skill under the result cursor, if any.
func (s *AppState) SelectedSkill() (search.SkillResult, bool) {
	if s.Results == nil || s.ResultIndex < 0 || s.ResultIndex >= len(s.Results.Skills) {
		return search.SkillResult{}, false
	}
	return s.Results.Skills[s.ResultIndex], true
}

// SelectedUser returns the user under the result cursor, if any.
func (s *AppState) SelectedUser() (search.UserResult, bool) {
	if s.Results == nil {
		return search.UserResult{}, false
	}
	idx := s.ResultIndex - len(s.Results.Skills)
	if idx < 0 || idx >= len(s.Results.Users) {
		return search.UserResult{}, false
	}
	return s.Results.Users[idx], true
}

func (s *AppState) listLen(focus Focus) int {
	switch focus {
	case FocusResults:
		return s.ResultCount()
	case FocusHistory:
		return len(s.History)
	case FocusSuggestions:
		return len(s.Suggestions)
	case FocusFilters:
		return int(filterFieldCount)
	default:
		return 0
	}
}

func (s *AppState) listIndex(focus Focus) *int {
	switch focus {
	case FocusResults:
		return &s.ResultIndex
	case FocusHistory:
		return &s.HistoryIndex
	case FocusSuggestions:
		return &s.SuggestionIndex
	case FocusFilters:
		return (*int)(&s.FilterField)
	default:
		return nil
	}
}

func (s *AppState) clampSelections() {
	for _, focus := range []Focus{FocusResults, FocusHistory, FocusSuggestions} {
		idx := s.listIndex(focus)
		n := s.listLen(focus)
		if *idx >= n {
			*idx = n - 1
		}
		if *idx < 0 {
			*idx = 0
		}
	}
}

// ListRows is the number of list rows that fit on screen below the query,
// filter and status lines.
func (s *AppState) ListRows() int {
	rows := s.ScreenHeight - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}
