package state

import (
	"context"
	"io"

	"github.com/kk-code-lab/skillsearch/internal/history"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/kk-code-lab/skillsearch/internal/suggest"
	"github.com/sirupsen/logrus"
)

// Services are the collaborators the reducer drives. Any of them may be nil;
// the matching actions then do nothing.
type Services struct {
	Coordinator *search.Coordinator
	History     *history.Store
	Suggestions *suggest.Engine
	Logger      logrus.FieldLogger
}

// ===== REDUCER =====

// StateReducer applies actions to state. It is only ever called from the
// application loop, so the coordinator and history store it drives see a
// single goroutine.
type StateReducer struct {
	services         Services
	logger           logrus.FieldLogger
	historyToken     int // current history activation, for profile refreshes
	suggestionsToken int // current suggestion load
}

// NewStateReducer creates a new reducer
func NewStateReducer(services Services) *StateReducer {
	logger := services.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &StateReducer{services: services, logger: logger}
}

// LoadHistory copies the stored history into state for display.
func (r *StateReducer) LoadHistory(state *AppState) {
	r.syncHistory(state)
}

// Reduce applies an action to state and returns new state
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== QUERY =====

	case QueryCharAction:
		state.Query, state.CursorPos = insertRune(state.Query, state.CursorPos, a.Char)
		return state, nil

	case QueryBackspaceAction:
		state.Query, state.CursorPos = deleteBefore(state.Query, state.CursorPos)
		return state, nil

	case QueryDeleteAction:
		state.Query, state.CursorPos = deleteAt(state.Query, state.CursorPos)
		return state, nil

	case QueryDeleteWordAction:
		state.Query, state.CursorPos = deleteWordBefore(state.Query, state.CursorPos)
		return state, nil

	case QueryMoveCursorAction:
		state.CursorPos = moveCursor(state.Query, state.CursorPos, a.Direction)
		return state, nil

	case QueryClearAction:
		state.SetQuery("")
		return state, nil

	case SetQueryAction:
		state.SetQuery(a.Query)
		return state, nil

	// ===== FILTERS =====

	case SetOfferTypeAction:
		state.SetOfferType(a.OfferType)
		return state, nil

	case CycleOfferTypeAction:
		state.SetOfferType(state.Filters.OfferType.Next())
		return state, nil

	case ToggleOnlyMyLocationAction:
		state.SetOnlyMyLocation(!state.Filters.OnlyMyLocation)
		return state, nil

	case SetPriceMinAction:
		state.SetPriceMin(a.Value)
		return state, nil

	case SetPriceMaxAction:
		state.SetPriceMax(a.Value)
		return state, nil

	case SetCountryAction:
		state.SetCountry(a.Value)
		return state, nil

	case FilterCharAction:
		if !state.FilterField.Editable() {
			return state, nil
		}
		value := state.FilterValue(state.FilterField)
		value, _ = insertRune(value, len([]rune(value)), a.Char)
		state.setFilterValue(state.FilterField, value)
		return state, nil

	case FilterBackspaceAction:
		if !state.FilterField.Editable() {
			return state, nil
		}
		value := state.FilterValue(state.FilterField)
		value, _ = deleteBefore(value, len([]rune(value)))
		state.setFilterValue(state.FilterField, value)
		return state, nil

	// ===== SEARCH =====

	case SearchAction:
		r.search(state)
		return state, nil

	case SearchCompletedAction:
		if r.services.Coordinator == nil {
			return state, nil
		}
		r.applyOutcome(state, r.services.Coordinator.Complete(a.Completion))
		return state, nil

	case ResetAction:
		if r.services.Coordinator != nil {
			r.services.Coordinator.Cancel()
		}
		r.historyToken++
		state.Reset()
		return state, nil

	// ===== NAVIGATION =====

	case FocusAction:
		state.Focus = a.Focus
		return state, nil

	case FocusNextAction:
		state.Focus = stepFocus(state.Focus, 1)
		return state, nil

	case FocusPrevAction:
		state.Focus = stepFocus(state.Focus, -1)
		return state, nil

	case NavigateAction:
		r.navigate(state, a.Direction)
		return state, nil

	case SelectIndexAction:
		idx := state.listIndex(state.Focus)
		if idx == nil {
			return state, nil
		}
		if a.Index >= 0 && a.Index < state.listLen(state.Focus) {
			*idx = a.Index
		}
		return state, nil

	case ActivateAction:
		switch state.Focus {
		case FocusQuery, FocusFilters:
			r.search(state)
		case FocusHistory:
			r.activateHistory(state, state.HistoryIndex)
		case FocusSuggestions:
			r.activateSuggestion(state, state.SuggestionIndex)
		}
		return state, nil

	// ===== HISTORY =====

	case HistoryActivateAction:
		r.activateHistory(state, a.Index)
		return state, nil

	case ProfilesRefreshedAction:
		r.applyRefreshedProfiles(state, a)
		return state, nil

	// ===== SUGGESTIONS =====

	case SuggestionsLoadAction:
		r.loadSuggestions(state)
		return state, nil

	case SuggestionsLoadedAction:
		if a.Token != r.suggestionsToken || a.Owner != state.Identity.ID {
			return state, nil
		}
		state.SuggestionsLoading = false
		if a.Err != nil {
			// Suggestions fail open: keep whatever was shown before.
			return state, nil
		}
		state.Suggestions = a.Suggestions
		state.SuggestionsLoaded = true
		state.clampSelections()
		return state, nil

	case SuggestionActivateAction:
		r.activateSuggestion(state, a.Index)
		return state, nil

	// ===== SESSION =====

	case IdentityChangedAction:
		r.changeIdentity(state, a)
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		state.HelpVisible = false
		return state, nil
	}

	return state, nil
}

func stepFocus(current Focus, delta int) Focus {
	idx := 0
	for i, f := range focusOrder {
		if f == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	return focusOrder[idx]
}

func (r *StateReducer) navigate(state *AppState, direction string) {
	idx := state.listIndex(state.Focus)
	n := state.listLen(state.Focus)
	if idx == nil || n == 0 {
		return
	}

	page := state.ListRows()
	switch direction {
	case "up":
		*idx--
	case "down":
		*idx++
	case "home":
		*idx = 0
	case "end":
		*idx = n - 1
	case "page-up":
		*idx -= page
	case "page-down":
		*idx += page
	}
	if *idx < 0 {
		*idx = 0
	}
	if *idx >= n {
		*idx = n - 1
	}
}

// ===== SEARCH =====

func (r *StateReducer) search(state *AppState) {
	coordinator := r.services.Coordinator
	if coordinator == nil {
		return
	}

	dispatch := state.getDispatch()
	deliver := func(done search.Completion) {
		if dispatch != nil {
			dispatch(SearchCompletedAction{Completion: done})
		}
	}

	r.historyToken++
	r.applyOutcome(state, coordinator.Search(state.Query, state.Filters, deliver))
}

func (r *StateReducer) applyOutcome(state *AppState, outcome search.Outcome) {
	switch outcome.Kind {
	case search.OutcomeNone:
		return

	case search.OutcomePending:
		state.IsSearching = true
		return

	case search.OutcomeResults:
		results := outcome.Results
		state.Results = &results
		state.Error = ""
		state.Warning = ""
		state.ResultIndex = 0
		r.syncHistory(state)

	case search.OutcomeRateLimited:
		state.Warning = outcome.Message
		state.Error = ""

	case search.OutcomeFailed:
		state.Error = outcome.Message
		state.Warning = ""
	}

	state.IsSearching = false
	state.HasSearched = true
	state.IsFromHistory = false
}

// ===== HISTORY =====

func (r *StateReducer) syncHistory(state *AppState) {
	if r.services.History == nil {
		state.History = nil
		return
	}
	state.History = r.services.History.Entries()
	state.clampSelections()
}

func (r *StateReducer) activateHistory(state *AppState, idx int) {
	store := r.services.History
	if store == nil {
		return
	}

	r.historyToken++
	token := r.historyToken
	dispatch := state.getDispatch()
	deliver := func(profiles []profile.Profile) {
		if dispatch != nil {
			dispatch(ProfilesRefreshedAction{Token: token, Profiles: profiles})
		}
	}

	display, ok := store.Activate(idx, state.Identity, deliver)
	if !ok {
		return
	}

	// Opening an entry is a newer user intent than any pending search.
	if r.services.Coordinator != nil {
		r.services.Coordinator.Cancel()
	}

	state.Results = &display
	state.IsSearching = false
	state.HasSearched = true
	state.IsFromHistory = true
	state.Error = ""
	state.Warning = ""
	state.ResultIndex = 0
	state.HistoryIndex = idx
	state.Focus = FocusResults
}

func (r *StateReducer) applyRefreshedProfiles(state *AppState, a ProfilesRefreshedAction) {
	if r.services.History != nil && r.services.History.ApplyProfiles(a.Profiles) {
		r.syncHistory(state)
	}

	if a.Token != r.historyToken || !state.IsFromHistory || state.Results == nil {
		return
	}
	changed := false
	for _, p := range a.Profiles {
		if p.ID == state.Identity.ID && state.Identity.SignedIn() {
			continue
		}
		if state.Results.ApplyProfile(p.ID, p.Name(), p.Slug) {
			changed = true
		}
	}
	if changed {
		r.logger.WithField("profiles", len(a.Profiles)).Debug("history results refreshed")
	}
}

// ===== SUGGESTIONS =====

func (r *StateReducer) loadSuggestions(state *AppState) {
	engine := r.services.Suggestions
	if engine == nil {
		return
	}

	r.suggestionsToken++
	token := r.suggestionsToken
	self := state.Identity

	if cached, ok := engine.Cached(self.ID); ok {
		state.Suggestions = cached
		state.SuggestionsLoaded = true
		state.SuggestionsLoading = false
		state.clampSelections()
		return
	}

	dispatch := state.getDispatch()
	if dispatch == nil {
		return
	}
	state.SuggestionsLoading = true
	go func() {
		candidates, err := engine.Load(context.Background(), self)
		dispatch(SuggestionsLoadedAction{Token: token, Owner: self.ID, Suggestions: candidates, Err: err})
	}()
}

func (r *StateReducer) activateSuggestion(state *AppState, idx int) {
	if idx < 0 || idx >= len(state.Suggestions) {
		return
	}
	state.SuggestionIndex = idx
	state.SetQuery(state.Suggestions[idx].Skill.Title())
	state.Focus = FocusResults
	r.search(state)
}

// ===== SESSION =====

func (r *StateReducer) changeIdentity(state *AppState, a IdentityChangedAction) {
	prev := state.Identity
	next := a.Identity
	state.Identity = next
	if prev.SameDisplay(next) {
		return
	}

	// Cached results may carry this user's old name or slug.
	if r.services.Coordinator != nil {
		r.services.Coordinator.Invalidate()
	}
	if r.services.History != nil && r.services.History.ApplyIdentity(next) {
		r.syncHistory(state)
	}
	if state.Results != nil && next.SignedIn() {
		state.Results.ApplyProfile(next.ID, next.Name(), next.Slug)
	}

	if prev.ID == next.ID {
		return
	}
	r.suggestionsToken++
	if r.services.Suggestions != nil {
		r.services.Suggestions.Reset()
	}
	state.Suggestions = nil
	state.SuggestionsLoaded = false
	state.SuggestionsLoading = false
	state.SuggestionIndex = 0
	r.loadSuggestions(state)
}
