package state

import (
	"github.com/kk-code-lab/skillsearch/internal/identity"
	"github.com/kk-code-lab/skillsearch/internal/profile"
	"github.com/kk-code-lab/skillsearch/internal/search"
	"github.com/kk-code-lab/skillsearch/internal/suggest"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== QUERY ACTIONS =====

type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryDeleteAction struct{}
type QueryDeleteWordAction struct{}
type QueryClearAction struct{}
type QueryMoveCursorAction struct {
	Direction string // "left", "right", "word-left", "word-right", "home", "end"
}
type SetQueryAction struct {
	Query string
}

// ===== FILTER ACTIONS =====

type SetOfferTypeAction struct {
	OfferType search.OfferType
}
type CycleOfferTypeAction struct{}
type ToggleOnlyMyLocationAction struct{}
type SetPriceMinAction struct {
	Value string
}
type SetPriceMaxAction struct {
	Value string
}
type SetCountryAction struct {
	Value string
}

// FilterCharAction and FilterBackspaceAction edit the text filter field
// selected in the filter pane.
type FilterCharAction struct {
	Char rune
}
type FilterBackspaceAction struct{}

// ===== SEARCH ACTIONS =====

type SearchAction struct{}
type ResetAction struct{}

// SearchCompletedAction carries a finished request back into the loop.
type SearchCompletedAction struct {
	Completion search.Completion
}

// ===== NAVIGATION ACTIONS =====

type FocusAction struct {
	Focus Focus
}
type FocusNextAction struct{}
type FocusPrevAction struct{}
type NavigateAction struct {
	Direction string // "up", "down", "home", "end", "page-up", "page-down"
}
type SelectIndexAction struct {
	Index int
}

// ActivateAction is Enter on the focused pane.
type ActivateAction struct{}

// ===== HISTORY ACTIONS =====

type HistoryActivateAction struct {
	Index int
}

// ProfilesRefreshedAction carries profiles fetched after a history entry
// was opened. Token identifies that activation.
type ProfilesRefreshedAction struct {
	Token    int
	Profiles []profile.Profile
}

// ===== SUGGESTION ACTIONS =====

type SuggestionsLoadAction struct{}
type SuggestionsLoadedAction struct {
	Token       int
	Owner       int64
	Suggestions []suggest.Candidate
	Err         error
}
type SuggestionActivateAction struct {
	Index int
}

// ===== SESSION ACTIONS =====

type IdentityChangedAction struct {
	Identity identity.Identity
}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}

// SuspendAction hands the terminal back to the shell (Ctrl+Z).
type SuspendAction struct{}
