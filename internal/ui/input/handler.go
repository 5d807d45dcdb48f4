package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) focus() statepkg.Focus {
	if ih.state == nil {
		return statepkg.FocusQuery
	}
	return ih.state.Focus
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible
	focus := ih.focus()
	inQuery := focus == statepkg.FocusQuery
	inFilters := focus == statepkg.FocusFilters

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			if r := ev.Rune(); r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	// Global chords work in every pane.
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlR:
		ih.actionChan <- statepkg.ResetAction{}
		return true
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	case tcell.KeyCtrlO:
		ih.actionChan <- statepkg.CycleOfferTypeAction{}
		return true
	case tcell.KeyCtrlL:
		ih.actionChan <- statepkg.ToggleOnlyMyLocationAction{}
		return true
	case tcell.KeyCtrlG:
		ih.actionChan <- statepkg.SuggestionsLoadAction{}
		ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusSuggestions}
		return true
	case tcell.KeyTab:
		ih.actionChan <- statepkg.FocusNextAction{}
		return true
	case tcell.KeyBacktab:
		ih.actionChan <- statepkg.FocusPrevAction{}
		return true
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.ActivateAction{}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		switch {
		case inQuery && ih.state != nil && ih.state.Query != "":
			ih.actionChan <- statepkg.QueryClearAction{}
		case inQuery:
			ih.actionChan <- statepkg.ResetAction{}
		default:
			ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusQuery}
		}
		return true

	case tcell.KeyUp:
		if !inQuery {
			ih.actionChan <- statepkg.NavigateAction{Direction: "up"}
		}
		return true

	case tcell.KeyDown:
		if inQuery {
			ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusResults}
		} else {
			ih.actionChan <- statepkg.NavigateAction{Direction: "down"}
		}
		return true

	case tcell.KeyPgUp:
		if !inQuery {
			ih.actionChan <- statepkg.NavigateAction{Direction: "page-up"}
		}
		return true

	case tcell.KeyPgDn:
		if !inQuery {
			ih.actionChan <- statepkg.NavigateAction{Direction: "page-down"}
		}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		if inQuery {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "home"}
		} else {
			ih.actionChan <- statepkg.NavigateAction{Direction: "home"}
		}
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		if inQuery {
			ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "end"}
		} else {
			ih.actionChan <- statepkg.NavigateAction{Direction: "end"}
		}
		return true

	case tcell.KeyLeft, tcell.KeyRight:
		ih.handleHorizontal(ev, inQuery, inFilters)
		return true

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if inQuery {
			if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
				ih.actionChan <- statepkg.QueryDeleteWordAction{}
			} else {
				ih.actionChan <- statepkg.QueryBackspaceAction{}
			}
		} else if inFilters {
			ih.actionChan <- statepkg.FilterBackspaceAction{}
		}
		return true

	case tcell.KeyCtrlW:
		if inQuery {
			ih.actionChan <- statepkg.QueryDeleteWordAction{}
		}
		return true

	case tcell.KeyDelete:
		if inQuery {
			ih.actionChan <- statepkg.QueryDeleteAction{}
		}
		return true

	case tcell.KeyRune:
		return ih.handleRune(ev.Rune(), focus)
	}

	return true
}

func (ih *InputHandler) handleHorizontal(ev *tcell.EventKey, inQuery, inFilters bool) {
	right := ev.Key() == tcell.KeyRight
	if inQuery {
		direction := "left"
		if right {
			direction = "right"
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			direction = "word-" + direction
		}
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: direction}
		return
	}
	if !inFilters || ih.state == nil {
		return
	}
	switch ih.state.FilterField {
	case statepkg.FilterOfferType:
		next := ih.state.Filters.OfferType.Next()
		if !right {
			next = next.Next()
		}
		ih.actionChan <- statepkg.SetOfferTypeAction{OfferType: next}
	case statepkg.FilterOnlyMyLocation:
		ih.actionChan <- statepkg.ToggleOnlyMyLocationAction{}
	}
}

func (ih *InputHandler) handleRune(r rune, focus statepkg.Focus) bool {
	switch focus {
	case statepkg.FocusQuery:
		ih.actionChan <- statepkg.QueryCharAction{Char: r}
		return true

	case statepkg.FocusFilters:
		field := statepkg.FilterOfferType
		if ih.state != nil {
			field = ih.state.FilterField
		}
		switch {
		case field.Editable() && !unicode.IsControl(r):
			ih.actionChan <- statepkg.FilterCharAction{Char: r}
		case field == statepkg.FilterOfferType && r == ' ':
			ih.actionChan <- statepkg.CycleOfferTypeAction{}
		case field == statepkg.FilterOnlyMyLocation && r == ' ':
			ih.actionChan <- statepkg.ToggleOnlyMyLocationAction{}
		}
		return true
	}

	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	case '/':
		ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusQuery}
	case 'j':
		ih.actionChan <- statepkg.NavigateAction{Direction: "down"}
	case 'k':
		ih.actionChan <- statepkg.NavigateAction{Direction: "up"}
	case 'g':
		ih.actionChan <- statepkg.NavigateAction{Direction: "home"}
	case 'G':
		ih.actionChan <- statepkg.NavigateAction{Direction: "end"}
	case 'h':
		ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusHistory}
	case 's':
		ih.actionChan <- statepkg.SuggestionsLoadAction{}
		ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusSuggestions}
	case 'r':
		ih.actionChan <- statepkg.FocusAction{Focus: statepkg.FocusResults}
	}
	return true
}
