package app

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
	inputui "github.com/kk-code-lab/skillsearch/internal/ui/input"
	renderui "github.com/kk-code-lab/skillsearch/internal/ui/render"
	"github.com/sirupsen/logrus"
)

// Application represents the running app.
type Application struct {
	screen        tcell.Screen
	state         *statepkg.AppState
	reducer       *statepkg.StateReducer
	renderer      *renderui.Renderer
	input         *inputui.InputHandler
	actionCh      chan statepkg.Action
	logger        logrus.FieldLogger
	closers       []func() error
	shouldQuit    bool
	lastClickKey  string
	lastClickTime time.Time
}

// Close releases the history backend and the log file. Background requests
// still in flight are abandoned.
func (app *Application) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	if app.screen != nil {
		app.screen.Fini()
	}
	return errors.Join(errs...)
}
