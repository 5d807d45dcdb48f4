package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/skillsearch/internal/config"
	"github.com/kk-code-lab/skillsearch/internal/identity"
	statepkg "github.com/kk-code-lab/skillsearch/internal/state"
	"github.com/kk-code-lab/skillsearch/internal/ui/input"
	renderui "github.com/kk-code-lab/skillsearch/internal/ui/render"
)

const (
	doubleClickThreshold = 300 * time.Millisecond
	animationInterval    = 80 * time.Millisecond
	startupTimeout       = 10 * time.Second
)

func NewApplication(cfg *config.Config) (*Application, error) {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	closers := []func() error{closeLog}
	fail := func(err error) (*Application, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	services, closeServices, err := newServices(ctx, cfg, logger)
	cancel()
	if err != nil {
		return fail(err)
	}
	closers = append(closers, closeServices)

	self, err := identity.FromToken(cfg.SessionToken)
	if err != nil {
		logger.WithError(err).Warn("session token ignored, continuing signed out")
		self = identity.Identity{}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fail(fmt.Errorf("open terminal: %w", err))
	}
	if err := screen.Init(); err != nil {
		return fail(fmt.Errorf("init terminal: %w", err))
	}
	screen.EnableMouse()

	state := newInitialState()
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 64)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	reducer := statepkg.NewStateReducer(services)
	renderer := renderui.NewRenderer(screen)
	inputHandler := input.NewInputHandler(actionCh)

	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: renderer,
		input:    inputHandler,
		actionCh: actionCh,
		logger:   logger,
		closers:  closers,
	}

	inputHandler.SetState(state)
	reducer.LoadHistory(state)
	app.handleAction(statepkg.IdentityChangedAction{Identity: self})
	logger.WithField("user_id", self.ID).Info("skillsearch started")
	return app, nil
}

func newInitialState() *statepkg.AppState {
	return &statepkg.AppState{
		Focus: statepkg.FocusQuery,
	}
}

func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationCh != nil {
			return
		}
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		if app.shouldAnimate() {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			animationCh = nil
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	stopAnimation()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		if !app.handleMouse(ev) {
			app.shouldQuit = true
		}
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary clicks to pane focus and row selection. A second
// click on the same row activates it.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.HelpVisible {
		return true
	}
	if ev.Buttons()&tcell.Button1 == 0 {
		return true
	}

	x, y := ev.Position()
	pane, idx, ok := renderui.PaneAt(app.state.ScreenWidth, app.state.ScreenHeight, app.state, x, y)
	if !ok {
		return true
	}

	if pane != app.state.Focus {
		app.actionCh <- statepkg.FocusAction{Focus: pane}
	}
	if idx < 0 {
		app.lastClickKey = ""
		return true
	}

	clickKey := fmt.Sprintf("%s-%d", pane, idx)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	app.actionCh <- statepkg.SelectIndexAction{Index: idx}
	if doubleClick {
		app.actionCh <- statepkg.ActivateAction{}
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// shouldAnimate keeps the spinner turning while a request is outstanding.
func (app *Application) shouldAnimate() bool {
	if app.state == nil {
		return false
	}
	return app.state.IsSearching || app.state.SuggestionsLoading
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.logger.WithError(err).WithField("action", fmt.Sprintf("%T", action)).Error("reduce failed")
	}
	return true
}
