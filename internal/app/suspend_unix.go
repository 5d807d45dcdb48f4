//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// contSignals are delivered when the shell resumes a stopped job.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

func (app *Application) suspendToShell() {
	app.logger.Debug("suspending to shell")
	_ = app.screen.Suspend()
	// Signal this process only. The process group may include the shell
	// that started us, and stopping it breaks `fg`.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// resumeAfterStop reclaims the terminal after SIGCONT. Mouse reporting and
// the screen size are lost while stopped.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.WithError(err).Warn("terminal resume failed")
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
	app.logger.Debug("resumed from shell")
	return true
}
