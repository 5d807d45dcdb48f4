//go:build windows

package app

import "os"

// Windows has no job control, so Ctrl+Z and SIGCONT do nothing.
func contSignals() []os.Signal {
	return nil
}

func (app *Application) suspendToShell() {
	app.logger.Debug("suspend is not supported on windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
