package cmd

import (
	"github.com/xolan/otdash/internal/cli"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps = cli.Deps

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	cli.SetDeps(d)
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	cli.ResetDeps()
}

// ready returns the dependencies when the services started. Otherwise the
// init error has been reported and ok is false.
func ready() (d *Deps, ok bool) {
	d = cli.GetDeps()
	return d, cli.Ready(d)
}

// closeDeps releases the session manager and log file after a command.
func closeDeps() {
	_ = cli.GetDeps().Close()
}
