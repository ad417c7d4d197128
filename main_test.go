package main

import (
	"os"
	"testing"

	"github.com/xolan/otdash/cmd"
)

// isolate points the config directory at a temp dir and sets the arguments
// for one run.
func isolate(t *testing.T, args ...string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	originalArgs := os.Args
	os.Args = append([]string{"otdash"}, args...)
	t.Cleanup(func() {
		os.Args = originalArgs
		cmd.ResetDeps()
	})
}

func TestRun_Version(t *testing.T) {
	isolate(t, "--version")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	isolate(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	isolate(t, "--version")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
