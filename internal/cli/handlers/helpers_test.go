package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/otdash/internal/api/apitest"
	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
)

var testNow = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

func setupTestDeps(t *testing.T) (*cli.Deps, *apitest.Backend, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	b := apitest.New(t)
	tmpDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.APIBaseURL = b.URL()
	cfg.HealthURL = b.HealthURL()
	cfg.ExportDir = filepath.Join(tmpDir, "exports")

	services := service.NewServicesWith(service.Options{
		ConfigPath:  filepath.Join(tmpDir, config.ConfigFile),
		SessionPath: filepath.Join(tmpDir, session.SessionFile),
		Config:      cfg,
	})
	t.Cleanup(services.Close)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Now:      func() time.Time { return testNow },
		Services: services,
	}

	return deps, b, stdout, stderr, &exitCode
}

// setupLoggedIn is setupTestDeps with a stored session.
func setupLoggedIn(t *testing.T) (*cli.Deps, *apitest.Backend, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, b, stdout, stderr, exitCode := setupTestDeps(t)
	store := deps.Services.Store
	for _, kv := range [][2]string{
		{session.KeySessionExpires, b.SessionExpires},
		{session.KeyToken, b.Token},
		{session.KeyUsername, b.Username},
	} {
		if err := store.Set(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	return deps, b, stdout, stderr, exitCode
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}
