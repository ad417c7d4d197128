package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/otdash/internal/api/apitest"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
)

var testNow = time.Date(2025, time.January, 20, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	deps    *Deps
	backend *apitest.Backend
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	exit    int
}

// setupCmd installs deps backed by a fake backend for one test.
func setupCmd(t *testing.T) *testEnv {
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

	env := &testEnv{backend: b, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	env.deps = &Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { env.exit = code },
		Now:      func() time.Time { return testNow },
		Services: services,
	}
	SetDeps(env.deps)
	t.Cleanup(ResetDeps)
	return env
}

// setupLoggedIn is setupCmd with a stored session.
func setupLoggedIn(t *testing.T) *testEnv {
	t.Helper()
	env := setupCmd(t)
	for _, kv := range [][2]string{
		{session.KeySessionExpires, env.backend.SessionExpires},
		{session.KeyToken, env.backend.Token},
		{session.KeyUsername, env.backend.Username},
	} {
		if err := env.deps.Services.Store.Set(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	return env
}

// execute runs the root command with args. Flag values are reset when the
// test ends because the command tree is shared between tests.
func execute(t *testing.T, env *testEnv, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	rootCmd.SetArgs(args)
	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)
	return rootCmd.ExecuteContext(t.Context())
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}
