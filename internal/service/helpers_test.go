package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xolan/otdash/internal/api/apitest"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/session"
)

// newTestServices wires Services against a fake backend with file state in
// a temp dir.
func newTestServices(t *testing.T) (*Services, *apitest.Backend) {
	t.Helper()
	b := apitest.New(t)
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.APIBaseURL = b.URL()
	cfg.HealthURL = b.HealthURL()
	cfg.ExportDir = filepath.Join(dir, "exports")

	svc := NewServicesWith(Options{
		ConfigPath:  filepath.Join(dir, config.ConfigFile),
		SessionPath: filepath.Join(dir, session.SessionFile),
		Config:      cfg,
	})
	t.Cleanup(svc.Close)
	return svc, b
}

// loginTestServices is newTestServices with a stored session.
func loginTestServices(t *testing.T) (*Services, *apitest.Backend) {
	t.Helper()
	svc, b := newTestServices(t)
	require.NoError(t, svc.Store.Set(session.KeySessionExpires, b.SessionExpires))
	require.NoError(t, svc.Store.Set(session.KeyToken, b.Token))
	require.NoError(t, svc.Store.Set(session.KeyUsername, b.Username))
	return svc, b
}
