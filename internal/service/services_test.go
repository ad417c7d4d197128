package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/otdash/internal/session"
)

func TestNewServicesWith(t *testing.T) {
	svc, b := newTestServices(t)

	assert.NotNil(t, svc.Auth)
	assert.NotNil(t, svc.Overtime)
	assert.NotNil(t, svc.Report)
	assert.NotNil(t, svc.Export)
	assert.NotNil(t, svc.Notify)
	assert.NotNil(t, svc.Settings)
	assert.NotNil(t, svc.Directory)
	assert.NotNil(t, svc.Config)
	assert.Equal(t, b.URL(), svc.Client.BaseURL())
	assert.Equal(t, session.Idle, svc.Session.State())
}

func TestStartSession_SchedulesStoredExpiry(t *testing.T) {
	svc, b := loginTestServices(t)

	svc.StartSession()
	assert.Equal(t, session.Scheduled, svc.Session.State())

	want, err := time.Parse(time.RFC3339, b.SessionExpires)
	require.NoError(t, err)
	assert.True(t, svc.Session.ExpiresAt().Equal(want))
}

func TestStartSession_ExpiredSessionLogsOut(t *testing.T) {
	svc, b := loginTestServices(t)
	require.NoError(t, svc.Store.Set(session.KeySessionExpires, time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)))

	var states []session.State
	svc.Session.Subscribe(func(ev session.Event) { states = append(states, ev.State) })
	svc.StartSession()

	assert.Equal(t, []session.State{session.LoggedOut, session.Idle}, states)
	assert.False(t, svc.Auth.LoggedIn())
	assert.Len(t, b.Calls("POST", "/auth/logout"), 1)
}

func TestStartSession_LoginReschedules(t *testing.T) {
	svc, _ := newTestServices(t)
	svc.StartSession()
	require.Equal(t, session.Idle, svc.Session.State())

	_, err := svc.Auth.Login(t.Context(), "hr.admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, session.Scheduled, svc.Session.State())

	require.NoError(t, svc.Auth.Logout(t.Context()))
	assert.Equal(t, session.Idle, svc.Session.State())
}
