package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/api/apitest"
	"github.com/xolan/otdash/internal/overtime"
)

func TestClient_LoginAndProfile(t *testing.T) {
	ctx := context.Background()
	b := apitest.New(t)
	c := api.NewClient(b.URL())

	_, err := c.Login(ctx, api.Credentials{Username: "hr.admin", Password: "wrong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	resp, err := c.Login(ctx, api.Credentials{Username: "hr.admin", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, b.Token, resp.Token)
	assert.Equal(t, b.SessionExpires, resp.SessionExpires)

	// Without a token source the profile is rejected.
	_, err = c.Profile(ctx)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	profile, err := b.Client().Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hr.admin", profile.Username)
	assert.True(t, profile.CanApprove)
}

func TestClient_Headers(t *testing.T) {
	b := apitest.New(t)
	_, err := b.Client().ListEmployees(context.Background())
	require.NoError(t, err)

	calls := b.Calls(http.MethodGet, "/employees")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer test-token", calls[0].Auth)
	assert.Len(t, calls[0].RequestID, 36)
}

func TestClient_TokenError(t *testing.T) {
	b := apitest.New(t)
	c := api.NewClient(b.URL(), api.WithToken(func() (string, error) { return "", errors.New("disk gone") }))

	_, err := c.ListEmployees(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Empty(t, b.Calls(http.MethodGet, "/employees"))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, api.ErrUnauthorized},
		{http.StatusForbidden, api.ErrForbidden},
		{http.StatusNotFound, api.ErrNotFound},
		{http.StatusConflict, api.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			b := apitest.New(t)
			b.FailPaths["GET /employees"] = tt.status
			_, err := b.Client().ListEmployees(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}

	b := apitest.New(t)
	b.FailPaths["GET /employees"] = http.StatusInternalServerError
	_, err := b.Client().ListEmployees(context.Background())
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.NotErrorIs(t, err, api.ErrNotFound)
}

func TestClient_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	c := api.NewClient(slow.URL, api.WithTimeout(50*time.Millisecond))
	_, err := c.ListEmployees(context.Background())
	assert.Error(t, err)
}

func TestClient_Health(t *testing.T) {
	b := apitest.New(t)
	ok, err := b.Client().Health(context.Background(), b.HealthURL())
	require.NoError(t, err)
	assert.True(t, ok)

	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer other.Close()
	ok, err = b.Client().Health(context.Background(), other.URL)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_OvertimeWritesCarryPerformedBy(t *testing.T) {
	ctx := context.Background()
	b := apitest.New(t)
	c := b.Client()

	created, err := c.CreateOvertime(ctx, overtime.Entry{
		EmployeeNumber: "E001",
		Date:           "2025-01-15",
		Shift:          "7.30-5.30",
		InTime:         "07:30",
		OutTime:        "19:00",
		NormalOT:       1.5,
		Night:          overtime.NightNo,
		Reason:         "Urgent order",
	}, "hr.admin")
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusPending, created.Status)

	post := b.Calls(http.MethodPost, "/overtime")
	require.Len(t, post, 1)
	assert.Equal(t, "hr.admin", post[0].Body["performedBy"])
	assert.Equal(t, "07:30", post[0].Body["intime"])
	assert.InDelta(t, 1.5, post[0].Body["normalot"], 1e-9)

	hours := 1.0
	require.NoError(t, c.ApproveOvertime(ctx, created.ID, api.Decision{ApprovedOT: &hours, Reason: "ok"}, "boss"))
	approve := b.Calls(http.MethodPut, "/overtime/"+created.ID+"/approve")
	require.Len(t, approve, 1)
	assert.Equal(t, "boss", approve[0].Body["performedBy"])
	assert.InDelta(t, 1.0, approve[0].Body["approvedot"], 1e-9)

	require.NoError(t, c.RejectOvertime(ctx, created.ID, api.Decision{ApprovedOT: &hours, Reason: "no"}, "boss"))
	reject := b.Calls(http.MethodPut, "/overtime/"+created.ID+"/reject")
	require.Len(t, reject, 1)
	assert.NotContains(t, reject[0].Body, "approvedot")
	assert.Equal(t, "no", reject[0].Body["reason"])

	require.NoError(t, c.DeleteOvertime(ctx, created.ID, "boss"))
	del := b.Calls(http.MethodDelete, "/overtime/"+created.ID)
	require.Len(t, del, 1)
	assert.Equal(t, "boss", del[0].Body["performedBy"])

	logs, err := c.OvertimeAuditLogs(ctx)
	require.NoError(t, err)
	var actions []api.AuditAction
	for _, l := range logs {
		actions = append(actions, l.Action)
		assert.NotEmpty(t, l.PerformedBy)
	}
	assert.Equal(t, []api.AuditAction{api.AuditCreate, api.AuditApprove, api.AuditReject, api.AuditDelete}, actions)
}

func TestClient_PendingOvertime(t *testing.T) {
	b := apitest.New(t)
	b.Overtime = []overtime.Entry{
		{ID: "a", EmployeeNumber: "E1", Status: overtime.StatusPending},
		{ID: "b", EmployeeNumber: "E2", Status: overtime.StatusApproved},
		{ID: "c", EmployeeNumber: "E3", Status: overtime.StatusPending},
	}

	pending, err := b.Client().PendingOvertime(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
}

func TestClient_ExportOvertime(t *testing.T) {
	b := apitest.New(t)
	b.Workbook = []byte("PK\x03\x04binary")

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	data, err := b.Client().ExportOvertime(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, b.Workbook, data)

	b.Mu.Lock()
	last := b.Requests[len(b.Requests)-1]
	b.Mu.Unlock()
	assert.Equal(t, "/overtime/export", last.Path)
}

func TestClient_SettingsAndReasons(t *testing.T) {
	ctx := context.Background()
	b := apitest.New(t)
	c := b.Client()

	empty, err := c.OTSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.WeekdayOTStart)

	want := api.OTSettings{
		WeekdayOTStart:     map[string]float64{"8-5": 17.25},
		SaturdayShiftHours: map[string]float64{"8-1": 5},
	}
	require.NoError(t, c.CreateOTSettings(ctx, want))
	got, err := c.OTSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	require.NoError(t, c.DeleteOTSettings(ctx))
	got, err = c.OTSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.SaturdayShiftHours)

	_, err = c.AddReason(ctx, "  ")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Reason cannot be empty", apiErr.Message)

	r, err := c.AddReason(ctx, "Urgent order")
	require.NoError(t, err)
	reasons, err := c.ListReasons(ctx)
	require.NoError(t, err)
	require.Len(t, reasons, 1)
	require.NoError(t, c.DeleteReason(ctx, r.ID))
	reasons, err = c.ListReasons(ctx)
	require.NoError(t, err)
	assert.Empty(t, reasons)
}

func TestClient_TripleOTAndDownloadLogs(t *testing.T) {
	ctx := context.Background()
	b := apitest.New(t)
	c := b.Client()

	d, err := c.CreateTripleOT(ctx, api.TripleOTDate{Date: "2025-04-14", Description: "New Year"})
	require.NoError(t, err)
	_, err = c.UpdateTripleOT(ctx, d.ID, api.TripleOTDate{Date: "2025-04-13", Description: "New Year"})
	require.NoError(t, err)
	_, err = c.UpdateTripleOT(ctx, "missing", api.TripleOTDate{})
	assert.ErrorIs(t, err, api.ErrNotFound)

	dates, err := c.ListTripleOT(ctx)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "2025-04-13", dates[0].Date)

	require.NoError(t, c.AddDownloadLog(ctx, api.DownloadLog{UserID: "u1", StartDate: "2025-01-01", EndDate: "2025-01-31", DownloadedAt: time.Now()}))
	logs, err := c.ListDownloadLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "hr.admin", logs[0].Username())
	assert.Equal(t, "", api.DownloadLog{}.Username())
}

func TestClient_EmployeesAndUsers(t *testing.T) {
	ctx := context.Background()
	b := apitest.New(t)
	c := b.Client()

	e, err := c.CreateEmployee(ctx, api.Employee{EmployeeNumber: "E001", Name: "Nimal"})
	require.NoError(t, err)
	_, err = c.CreateEmployee(ctx, api.Employee{EmployeeNumber: "E001", Name: "Dup"})
	assert.ErrorIs(t, err, api.ErrConflict)

	_, err = c.UpdateEmployee(ctx, e.ID, api.Employee{EmployeeNumber: "E001", Name: "Nimal P."})
	require.NoError(t, err)
	require.NoError(t, c.DeleteEmployee(ctx, e.ID))
	list, err := c.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, c.Register(ctx, api.Registration{Username: "clerk", Email: "c@example.com", Password: "pw"}))
	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	u, err := c.UpdateUser(ctx, users[0].ID, api.UserUpdate{Username: "clerk", Email: "c@example.com", CanApprove: true})
	require.NoError(t, err)
	assert.True(t, u.CanApprove)
	require.NoError(t, c.DeleteUser(ctx, u.ID))
}
