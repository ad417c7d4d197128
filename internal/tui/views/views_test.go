package views

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/otdash/internal/api/apitest"
	"github.com/xolan/otdash/internal/config"
	"github.com/xolan/otdash/internal/overtime"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
	"github.com/xolan/otdash/internal/tui/ui"
)

var january = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func setupTestServices(t *testing.T) (*service.Services, *apitest.Backend) {
	t.Helper()
	b := apitest.New(t)
	tmpDir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.APIBaseURL = b.URL()

	services := service.NewServicesWith(service.Options{
		ConfigPath:  filepath.Join(tmpDir, config.ConfigFile),
		SessionPath: filepath.Join(tmpDir, session.SessionFile),
		Config:      cfg,
	})
	t.Cleanup(services.Close)

	for _, kv := range [][2]string{
		{session.KeySessionExpires, b.SessionExpires},
		{session.KeyToken, b.Token},
		{session.KeyUsername, b.Username},
	} {
		if err := services.Store.Set(kv[0], kv[1]); err != nil {
			t.Fatal(err)
		}
	}
	return services, b
}

func seedEntries(b *apitest.Backend) {
	b.Overtime = []overtime.Entry{
		{ID: "ot-1", EmployeeNumber: "E001", Name: "Nimal Perera", Date: "2025-01-15", Shift: "8:30am",
			InTime: "08:30", OutTime: "20:00", NormalOT: 2.5, Night: overtime.NightNo, Reason: "Urgent order", Status: overtime.StatusPending},
		{ID: "ot-2", EmployeeNumber: "E002", Name: "Kamala Silva", Date: "2025-01-18T00:00:00.000Z", Shift: "6:30am",
			InTime: "06:30", OutTime: "15:30", NormalOT: 4, DoubleOT: 0.5, Night: overtime.NightNo, Status: overtime.StatusApproved},
		{ID: "ot-3", EmployeeNumber: "E001", Name: "Nimal Perera", Date: "2025-02-03", Shift: "8:30am",
			InTime: "08:30", OutTime: "23:00", NormalOT: 4, DoubleOT: 1.5, Night: overtime.NightYes, Status: overtime.StatusPending},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedOvertime(t *testing.T, services *service.Services) OvertimeModel {
	t.Helper()
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(120, 40)
	m.month = january
	m, _ = m.Update(m.loadEntries()())
	if m.err != nil {
		t.Fatalf("loading entries: %v", m.err)
	}
	return m
}

func TestRenderEntryList(t *testing.T) {
	entries := []overtime.Entry{
		{EmployeeNumber: "E001", Name: "Nimal", Date: "2025-01-15T00:00:00Z", InTime: "08:30", OutTime: "20:00", NormalOT: 2.5, Night: overtime.NightNo},
		{EmployeeNumber: "E002", Name: "Kamala", Date: "2025-01-18", NormalOT: 4, DoubleOT: 0.5, Night: overtime.NightYes, Status: overtime.StatusRejected},
	}

	out := RenderEntryList(entries, ui.DefaultStyles(), EntryRenderOptions{Width: 120, Cursor: 1})

	for _, want := range []string{"Emp#", "E001", "Nimal", "2025-01-15", "08:30-20:00", "2.5", "Pending", "Rejected", "Yes", "▸ "} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "T00:00:00Z") {
		t.Errorf("expected the time part of the date to be dropped, got:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("expected header plus 2 rows, got %d lines", lines)
	}
}

func TestRenderEntryList_Empty(t *testing.T) {
	if out := RenderEntryList(nil, ui.DefaultStyles(), EntryRenderOptions{Cursor: -1}); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderEntryList_TruncatesLongNames(t *testing.T) {
	entries := []overtime.Entry{{EmployeeNumber: "E001", Name: strings.Repeat("x", 80), Date: "2025-01-15"}}

	out := RenderEntryList(entries, ui.DefaultStyles(), EntryRenderOptions{Width: 40, Cursor: -1})

	if !strings.Contains(out, "…") {
		t.Errorf("expected a truncated name, got:\n%s", out)
	}
	if strings.Contains(out, strings.Repeat("x", 80)) {
		t.Errorf("expected the full name to be cut, got:\n%s", out)
	}
}

func TestNewOvertimeModel(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	if !m.loading {
		t.Error("expected loading to be true initially")
	}
	if m.Month().Day() != 1 {
		t.Errorf("expected the first of the month, got %v", m.Month())
	}
	if m.Init() == nil {
		t.Error("expected Init to return a command")
	}
}

func TestOvertimeModel_LoadsMonth(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)

	m := loadedOvertime(t, services)

	if len(m.entries) != 2 {
		t.Fatalf("expected 2 January entries, got %d", len(m.entries))
	}
	view := m.View()
	for _, want := range []string{"Overtime for January 2025", "E001", "E002", "2 entries", "Normal 6.5h"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "2025-02-03") {
		t.Errorf("expected February entries to be excluded, got:\n%s", view)
	}
}

func TestOvertimeModel_View_Empty(t *testing.T) {
	services, _ := setupTestServices(t)

	m := loadedOvertime(t, services)

	if !strings.Contains(m.View(), "No overtime recorded") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}

func TestOvertimeModel_View_Loading(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	if !strings.Contains(m.View(), "Loading...") {
		t.Errorf("expected loading message, got:\n%s", m.View())
	}
}

func TestOvertimeModel_View_Error(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(overtimeLoadedMsg{month: m.month, err: errors.New("backend down")})

	if !strings.Contains(m.View(), "Error: backend down") {
		t.Errorf("expected error in view, got:\n%s", m.View())
	}
}

func TestOvertimeModel_IgnoresStaleMonth(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.month = january

	m, _ = m.Update(overtimeLoadedMsg{month: january.AddDate(0, -1, 0), entries: []overtime.Entry{{ID: "old"}}})

	if len(m.entries) != 0 || !m.loading {
		t.Error("expected a reply for another month to be ignored")
	}
}

func TestOvertimeModel_MonthNavigation(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.month = january

	m, cmd := m.Update(keyRunes("["))
	if cmd == nil {
		t.Error("expected a reload command")
	}
	if !m.Month().Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected December 2024, got %v", m.Month())
	}

	m, _ = m.Update(keyRunes("]"))
	m, _ = m.Update(keyRunes("]"))
	if !m.Month().Equal(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected February 2025, got %v", m.Month())
	}

	m.now = func() time.Time { return time.Date(2025, time.June, 20, 9, 0, 0, 0, time.UTC) }
	m, _ = m.Update(keyRunes("m"))
	if !m.Month().Equal(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected June 2025, got %v", m.Month())
	}
}

func TestOvertimeModel_Navigation(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := loadedOvertime(t, services)

	m, _ = m.Update(keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.cursor)
	}
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("j"))
	if m.cursor != 1 {
		t.Errorf("expected cursor to stop at 1, got %d", m.cursor)
	}
}

func TestOvertimeModel_Approve(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := loadedOvertime(t, services)

	_, cmd := m.Update(keyRunes("a"))
	if cmd == nil {
		t.Fatal("expected an approve command")
	}
	msg, ok := cmd().(ui.DataChangedMsg)
	if !ok {
		t.Fatalf("expected DataChangedMsg, got %T", cmd())
	}
	if msg.Text != "Approved 2.5h for E001 on 2025-01-15" {
		t.Errorf("unexpected flash text %q", msg.Text)
	}
	if b.Overtime[0].Status != overtime.StatusApproved || b.Overtime[0].ApprovedOT != 2.5 {
		t.Errorf("expected entry approved with 2.5h, got %+v", b.Overtime[0])
	}
}

func TestOvertimeModel_ApproveFailureFlashesError(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.month = january
	m, _ = m.Update(overtimeLoadedMsg{month: january, entries: []overtime.Entry{{ID: "missing", EmployeeNumber: "E009", Date: "2025-01-02"}}})

	_, cmd := m.Update(keyRunes("a"))
	if cmd == nil {
		t.Fatal("expected an approve command")
	}
	flash, ok := cmd().(ui.FlashMsg)
	if !ok || !flash.Error {
		t.Fatalf("expected an error flash, got %#v", flash)
	}
}

func TestOvertimeModel_RejectWithReason(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := loadedOvertime(t, services)

	m, _ = m.Update(keyRunes("x"))
	if !m.IsInputMode() {
		t.Fatal("expected the reason prompt to capture input")
	}
	if !strings.Contains(m.View(), "Reject Overtime") {
		t.Errorf("expected reject prompt, got:\n%s", m.View())
	}

	m, _ = m.Update(keyRunes("Not authorised"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsInputMode() {
		t.Error("expected the prompt to close")
	}
	if cmd == nil {
		t.Fatal("expected a reject command")
	}
	if _, ok := cmd().(ui.DataChangedMsg); !ok {
		t.Fatal("expected DataChangedMsg")
	}
	if b.Overtime[0].Status != overtime.StatusRejected || b.Overtime[0].Reason != "Not authorised" {
		t.Errorf("expected entry rejected with reason, got %+v", b.Overtime[0])
	}
}

func TestOvertimeModel_RejectCancel(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := loadedOvertime(t, services)

	m, _ = m.Update(keyRunes("x"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.IsInputMode() || cmd != nil {
		t.Error("expected Esc to close the prompt without a command")
	}
	if len(b.Calls("PUT", "/overtime/ot-1/reject")) != 0 {
		t.Error("expected no reject request")
	}
}

func TestOvertimeModel_DeleteConfirm(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := loadedOvertime(t, services)

	m, _ = m.Update(keyRunes("d"))
	if !strings.Contains(m.View(), "Are you sure you want to delete this entry?") {
		t.Errorf("expected confirmation, got:\n%s", m.View())
	}
	m, _ = m.Update(keyRunes("n"))
	if m.IsInputMode() {
		t.Error("expected n to cancel")
	}

	m, _ = m.Update(keyRunes("d"))
	_, cmd := m.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	if msg, ok := cmd().(ui.DataChangedMsg); !ok || !strings.Contains(msg.Text, "Deleted overtime for E001") {
		t.Errorf("unexpected result %#v", msg)
	}
	if len(b.Overtime) != 2 {
		t.Errorf("expected 2 entries left, got %d", len(b.Overtime))
	}
}

func TestOvertimeModel_DataChangedReloads(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewOvertimeModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	_, cmd := m.Update(ui.DataChangedMsg{})

	if cmd == nil {
		t.Error("expected a reload command")
	}
}

func TestPendingModel(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := NewPendingModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(120, 40)

	m, _ = m.Update(m.loadPending()())

	if m.Count() != 2 {
		t.Fatalf("expected 2 pending entries, got %d", m.Count())
	}
	view := m.View()
	for _, want := range []string{"Pending Approval", "2025-01-15", "2025-02-03", "2 entries awaiting approval"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}

	m, _ = m.Update(keyRunes("j"))
	_, cmd := m.Update(keyRunes("a"))
	if cmd == nil {
		t.Fatal("expected an approve command")
	}
	cmd()
	if b.Overtime[2].Status != overtime.StatusApproved {
		t.Errorf("expected the second pending entry approved, got %+v", b.Overtime[2])
	}
}

func TestPendingModel_Feed(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewPendingModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.cursor = 3

	m, _ = m.Update(ui.PendingMsg{Notification: service.Notification{
		Pending: []overtime.Entry{{ID: "p1", EmployeeNumber: "E005", Date: "2025-03-01"}},
		New:     true,
	}})

	if m.Count() != 1 || m.cursor != 0 {
		t.Errorf("expected 1 entry with the cursor clamped, got %d at %d", m.Count(), m.cursor)
	}

	m, _ = m.Update(ui.PendingMsg{})
	if !strings.Contains(m.View(), "Nothing awaiting approval") {
		t.Errorf("expected empty queue message, got:\n%s", m.View())
	}
}

func TestPendingModel_RejectPrompt(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := NewPendingModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.loadPending()())

	m, _ = m.Update(keyRunes("x"))
	if !m.IsInputMode() {
		t.Fatal("expected the reason prompt")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsInputMode() || cmd == nil {
		t.Fatal("expected Enter to submit")
	}
	cmd()
	if b.Overtime[0].Status != overtime.StatusRejected {
		t.Errorf("expected entry rejected, got %+v", b.Overtime[0])
	}
}

func TestSummaryModel(t *testing.T) {
	services, b := setupTestServices(t)
	seedEntries(b)
	m := NewSummaryModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(100, 40)
	m.month = january

	m, _ = m.Update(m.loadReport()())

	view := m.View()
	for _, want := range []string{
		"Summary for January 2025",
		"Total OT:", "7h",
		"2 across 2 employees on 2 days",
		"1 pending", "1 approved", "0 rejected",
		"E001 Nimal Perera", "E002 Kamala Silva",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestSummaryModel_Empty(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewSummaryModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.month = january

	m, _ = m.Update(m.loadReport()())

	if !strings.Contains(m.View(), "No overtime recorded") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}

func TestSummaryModel_MonthKeys(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewSummaryModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.month = january

	m, cmd := m.Update(keyRunes("]"))
	if cmd == nil || m.Month().Month() != time.February {
		t.Errorf("expected February with a reload, got %v", m.Month())
	}
	m, _ = m.Update(keyRunes("h"))
	if m.Month().Month() != time.January {
		t.Errorf("expected January, got %v", m.Month())
	}
}

func TestSessionModel(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewSessionModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(m.loadProfile()())

	view := m.View()
	for _, want := range []string{"Session", "hr.admin", "hr@example.com", "admin, approver", "idle"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestSessionModel_WarningCountdown(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewSessionModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(ui.SessionMsg{Event: session.Event{
		State:       session.Warning,
		ExpiresAt:   time.Now().Add(47 * time.Second),
		SecondsLeft: 42,
	}})

	view := m.View()
	if !strings.Contains(view, "warning") || !strings.Contains(view, "0:42") {
		t.Errorf("expected warning state and countdown, got:\n%s", view)
	}
}

func TestSessionModel_Logout(t *testing.T) {
	services, b := setupTestServices(t)
	m := NewSessionModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("L"))
	if !m.IsInputMode() || !strings.Contains(m.View(), "Log out now?") {
		t.Fatalf("expected logout confirmation, got:\n%s", m.View())
	}
	m, cmd := m.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("expected a logout command")
	}
	msg, ok := cmd().(ui.LoggedOutMsg)
	if !ok || msg.Reason != LoggedOutReason {
		t.Fatalf("expected LoggedOutMsg, got %#v", msg)
	}
	if services.Auth.LoggedIn() {
		t.Error("expected the session to be cleared")
	}
	if len(b.Calls("POST", "/auth/logout")) != 1 {
		t.Error("expected the backend to be told")
	}
}

func TestSessionModel_LowercaseLIsIgnored(t *testing.T) {
	services, _ := setupTestServices(t)
	m := NewSessionModel(services, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("l"))

	if m.IsInputMode() {
		t.Error("expected only L to open the logout confirmation")
	}
}

func TestConfigModel_View(t *testing.T) {
	services, b := setupTestServices(t)
	tp := ui.NewThemeProvider(ui.DefaultTheme)
	m := NewConfigModel(services, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(100, 40)

	m, _ = m.Update(m.loadConfig()())

	view := m.View()
	for _, want := range []string{"Configuration", "Using defaults", "api_base_url", b.URL(), "poll_interval", "(working directory)", ui.DefaultTheme} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestConfigModel_ThemeSelector(t *testing.T) {
	services, _ := setupTestServices(t)
	tp := ui.NewThemeProvider(ui.DefaultTheme)
	m := NewConfigModel(services, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.loadConfig()())

	m, _ = m.Update(keyRunes("t"))
	if !m.IsInputMode() {
		t.Fatal("expected the theme selector to open")
	}
	m, _ = m.Update(keyRunes("j"))
	want, _ := m.picker.selected()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsInputMode() || cmd == nil {
		t.Fatal("expected Enter to select a theme")
	}
	req, ok := cmd().(ui.ThemeChangeRequestMsg)
	if !ok || req.ThemeName != want {
		t.Errorf("expected a request for %q, got %#v", want, req)
	}
}

func TestConfigModel_ThemeFilter(t *testing.T) {
	services, _ := setupTestServices(t)
	tp := ui.NewThemeProvider(ui.DefaultTheme)
	m := NewConfigModel(services, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.loadConfig()())

	m, _ = m.Update(keyRunes("t"))
	m, _ = m.Update(keyRunes("/"))
	for _, r := range "drac" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	for _, name := range m.picker.visible {
		if !strings.Contains(strings.ToLower(name), "drac") {
			t.Errorf("unexpected theme %q after filtering", name)
		}
	}
	if got, ok := m.picker.selected(); !ok || got != ui.DefaultTheme {
		t.Errorf("expected %q selectable, got %q", ui.DefaultTheme, got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.picker.visible) != len(m.picker.all) {
		t.Error("expected Esc to clear the filter")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsInputMode() {
		t.Error("expected a second Esc to close the picker")
	}
}

func TestConfigModel_ShiftOverrides(t *testing.T) {
	services, _ := setupTestServices(t)
	tp := ui.NewThemeProvider(ui.DefaultTheme)
	m := NewConfigModel(services, tp, ui.DefaultStyles(), ui.DefaultKeyMap())

	cfg := services.Config.Get()
	cfg.Shifts.WeekdayOTStart = map[string]float64{"7:30am": 16.5}
	cfg.Shifts.SaturdayShiftHours = map[string]float64{"7:30am": 4.5}
	m, _ = m.Update(configLoadedMsg{cfg: cfg, path: services.Config.GetPath()})

	view := m.View()
	if !strings.Contains(view, "shift 7:30am") || !strings.Contains(view, "weekday from 16.5, saturday 4.5h") {
		t.Errorf("expected the shift override line, got:\n%s", view)
	}
}
