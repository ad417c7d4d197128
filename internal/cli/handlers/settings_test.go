package handlers

import (
	"strings"
	"testing"
)

func TestTripleOT(t *testing.T) {
	deps, b, stdout, stderr, exitCode := setupLoggedIn(t)

	AddTripleOT(t.Context(), deps, "14/04/2025", "New Year")
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", *exitCode, stderr.String())
	}
	assertContains(t, stdout.String(), "Added triple OT date 2025-04-14 New Year")

	id := b.TripleOT[0].ID
	EditTripleOT(t.Context(), deps, id, "2025-04-13", "New Year Eve")
	assertContains(t, stdout.String(), "Updated triple OT date 2025-04-13 New Year Eve")

	AddTripleOT(t.Context(), deps, "2025-01-14", "Thai Pongal")
	stdout.Reset()
	ListTripleOT(t.Context(), deps)
	out := stdout.String()
	if strings.Index(out, "2025-01-14") > strings.Index(out, "2025-04-13") {
		t.Errorf("expected dates in calendar order, got:\n%s", out)
	}

	DeleteTripleOT(t.Context(), deps, id)
	if len(b.TripleOT) != 1 {
		t.Errorf("expected one date left, got %d", len(b.TripleOT))
	}
}

func TestAddTripleOT_InvalidDate(t *testing.T) {
	deps, _, _, stderr, exitCode := setupLoggedIn(t)

	AddTripleOT(t.Context(), deps, "2025-04", "New Year")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "incomplete date")
}

func TestSettings(t *testing.T) {
	deps, b, stdout, stderr, exitCode := setupLoggedIn(t)

	ShowSettings(t.Context(), deps)
	assertContains(t, stdout.String(), "6:30am", "15.5", "8:30am", "17.5")

	stdout.Reset()
	SetShift(t.Context(), deps, "7:30am", ptr(16.5), nil)
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", *exitCode, stderr.String())
	}
	assertContains(t, stdout.String(), "Saved OT settings for shift 7:30am")
	if b.Settings == nil || b.Settings.WeekdayOTStart["7:30am"] != 16.5 {
		t.Fatalf("expected stored settings, got %+v", b.Settings)
	}

	stdout.Reset()
	ShowSettings(t.Context(), deps)
	assertContains(t, stdout.String(), "7:30am", "16.5 *")

	deps.Stdin = strings.NewReader("y\n")
	ResetSettings(t.Context(), deps, false)
	assertContains(t, stdout.String(), "OT settings reset to defaults")
	if b.Settings != nil {
		t.Error("expected settings to be deleted")
	}
}

func TestSetShift_NoValues(t *testing.T) {
	deps, _, _, stderr, exitCode := setupLoggedIn(t)

	SetShift(t.Context(), deps, "7:30am", nil, nil)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "Hint: Pass --weekday-start")
}

func TestReasons(t *testing.T) {
	deps, b, stdout, stderr, exitCode := setupLoggedIn(t)

	AddReason(t.Context(), deps, "  Urgent order ")
	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", *exitCode, stderr.String())
	}
	assertContains(t, stdout.String(), `Added reason "Urgent order"`)

	AddReason(t.Context(), deps, "urgent ORDER")
	if *exitCode != 1 {
		t.Errorf("expected duplicate to fail")
	}
	assertContains(t, stderr.String(), "already exists")

	stdout.Reset()
	ListReasons(t.Context(), deps)
	assertContains(t, stdout.String(), "Urgent order")

	DeleteReason(t.Context(), deps, b.Reasons[0].ID)
	if len(b.Reasons) != 0 {
		t.Error("expected the reason to be deleted")
	}
}

func TestAddReason_Empty(t *testing.T) {
	deps, b, _, stderr, exitCode := setupLoggedIn(t)

	AddReason(t.Context(), deps, "   ")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	assertContains(t, stderr.String(), "reason cannot be empty")
	if len(b.Calls("POST", "/settings/overtime-reasons")) != 0 {
		t.Error("empty reasons must not reach the backend")
	}
}
