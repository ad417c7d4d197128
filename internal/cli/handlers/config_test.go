package handlers

import (
	"os"
	"strings"
	"testing"
)

func TestShowConfig(t *testing.T) {
	deps, b, stdout, _, exitCode := setupTestDeps(t)

	ShowConfig(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	assertContains(t, stdout.String(),
		"Configuration:",
		"Status: Using defaults (no config file)",
		"api_base_url:    "+b.URL(),
		"poll_interval:",
		"log_level:",
	)
}

func TestInitConfig(t *testing.T) {
	deps, _, stdout, stderr, exitCode := setupTestDeps(t)

	InitConfig(deps)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", *exitCode, stderr.String())
	}
	path := deps.Services.Config.GetPath()
	assertContains(t, stdout.String(), "Created config file: "+path)
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	stdout.Reset()
	ShowConfig(deps)
	assertContains(t, stdout.String(), "Status: File exists")

	InitConfig(deps)
	if *exitCode != 1 {
		t.Errorf("expected a second init to fail, got exit code %d", *exitCode)
	}
	assertContains(t, stderr.String(), "Error:")
}

func TestShowConfig_ShiftOverrides(t *testing.T) {
	deps, _, stdout, _, _ := setupTestDeps(t)

	cfg := deps.Services.Config.Get()
	cfg.Shifts.WeekdayOTStart = map[string]float64{"7:00am": 16, "6:00am": 15}
	cfg.Shifts.SaturdayShiftHours = map[string]float64{"7:00am": 6}
	if err := deps.Services.Config.Update(cfg); err != nil {
		t.Fatal(err)
	}

	ShowConfig(deps)

	out := stdout.String()
	assertContains(t, out, "[shifts]", "6:00am: weekday overtime from 15", "7:00am: saturday shift 6h")
	if strings.Index(out, "6:00am: weekday") > strings.Index(out, "7:00am: weekday") {
		t.Error("expected shifts in name order")
	}
}
