package handlers

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/config"
)

// ShowConfig prints the effective settings and where they come from.
func ShowConfig(deps *cli.Deps) {
	svc := deps.Services.Config
	cfg := svc.Get()
	w := deps.Stdout

	status := "Using defaults (no config file)"
	if svc.Exists() {
		status = "File exists"
	}
	_, _ = fmt.Fprintf(w, "Configuration:\n%s\n", strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(w, "Config file: %s\nStatus: %s\n%s\n", svc.GetPath(), status, strings.Repeat("-", 50))

	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = "(working directory)"
	}
	for _, kv := range [][2]string{
		{"api_base_url", cfg.APIBaseURL},
		{"health_url", cfg.HealthURL},
		{"request_timeout", cfg.RequestTimeout},
		{"poll_interval", cfg.PollInterval},
		{"theme", cfg.Theme},
		{"log_level", cfg.LogLevel},
		{"export_dir", exportDir},
	} {
		_, _ = fmt.Fprintf(w, "%-17s%s\n", kv[0]+":", kv[1])
	}
	printShifts(w, cfg.Shifts)
}

func printShifts(w io.Writer, s config.ShiftConfig) {
	if len(s.WeekdayOTStart)+len(s.SaturdayShiftHours) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "\n[shifts]")
	for _, name := range slices.Sorted(maps.Keys(s.WeekdayOTStart)) {
		_, _ = fmt.Fprintf(w, "  %s: weekday overtime from %g\n", name, s.WeekdayOTStart[name])
	}
	for _, name := range slices.Sorted(maps.Keys(s.SaturdayShiftHours)) {
		_, _ = fmt.Fprintf(w, "  %s: saturday shift %gh\n", name, s.SaturdayShiftHours[name])
	}
}

// InitConfig writes the sample config file. It refuses to overwrite.
func InitConfig(deps *cli.Deps) {
	if err := deps.Services.Config.Init(); err != nil {
		cli.Fail(deps, "Failed to create config file", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\nEdit this file to customize your settings.\n", deps.Services.Config.GetPath())
}
