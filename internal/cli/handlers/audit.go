package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/xolan/otdash/internal/cli"
)

// AuditOvertime prints the newest limit overtime audit records (all when
// limit is zero).
func AuditOvertime(ctx context.Context, deps *cli.Deps, limit int) {
	logs, err := deps.Services.Overtime.AuditLogs(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load audit logs", err, "")
		return
	}
	if len(logs) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No audit records")
		return
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%-20s  %-8s  %-16s  %s\n", "When", "Action", "By", "Details")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 78))
	for _, l := range logs {
		details := strings.TrimSpace(string(l.Details))
		if len(details) > 60 {
			details = details[:57] + "..."
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%-20s  %-8s  %-16s  %s\n",
			l.CreatedAt.Local().Format("2006-01-02 15:04:05"), l.Action, l.PerformedBy, details)
	}
}

// AuditDownloads prints the export download history.
func AuditDownloads(ctx context.Context, deps *cli.Deps) {
	logs, err := deps.Services.Export.DownloadLogs(ctx)
	if err != nil {
		cli.Fail(deps, "Failed to load download logs", err, "")
		return
	}
	if len(logs) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No downloads recorded")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%-20s  %-16s  %s\n", "Downloaded", "User", "Range")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	for _, l := range logs {
		user := l.Username()
		if user == "" {
			user = l.UserID
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%-20s  %-16s  %s to %s\n",
			l.DownloadedAt.Local().Format("2006-01-02 15:04:05"), user, cli.ShortDate(l.StartDate), cli.ShortDate(l.EndDate))
	}
}
