package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/xolan/otdash/internal/cli"
)

// Export downloads the overtime workbook for [start, end] into dir (the
// configured export directory when empty).
func Export(ctx context.Context, deps *cli.Deps, start, end time.Time, dir string) {
	result, err := deps.Services.Export.Export(ctx, start, end, dir)
	if err != nil {
		cli.Fail(deps, "Failed to export overtime", err, "")
		return
	}
	if result.LogErr != nil {
		cli.Warn(deps, "Export saved but the download was not logged", result.LogErr)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Exported %s to %s\n", cli.FormatDateRangeForDisplay(start, end), result.Path)
	_, _ = fmt.Fprintf(deps.Stdout, "Sheet %q, %d %s\n", result.Sheet, result.Rows, cli.Pluralize("row", result.Rows))
}
