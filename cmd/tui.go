package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/tui"
)

// runTUIFunc starts the interactive UI; replaced in tests.
var runTUIFunc = tui.Run

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for otdash.

The TUI needs a stored session: run "otdash login" first. It follows the
session expiry, shows a countdown banner during the last minute and quits
with the logout reason when the session ends. Approvers also get a live
pending-approval badge.

Views available:
  - Overtime: Browse a month of entries, approve, reject or delete them
  - Pending: The approval queue
  - Summary: Per-employee OT totals for a month
  - Session: The logged-in account, session expiry and logout
  - Config: View configuration and change the color theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-5: Jump to specific view
  - j/k or arrows: Navigate within lists
  - [ and ]: Previous and next month
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI runs the TUI until it quits or the process is interrupted
func runTUI(ctx context.Context) {
	d, ok := ready()
	if !ok {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runTUIFunc(ctx, d.Services, d.Stdout); err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			cli.Fail(d, "Not logged in", err, "")
			return
		}
		cli.Fail(d, "Failed to run TUI", err, "")
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cmd.Context())
		return true
	}
	return false
}
