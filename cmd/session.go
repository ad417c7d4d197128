package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli/handlers"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the overtime dashboard",
	Long: `Log in with a dashboard account and store the session.

The backend returns the session expiry; otdash warns during the last minute
and logs out when it is reached (see "otdash watch" and "otdash tui").
Credentials that are not given as flags are prompted for.

Examples:
  otdash login
  otdash login --username hr.admin`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		handlers.Login(cmd.Context(), d, username, password)
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.Logout(cmd.Context(), d)
	},
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend health and session state",
	Long: `Show whether the backend is reachable and who is logged in.

A stored session is checked against the backend; one the backend rejects is
cleared.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		handlers.Status(cmd.Context(), d)
	},
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the session until it expires",
	Long: `Run the session timer in the foreground.

Prints when the session will expire, counts down during the last minute and
logs out when the expiry is reached. A login or logout from another otdash
process reschedules the timer. With --pending, approvers are also told about
new overtime awaiting approval. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d, ok := ready()
		if !ok {
			return
		}
		pending, _ := cmd.Flags().GetBool("pending")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		handlers.Watch(ctx, d, pending)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)

	loginCmd.Flags().StringP("username", "u", "", "Dashboard username")
	loginCmd.Flags().StringP("password", "p", "", "Dashboard password (prompted when omitted)")

	watchCmd.Flags().Bool("pending", false, "Also report overtime awaiting approval")
}
