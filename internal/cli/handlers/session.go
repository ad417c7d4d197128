package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/cli"
	"github.com/xolan/otdash/internal/service"
	"github.com/xolan/otdash/internal/session"
)

// Login authenticates and stores the session. Missing credentials are
// prompted for on Stdin.
func Login(ctx context.Context, deps *cli.Deps, username, password string) {
	if username == "" {
		username, _ = cli.Prompt(deps, "Username: ")
	}
	if password == "" {
		password, _ = cli.PromptSecret(deps, "Password: ")
	}
	if username == "" || password == "" {
		cli.Fail(deps, "Username and password are required", nil, "Pass --username and --password, or type them when prompted")
		return
	}

	resp, err := deps.Services.Auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			cli.Fail(deps, "Login failed", err, "Check your username and password")
			return
		}
		cli.Fail(deps, "Login failed", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged in as %s\n", deps.Services.Auth.Username())
	printExpiry(deps, deps.Services.Auth.Expiry())
	if resp.CanApprove {
		_, _ = fmt.Fprintln(deps.Stdout, "You can approve overtime: see 'otdash ot pending'")
	}
}

// Logout ends the session on the backend (best effort) and locally.
func Logout(ctx context.Context, deps *cli.Deps) {
	if !deps.Services.Auth.LoggedIn() {
		_, _ = fmt.Fprintln(deps.Stdout, "Not logged in")
		return
	}
	name := deps.Services.Auth.Username()
	if err := deps.Services.Auth.Logout(ctx); err != nil {
		cli.Fail(deps, "Failed to clear the local session", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Logged out %s\n", name)
}

// Status reports backend health and the stored session.
func Status(ctx context.Context, deps *cli.Deps) {
	svc := deps.Services
	cfg := svc.Config.Get()

	ok, err := svc.Client.Health(ctx, cfg.HealthURL)
	switch {
	case err != nil:
		_, _ = fmt.Fprintf(deps.Stdout, "Backend:  unreachable (%v)\n", err)
	case !ok:
		_, _ = fmt.Fprintf(deps.Stdout, "Backend:  not healthy at %s\n", cfg.HealthURL)
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "Backend:  running at %s\n", svc.Client.BaseURL())
	}

	if !svc.Auth.LoggedIn() {
		_, _ = fmt.Fprintln(deps.Stdout, "Session:  not logged in")
		_, _ = fmt.Fprintln(deps.Stdout, "Log in with: otdash login")
		return
	}

	expires := svc.Auth.Expiry()
	if !expires.IsZero() && !deps.Now().Before(expires) {
		_, _ = fmt.Fprintf(deps.Stdout, "Session:  expired %s\n", cli.FormatExpiry(expires, deps.Now()))
		_, _ = fmt.Fprintln(deps.Stdout, "Log in again with: otdash login")
		return
	}

	profile, err := svc.Auth.Boot(ctx)
	if err != nil {
		if service.IsUnauthorized(err) {
			_, _ = fmt.Fprintln(deps.Stdout, "Session:  rejected by the backend and cleared")
			_, _ = fmt.Fprintln(deps.Stdout, "Log in again with: otdash login")
			return
		}
		cli.Fail(deps, "Failed to load profile", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Session:  %s <%s>\n", profile.Username, profile.Email)
	_, _ = fmt.Fprintf(deps.Stdout, "Roles:    admin=%t approver=%t\n", profile.IsAdmin, profile.CanApprove)
	printExpiry(deps, expires)
}

func printExpiry(deps *cli.Deps, expires time.Time) {
	if expires.IsZero() {
		return
	}
	now := deps.Now()
	_, _ = fmt.Fprintf(deps.Stdout, "Expires:  %s (in %s)\n", cli.FormatExpiry(expires, now), cli.FormatRemaining(expires.Sub(now)))
	warnAt := expires.Add(-session.WarnBefore)
	if warnAt.After(now) {
		_, _ = fmt.Fprintf(deps.Stdout, "Warning:  %s\n", cli.FormatExpiry(warnAt, now))
	}
}

// Watch runs the session timer in the foreground, printing the warning
// countdown until the forced logout or until ctx ends. Approvers also get
// the pending feed when pending is set.
func Watch(ctx context.Context, deps *cli.Deps, pending bool) {
	svc := deps.Services
	if !svc.Auth.LoggedIn() {
		cli.Fail(deps, "Nothing to watch", service.ErrNotLoggedIn, "")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	say := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(deps.Stdout, format, args...)
	}

	loggedOut := make(chan string, 1)
	unsubscribe := svc.Session.Subscribe(func(ev session.Event) {
		switch ev.State {
		case session.Scheduled:
			say("Session expires %s\n", cli.FormatExpiry(ev.ExpiresAt, deps.Now()))
		case session.Warning:
			say("Warning: session expires in %s\n", cli.FormatCountdown(ev.SecondsLeft))
		case session.LoggedOut:
			select {
			case loggedOut <- ev.Reason:
			default:
			}
		}
	})
	defer unsubscribe()

	svc.StartSession()

	var wg sync.WaitGroup
	if pending {
		wg.Add(1)
		go func() {
			defer wg.Done()
			watchPending(ctx, deps, say)
		}()
	}

	select {
	case reason := <-loggedOut:
		say("%s\n", reason)
	case <-ctx.Done():
		say("Stopped watching\n")
	}
	cancel()
	wg.Wait()
}

func watchPending(ctx context.Context, deps *cli.Deps, say func(string, ...any)) {
	profile, err := deps.Services.Auth.Profile(ctx)
	if err != nil || !deps.Services.Notify.Enabled(profile) {
		return
	}
	deps.Services.Notify.Watch(ctx, func(n service.Notification) {
		if n.New {
			say("New overtime awaiting approval: %d pending\n", len(n.Pending))
			return
		}
		say("Pending approvals: %d\n", len(n.Pending))
	})
}
