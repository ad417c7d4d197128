package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"github.com/xolan/otdash/internal/api"
	"github.com/xolan/otdash/internal/service"
)

// Fail prints an Error/Details/Hint block to Stderr and exits with code 1.
// Empty details or hint lines are omitted.
func Fail(d *Deps, msg string, err error, hint string) {
	_, _ = fmt.Fprintf(d.Stderr, "Error: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
	}
	if hint == "" {
		hint = HintFor(err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(d.Stderr, "Hint: %s\n", hint)
	}
	d.Exit(1)
}

// Warn prints a warning block to Stderr without exiting.
func Warn(d *Deps, msg string, err error) {
	_, _ = fmt.Fprintf(d.Stderr, "Warning: %s\n", msg)
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", err)
	}
}

// HintFor suggests a next step for well-known errors.
func HintFor(err error) string {
	var missing *service.MissingFieldsError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrNotLoggedIn):
		return "Log in first with: otdash login"
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session is no longer valid. Log in again with: otdash login"
	case errors.Is(err, api.ErrForbidden):
		return "Your account lacks the permission for this action"
	case errors.Is(err, api.ErrNotFound):
		return "Check the id; list records to see valid ids"
	case errors.Is(err, errNoServices):
		return "Check your config file with: otdash config"
	case errors.As(err, &missing):
		return "Provide the missing fields as flags"
	}
	return ""
}

// Ready reports whether services are available, printing the init error
// and exiting otherwise.
func Ready(d *Deps) bool {
	if d.Services != nil {
		return true
	}
	err := d.InitErr
	if err == nil {
		err = errNoServices
	}
	Fail(d, "Failed to initialize otdash", err, HintFor(errNoServices))
	return false
}

// Prompt prints label and reads one line from Stdin. ok is false at EOF.
func Prompt(d *Deps, label string) (line string, ok bool) {
	_, _ = fmt.Fprint(d.Stdout, label)
	if d.stdin == nil {
		d.stdin = bufio.NewReader(d.Stdin)
	}
	line, err := d.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// PromptSecret is Prompt without echo when Stdin is a terminal.
func PromptSecret(d *Deps, label string) (line string, ok bool) {
	f, isFile := d.Stdin.(*os.File)
	if !isFile || !term.IsTerminal(f.Fd()) {
		return Prompt(d, label)
	}
	_, _ = fmt.Fprint(d.Stdout, label)
	secret, err := term.ReadPassword(f.Fd())
	_, _ = fmt.Fprintln(d.Stdout)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(secret)), true
}

// Confirm asks a y/N question and reports whether the answer was yes.
func Confirm(d *Deps, question string) bool {
	answer, ok := Prompt(d, question+" [y/N]: ")
	return ok && (answer == "y" || answer == "Y")
}
