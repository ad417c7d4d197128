package cmd

import (
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "bash completion"},
		{"zsh", "#compdef otdash"},
		{"fish", "complete -c otdash"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			env := setupCmd(t)

			generateCompletion(tt.shell)

			if env.exit != 0 {
				t.Fatalf("expected exit code 0, got %d: %s", env.exit, env.stderr.String())
			}
			out := env.stdout.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected %q in %s completion", tt.want, tt.shell)
			}
			if !strings.Contains(out, "otdash") {
				t.Errorf("expected %s completion to reference otdash", tt.shell)
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	for _, shell := range []string{"", "Bash", "tcsh", "bash "} {
		t.Run(shell, func(t *testing.T) {
			env := setupCmd(t)

			generateCompletion(shell)

			if env.exit != 1 {
				t.Errorf("expected exit code 1, got %d", env.exit)
			}
			assertContains(t, env.stderr.String(), "Unsupported shell", "Supported shells: bash, zsh, fish, powershell")
			if env.stdout.Len() != 0 {
				t.Errorf("expected no script output, got %d bytes", env.stdout.Len())
			}
		})
	}
}

func TestCompletionCmd_Args(t *testing.T) {
	env := setupCmd(t)

	if err := execute(t, env, "completion", "tcsh"); err == nil {
		t.Error("expected an error for a shell outside ValidArgs")
	}
	resetFlags(rootCmd)
	if err := execute(t, env, "completion"); err == nil {
		t.Error("expected an error without a shell")
	}
}

func TestCompletionCmd_Run(t *testing.T) {
	env := setupCmd(t)

	if err := execute(t, env, "completion", "fish"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, env.stdout.String(), "complete -c otdash")
}
