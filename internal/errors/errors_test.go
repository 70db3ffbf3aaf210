package errors

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	base := errors.New("storage not initialized")
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("something went wrong"), "Error: something went wrong"},
		{"hinted error", WithHint(base, "run 'puffless init' first"), "Error: storage not initialized\nHint: run 'puffless init' first"},
		{"wrapped hint", fmt.Errorf("load: %w", WithHint(base, "run init")), "Error: load: storage not initialized\nHint: run init"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "hint") != nil {
		t.Error("WithHint(nil) should be nil")
	}
	base := errors.New("boom")
	if !errors.Is(WithHint(base, "x"), base) {
		t.Error("WithHint should unwrap to the original error")
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("invalid mood %d", 9); got != "Error: invalid mood 9" {
		t.Errorf("Formatf = %q", got)
	}
}

func TestFatalExits(t *testing.T) {
	if os.Getenv("PUFFLESS_TEST_FATAL") == "1" {
		Fatal(errors.New("fatal failure"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalExits")
	cmd.Env = append(os.Environ(), "PUFFLESS_TEST_FATAL=1")
	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(string(out), "Error: fatal failure") {
		t.Errorf("expected formatted error in output, got %q", out)
	}
}
