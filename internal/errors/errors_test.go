package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

var errNotOnboarded = errors.New("no quit attempt recorded yet")

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("something went wrong"), "Error: something went wrong"},
		{
			name:     "hinted error",
			err:      WithHint(errNotOnboarded, "run 'smokefree onboard'"),
			expected: "Error: no quit attempt recorded yet\nHint: run 'smokefree onboard'",
		},
		{
			name:     "hint survives wrapping",
			err:      fmt.Errorf("failed to load metrics: %w", WithHint(errNotOnboarded, "run 'smokefree onboard'")),
			expected: "Error: failed to load metrics: no quit attempt recorded yet\nHint: run 'smokefree onboard'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if WithHint(nil, "ignored") != nil {
		t.Error("WithHint(nil) should be nil")
	}
	err := WithHint(errNotOnboarded, "onboard first")
	if !errors.Is(err, errNotOnboarded) {
		t.Error("hinted error should unwrap to the original")
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("connection to %s:%d failed", "localhost", 5432)
	if got != "Error: connection to localhost:5432 failed" {
		t.Errorf("Formatf() = %q", got)
	}
}

// TestFatal runs Fatal in a helper process since it exits
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(WithHint(errors.New("test error"), "try again"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: test error\nHint: try again") {
		t.Errorf("Fatal() stderr = %q", stderr.String())
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
