package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindEnumeration, "Enumeration error"},
		{KindProbe, "Probe error"},
		{KindParse, "Parse error"},
		{KindWrite, "Write error"},
		{KindConfig, "Configuration error"},
		{KindCommand, "Command error"},
		{KindCancelled, "Operation cancelled"},
		{ErrorKind(99), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindWrite,
		Message:    "metadata.json",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "Write error: metadata.json: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := &CoreError{
		Kind:    KindConfig,
		Message: "config issue",
	}

	got2 := err2.Error()
	expected2 := "Configuration error: config issue"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindProbe,
		Message:    "test",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return underlying error")
	}
}

func TestCoreErrorIs(t *testing.T) {
	err1 := &CoreError{Kind: KindProbe, Message: "a.mp4"}
	err2 := &CoreError{Kind: KindProbe, Message: "b.mp4"}
	err3 := &CoreError{Kind: KindConfig, Message: "test3"}

	if !err1.Is(err2) {
		t.Error("Same kind errors should match")
	}

	if err1.Is(err3) {
		t.Error("Different kind errors should not match")
	}
}

func TestCommandError(t *testing.T) {
	startErr := &CommandError{
		Command:    "ffprobe",
		Kind:       CommandStart,
		Underlying: errors.New("not found"),
	}
	if got := startErr.Error(); got != "failed to execute ffprobe: not found" {
		t.Errorf("CommandStart error = %v", got)
	}

	timeoutErr := &CommandError{
		Command:    "ffprobe",
		Kind:       CommandTimeout,
		Underlying: context.DeadlineExceeded,
	}
	if got := timeoutErr.Error(); got != "ffprobe timed out: context deadline exceeded" {
		t.Errorf("CommandTimeout error = %v", got)
	}

	failedErr := &CommandError{
		Command:  "ffprobe",
		Kind:     CommandFailed,
		ExitCode: 1,
		Stderr:   "Invalid data found when processing input",
	}
	expected := "command ffprobe failed with exit code 1: Invalid data found when processing input"
	if got := failedErr.Error(); got != expected {
		t.Errorf("CommandFailed error = %v, want %v", got, expected)
	}
}

func TestNewEnumerationError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantPrefix string
	}{
		{"missing", fmt.Errorf("open /nope: %w", fs.ErrNotExist), "directory not found"},
		{"forbidden", fmt.Errorf("open /root: %w", fs.ErrPermission), "permission denied"},
		{"other", errors.New("i/o error"), "cannot read directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEnumerationError("/videos", tt.err)
			if err.Kind != KindEnumeration {
				t.Errorf("Kind = %v, want KindEnumeration", err.Kind)
			}
			if !strings.HasPrefix(err.Message, tt.wantPrefix) {
				t.Errorf("Message = %q, want prefix %q", err.Message, tt.wantPrefix)
			}
			if !strings.Contains(err.Message, "/videos") {
				t.Errorf("Message = %q, want it to name the directory", err.Message)
			}
			if !errors.Is(err, tt.err) {
				t.Error("underlying error should be reachable through errors.Is")
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("NewProbeError", func(t *testing.T) {
		err := NewProbeError("c.mkv", errors.New("boom"))
		if err.Kind != KindProbe {
			t.Errorf("Expected KindProbe, got %v", err.Kind)
		}
		if !strings.Contains(err.Error(), "c.mkv") {
			t.Errorf("Error() = %q, want it to mention the file", err.Error())
		}
	})

	t.Run("NewParseError", func(t *testing.T) {
		err := NewParseError("r_frame_rate", "abc")
		if err.Kind != KindParse {
			t.Errorf("Expected KindParse, got %v", err.Kind)
		}
	})

	t.Run("NewWriteError", func(t *testing.T) {
		err := NewWriteError("/ro/out.json", errors.New("read-only file system"))
		if err.Kind != KindWrite {
			t.Errorf("Expected KindWrite, got %v", err.Kind)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		err := NewConfigError("invalid backend", nil)
		if err.Kind != KindConfig {
			t.Errorf("Expected KindConfig, got %v", err.Kind)
		}
	})

	t.Run("NewCancelledError", func(t *testing.T) {
		err := NewCancelledError(context.Canceled)
		if err.Kind != KindCancelled {
			t.Errorf("Expected KindCancelled, got %v", err.Kind)
		}
	})
}

func TestIsKind(t *testing.T) {
	err := NewConfigError("test", nil)

	if !IsKind(err, KindConfig) {
		t.Error("IsKind should return true for matching kind")
	}

	if IsKind(err, KindProbe) {
		t.Error("IsKind should return false for non-matching kind")
	}

	if IsKind(errors.New("plain error"), KindConfig) {
		t.Error("IsKind should return false for non-CoreError")
	}

	wrapped := fmt.Errorf("scan: %w", NewProbeError("a.mp4", NewCommandFailedError("ffprobe", 1, "")))
	if !IsKind(wrapped, KindProbe) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if !IsKind(wrapped, KindCommand) {
		t.Error("IsKind should find nested kinds")
	}
}

func TestWrapExecError(t *testing.T) {
	t.Run("deadline", func(t *testing.T) {
		err := WrapExecError("ffprobe", errors.New("signal: killed"), "", context.DeadlineExceeded)
		cmdErr, ok := CommandFailure(err)
		if !ok {
			t.Fatal("expected a CommandError in the chain")
		}
		if cmdErr.Kind != CommandTimeout {
			t.Errorf("Kind = %v, want CommandTimeout", cmdErr.Kind)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		err := WrapExecError("ffprobe", errors.New("signal: killed"), "", context.Canceled)
		if !IsCancelled(err) {
			t.Errorf("expected cancelled error, got %v", err)
		}
	})

	t.Run("start failure", func(t *testing.T) {
		err := WrapExecError("ffprobe", errors.New("executable file not found in $PATH"), "", nil)
		cmdErr, ok := CommandFailure(err)
		if !ok {
			t.Fatal("expected a CommandError in the chain")
		}
		if cmdErr.Kind != CommandStart {
			t.Errorf("Kind = %v, want CommandStart", cmdErr.Kind)
		}
	})
}
