// Package errors provides structured error types for vidmeta operations.
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindEnumeration represents a source directory that could not be listed.
	KindEnumeration ErrorKind = iota
	// KindProbe represents a file the external prober could not describe.
	KindProbe
	// KindParse represents a malformed numeric field in probe output.
	KindParse
	// KindWrite represents a failure to save the report.
	KindWrite
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindCommand represents external command execution errors.
	KindCommand
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindEnumeration:
		return "Enumeration error"
	case KindProbe:
		return "Probe error"
	case KindParse:
		return "Parse error"
	case KindWrite:
		return "Write error"
	case KindConfig:
		return "Configuration error"
	case KindCommand:
		return "Command error"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandTimeout means the command was killed after exceeding its deadline.
	CommandTimeout
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandTimeout:
		return fmt.Sprintf("%s timed out: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for vidmeta operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewEnumerationError classifies a directory listing failure. The message
// names the failure type so that a log line alone tells "missing" apart from
// "not readable".
func NewEnumerationError(dir string, err error) *CoreError {
	var reason string
	switch {
	case errors.Is(err, fs.ErrNotExist):
		reason = "directory not found"
	case errors.Is(err, fs.ErrPermission):
		reason = "permission denied"
	default:
		reason = "cannot read directory"
	}
	return &CoreError{Kind: KindEnumeration, Message: fmt.Sprintf("%s: %s", reason, dir), Underlying: err}
}

// NewProbeError creates an error for a file that could not be probed.
func NewProbeError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbe, Message: path, Underlying: underlying}
}

// NewParseError creates an error for a malformed probe field.
func NewParseError(field, value string) *CoreError {
	return &CoreError{Kind: KindParse, Message: fmt.Sprintf("%s %q", field, value)}
}

// NewWriteError creates an error for a report that could not be saved.
func NewWriteError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindWrite, Message: path, Underlying: underlying}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError(underlying error) *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled", Underlying: underlying}
}

// IsKind checks if the error has the specified kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	return errors.Is(err, &CoreError{Kind: kind})
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// CommandFailure extracts the CommandError from an error chain, if any.
func CommandFailure(err error) (*CommandError, bool) {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr, true
	}
	return nil, false
}

// WrapExecError wraps an exec error into a CoreError. ctxErr is the error of
// the context the command ran under; a non-nil deadline error marks the
// failure as a timeout rather than a crash.
func WrapExecError(cmd string, err error, stderr string, ctxErr error) *CoreError {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return NewCommandError(cmd, CommandTimeout, ctxErr)
	}
	if errors.Is(ctxErr, context.Canceled) {
		return NewCancelledError(ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandError(cmd, CommandStart, err)
}
