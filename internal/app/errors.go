package app

import (
	"errors"
	"fmt"

	"data-digitizer/internal/points"
)

var (
	// ErrNonNumericInput is returned when an axis bound or test value is
	// not a number.
	ErrNonNumericInput = errors.New("value is not a number")

	// ErrUndefinedProjection is returned when a test value projects to a
	// non-finite pixel position.
	ErrUndefinedProjection = errors.New("test value has no pixel position")

	// ErrUnknownCommand is returned by Dispatch for commands it cannot run.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")
)

// CommandError records the command that failed and why.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Level is how a failed command is reported to the user.
type Level int

const (
	Info Level = iota
	Warning
)

func (l Level) String() string {
	if l == Info {
		return "Info"
	}
	return "Warning"
}

// Severity classifies a command error for display. Running short of points
// is informational; everything else is a warning.
func Severity(err error) Level {
	if errors.Is(err, points.ErrInsufficientPoints) {
		return Info
	}
	return Warning
}
