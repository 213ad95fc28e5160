package script

import (
	"errors"
	"fmt"
)

// Errors returned by script execution.
var (
	// ErrScriptTimeout indicates the script ran past its deadline.
	ErrScriptTimeout = errors.New("script timed out")

	// ErrScriptPanic indicates a panic escaped the Lua VM.
	ErrScriptPanic = errors.New("script panicked")
)

// Error wraps a Lua error with the script it came from.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
