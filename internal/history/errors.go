package history

import (
	"errors"
	"fmt"
)

// ErrPrecondition is the root of every contract violation reported by the
// history engine and the commands it runs. Use errors.Is to test for it.
var ErrPrecondition = errors.New("precondition violated")

// Common errors for history operations.
var (
	ErrNothingToUndo = fmt.Errorf("%w: nothing to undo", ErrPrecondition)
	ErrNothingToRedo = fmt.Errorf("%w: nothing to redo", ErrPrecondition)

	// ErrNilCommand is returned by Execute for a nil command, including a
	// typed nil pointer.
	ErrNilCommand = fmt.Errorf("%w: nil command", ErrPrecondition)

	// ErrCommandRecorded is returned by Execute for a command that already
	// sits on the undo or redo stack.
	ErrCommandRecorded = fmt.Errorf("%w: command is already in history", ErrPrecondition)

	// ErrCheckpointUnreachable is returned when the history no longer leads
	// back to a checkpoint.
	ErrCheckpointUnreachable = fmt.Errorf("%w: checkpoint is no longer in history", ErrPrecondition)
)
