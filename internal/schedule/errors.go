package schedule

import (
	"fmt"

	"github.com/dshills/lineup/internal/history"
)

// Errors returned by schedule commands. All wrap history.ErrPrecondition.
var (
	// ErrInvalidDay indicates a day outside Monday..Sunday.
	ErrInvalidDay = fmt.Errorf("%w: invalid day", history.ErrPrecondition)

	// ErrNilShow indicates an add command without a show.
	ErrNilShow = fmt.Errorf("%w: nil show", history.ErrPrecondition)

	// ErrNotExecuted indicates Undo on a command that has not run.
	ErrNotExecuted = fmt.Errorf("%w: command has not been executed", history.ErrPrecondition)
)
