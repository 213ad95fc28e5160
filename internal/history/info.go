package history

import "time"

// Action identifies what the processor just did with a command.
type Action int

const (
	ActionExecute Action = iota
	ActionUndo
	ActionRedo
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case ActionExecute:
		return "execute"
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// OperationInfo provides read-only info about a history entry.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	ID          string    // Stable identifier of the entry
	Kind        string    // Command kind, see Kinded
	Description string    // Human-readable description
	Timestamp   time.Time // When the command was first executed
}

// Observer is notified after every successful execute, undo and redo.
// Observers run synchronously on the caller's goroutine.
type Observer interface {
	Observe(action Action, info OperationInfo, undoDepth, redoDepth int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(action Action, info OperationInfo, undoDepth, redoDepth int)

// Observe calls f.
func (f ObserverFunc) Observe(action Action, info OperationInfo, undoDepth, redoDepth int) {
	f(action, info, undoDepth, redoDepth)
}
