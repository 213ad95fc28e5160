package history

// Command represents a reversible mutation that can be executed and undone.
//
// A command captures whatever it needs to invert itself when Execute runs,
// not when it is constructed. Redo is Execute called again, so Execute must
// re-derive that captured state each time.
type Command interface {
	// Execute performs the command. A failing Execute must leave the
	// target unchanged.
	Execute() error

	// Undo reverses the most recent Execute.
	Undo() error

	// Description returns a human-readable description of the command.
	Description() string
}

// Kinded is implemented by commands that report a short, stable kind
// ("add", "remove", ...) used to label logs and metrics.
type Kinded interface {
	Kind() string
}

// KindOf returns the kind of cmd, or "command" if it does not report one.
func KindOf(cmd Command) string {
	if k, ok := cmd.(Kinded); ok {
		return k.Kind()
	}
	return "command"
}
