// Package history provides undo/redo for reversible commands.
//
// The history system uses the Command pattern to encapsulate mutations,
// enabling them to be executed, undone, and redone.
//
// # Commands
//
// Commands implement the Command interface with Execute and Undo methods.
// A command records the state it needs for Undo while it executes. Redo
// does not have its own method: the processor calls Execute again.
//
// # Processor
//
// The Processor type owns the undo and redo stacks:
//
//	p := history.NewProcessor(history.WithMaxEntries(100))
//
//	// Execute commands
//	p.Execute(cmd)
//
//	// Undo/redo
//	p.Undo()
//	p.Redo()
//
// Undo and redo operate in strict LIFO order. Executing a new command
// clears the redo stack, so history never branches. A command instance is
// recorded at most once; executing it again while it is still on a stack
// fails with ErrCommandRecorded.
//
// # Checkpoints
//
// CreateCheckpoint marks the current position and UndoToCheckpoint undoes
// back to it:
//
//	cp := p.CreateCheckpoint()
//	if err := runBatch(p); err != nil {
//		p.UndoToCheckpoint(cp)
//	}
//
// # Errors
//
// Undo on an empty undo stack returns ErrNothingToUndo and Redo on an empty
// redo stack returns ErrNothingToRedo. Both wrap ErrPrecondition. Callers
// either check CanUndo/CanRedo first or handle the error.
package history
