package history

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultMaxEntries is the undo limit when none is configured.
// Zero means the undo stack is never trimmed.
const DefaultMaxEntries = 0

// entry wraps a command with metadata.
type entry struct {
	id        string
	seq       uint64
	command   Command
	timestamp time.Time
}

func (e *entry) info() OperationInfo {
	return OperationInfo{
		ID:          e.id,
		Kind:        KindOf(e.command),
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// Processor runs commands and manages their undo/redo stacks.
//
// A command lives in at most one of the two stacks. Undo moves the top of
// the undo stack to the redo stack; Redo moves it back. Executing a new
// command clears the redo stack.
//
// Processor is not safe for concurrent use. It is meant to be driven by a
// single session.
type Processor struct {
	undoStack []*entry
	redoStack []*entry

	// held indexes the commands of both stacks.
	held map[Command]struct{}

	// seq numbers entries in execution order. base is the position below
	// the oldest retained undo entry.
	seq  uint64
	base uint64

	maxEntries int
	logger     zerolog.Logger
	observers  []Observer
}

// NewProcessor creates a processor with empty history.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		held:       make(map[Command]struct{}),
		maxEntries: DefaultMaxEntries,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("component", "history").Logger()
	return p
}

// Execute runs a command and pushes it onto the undo stack.
// If the command fails nothing is recorded.
//
// A command instance may be recorded once. Executing a command that is
// still on either stack returns ErrCommandRecorded without running it.
// A nil command, including a typed nil pointer, returns ErrNilCommand.
func (p *Processor) Execute(cmd Command) error {
	if isNil(cmd) {
		return ErrNilCommand
	}
	if p.holds(cmd) {
		return ErrCommandRecorded
	}
	if err := cmd.Execute(); err != nil {
		p.logger.Debug().Err(err).Str("kind", KindOf(cmd)).Msg("command rejected")
		return err
	}

	p.seq++
	e := &entry{
		id:        uuid.NewString(),
		seq:       p.seq,
		command:   cmd,
		timestamp: time.Now(),
	}
	p.push(e)
	p.notify(ActionExecute, e)
	return nil
}

// push adds an entry to the undo stack and clears the redo stack.
func (p *Processor) push(e *entry) {
	p.release(p.redoStack)
	p.redoStack = nil
	p.undoStack = append(p.undoStack, e)
	p.hold(e.command)
	p.trim()
}

// trim drops the oldest undo entries beyond the configured maximum.
func (p *Processor) trim() {
	if p.maxEntries <= 0 || len(p.undoStack) <= p.maxEntries {
		return
	}
	excess := len(p.undoStack) - p.maxEntries
	dropped := p.undoStack[:excess]
	p.base = dropped[len(dropped)-1].seq
	p.release(dropped)
	p.undoStack = p.undoStack[excess:]
	p.logger.Info().
		Int("dropped", excess).
		Int("max_entries", p.maxEntries).
		Msg("undo history trimmed")
}

// position returns the sequence number of the current state.
func (p *Processor) position() uint64 {
	if len(p.undoStack) == 0 {
		return p.base
	}
	return p.undoStack[len(p.undoStack)-1].seq
}

// Undo reverts the most recently executed command.
// It returns ErrNothingToUndo if the undo stack is empty.
func (p *Processor) Undo() error {
	if len(p.undoStack) == 0 {
		return ErrNothingToUndo
	}

	e := p.undoStack[len(p.undoStack)-1]
	if err := e.command.Undo(); err != nil {
		// Entry stays where it was.
		return err
	}

	p.undoStack = p.undoStack[:len(p.undoStack)-1]
	p.redoStack = append(p.redoStack, e)
	p.notify(ActionUndo, e)
	return nil
}

// Redo re-executes the most recently undone command.
// It returns ErrNothingToRedo if the redo stack is empty.
func (p *Processor) Redo() error {
	if len(p.redoStack) == 0 {
		return ErrNothingToRedo
	}

	e := p.redoStack[len(p.redoStack)-1]
	if err := e.command.Execute(); err != nil {
		return err
	}

	p.redoStack = p.redoStack[:len(p.redoStack)-1]
	p.undoStack = append(p.undoStack, e)
	p.trim()
	p.notify(ActionRedo, e)
	return nil
}

func (p *Processor) notify(action Action, e *entry) {
	info := e.info()
	p.logger.Debug().
		Str("action", action.String()).
		Str("kind", info.Kind).
		Str("id", info.ID).
		Int("undo_depth", len(p.undoStack)).
		Int("redo_depth", len(p.redoStack)).
		Msg(info.Description)

	for _, o := range p.observers {
		o.Observe(action, info, len(p.undoStack), len(p.redoStack))
	}
}

// hold, release and holds track commands by identity. Commands of a
// non-comparable type cannot be map keys and are not tracked.
func (p *Processor) hold(cmd Command) {
	if reflect.TypeOf(cmd).Comparable() {
		p.held[cmd] = struct{}{}
	}
}

func (p *Processor) release(entries []*entry) {
	for _, e := range entries {
		if reflect.TypeOf(e.command).Comparable() {
			delete(p.held, e.command)
		}
	}
}

func (p *Processor) holds(cmd Command) bool {
	if !reflect.TypeOf(cmd).Comparable() {
		return false
	}
	_, ok := p.held[cmd]
	return ok
}

func isNil(cmd Command) bool {
	if cmd == nil {
		return true
	}
	v := reflect.ValueOf(cmd)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// CanUndo returns true if undo is available.
func (p *Processor) CanUndo() bool {
	return len(p.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (p *Processor) CanRedo() bool {
	return len(p.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (p *Processor) UndoCount() int {
	return len(p.undoStack)
}

// RedoCount returns the number of redo operations available.
func (p *Processor) RedoCount() int {
	return len(p.redoStack)
}

// Clear removes all undo/redo history. The schedule is left as it is and
// checkpoints taken before Clear, other than one at the current position,
// become unreachable.
func (p *Processor) Clear() {
	p.base = p.position()
	p.undoStack = nil
	p.redoStack = nil
	clear(p.held)
}

// UndoInfo returns info about available undo operations, oldest first.
func (p *Processor) UndoInfo() []OperationInfo {
	return infos(p.undoStack)
}

// RedoInfo returns info about available redo operations, oldest first.
func (p *Processor) RedoInfo() []OperationInfo {
	return infos(p.redoStack)
}

func infos(stack []*entry) []OperationInfo {
	result := make([]OperationInfo, len(stack))
	for i, e := range stack {
		result[i] = e.info()
	}
	return result
}

// PeekUndo returns info about the next undo operation without removing it.
func (p *Processor) PeekUndo() (OperationInfo, bool) {
	if len(p.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return p.undoStack[len(p.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo operation without removing it.
func (p *Processor) PeekRedo() (OperationInfo, bool) {
	if len(p.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return p.redoStack[len(p.redoStack)-1].info(), true
}
