package history

// Checkpoint marks a point in history that can be returned to by undoing.
type Checkpoint struct {
	seq uint64
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (p *Processor) CreateCheckpoint() Checkpoint {
	return Checkpoint{seq: p.position()}
}

// UndoToCheckpoint undoes every command executed since cp.
//
// It returns ErrCheckpointUnreachable without undoing anything when cp is
// not on the path from the oldest retained entry to the current position,
// for example after the command it follows was undone and the redo stack
// flushed. If an Undo fails part way the error is returned and the commands
// already undone stay on the redo stack.
func (p *Processor) UndoToCheckpoint(cp Checkpoint) error {
	if !p.reaches(cp) {
		return ErrCheckpointUnreachable
	}
	for p.position() != cp.seq {
		if err := p.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// reaches reports whether undoing can arrive at cp.
func (p *Processor) reaches(cp Checkpoint) bool {
	if cp.seq == p.base {
		return true
	}
	for _, e := range p.undoStack {
		if e.seq == cp.seq {
			return true
		}
	}
	return false
}
