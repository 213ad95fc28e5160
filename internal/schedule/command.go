package schedule

import (
	"fmt"

	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/show"
)

// Command kinds reported through history.Kinded.
const (
	KindAdd    = "add"
	KindRemove = "remove"
	KindClear  = "clear"
)

var (
	_ history.Command = (*AddCommand)(nil)
	_ history.Command = (*RemoveCommand)(nil)
	_ history.Command = (*ClearCommand)(nil)
)

// AddCommand schedules a show on a day, replacing whatever was there.
type AddCommand struct {
	schedule *Schedule
	Day      show.Day
	Show     show.Show

	previous show.Show
	executed bool
}

// NewAddCommand creates a command that puts sh on day.
func (s *Schedule) NewAddCommand(day show.Day, sh show.Show) *AddCommand {
	return &AddCommand{schedule: s, Day: day, Show: sh}
}

// Execute records the show currently on the day and overwrites it.
func (c *AddCommand) Execute() error {
	if !c.Day.Valid() {
		return fmt.Errorf("add: %w: %v", ErrInvalidDay, c.Day)
	}
	if c.Show == nil {
		return fmt.Errorf("add on %v: %w", c.Day, ErrNilShow)
	}

	c.previous = c.schedule.Get(c.Day)
	c.schedule.put(c.Day, c.Show)
	c.executed = true
	return nil
}

// Undo puts back the show that was on the day before Execute.
func (c *AddCommand) Undo() error {
	if !c.executed {
		return fmt.Errorf("undo add: %w", ErrNotExecuted)
	}
	c.schedule.put(c.Day, c.previous)
	c.executed = false
	return nil
}

// Replaced returns the show overwritten by the last Execute.
func (c *AddCommand) Replaced() show.Show {
	if c.previous == nil {
		return show.Empty
	}
	return c.previous
}

// Description returns a human-readable description.
func (c *AddCommand) Description() string {
	if c.Show == nil {
		return fmt.Sprintf("Add to %v", c.Day)
	}
	return fmt.Sprintf("Add %q on %v", c.Show.Description(), c.Day)
}

// Kind returns KindAdd.
func (c *AddCommand) Kind() string { return KindAdd }

// RemoveCommand empties a day. Removing from an empty day is allowed.
type RemoveCommand struct {
	schedule *Schedule
	Day      show.Day

	removed  show.Show
	executed bool
}

// NewRemoveCommand creates a command that empties day.
func (s *Schedule) NewRemoveCommand(day show.Day) *RemoveCommand {
	return &RemoveCommand{schedule: s, Day: day}
}

// Execute records the show on the day and replaces it with the sentinel.
func (c *RemoveCommand) Execute() error {
	if !c.Day.Valid() {
		return fmt.Errorf("remove: %w: %v", ErrInvalidDay, c.Day)
	}

	c.removed = c.schedule.Get(c.Day)
	c.schedule.put(c.Day, show.Empty)
	c.executed = true
	return nil
}

// Undo puts the removed show back.
func (c *RemoveCommand) Undo() error {
	if !c.executed {
		return fmt.Errorf("undo remove: %w", ErrNotExecuted)
	}
	c.schedule.put(c.Day, c.removed)
	c.executed = false
	return nil
}

// Description returns a human-readable description.
func (c *RemoveCommand) Description() string {
	return fmt.Sprintf("Remove show on %v", c.Day)
}

// Kind returns KindRemove.
func (c *RemoveCommand) Kind() string { return KindRemove }

// ClearCommand empties every day.
type ClearCommand struct {
	schedule *Schedule

	snapshot Week
	executed bool
}

// NewClearCommand creates a command that empties the whole week.
func (s *Schedule) NewClearCommand() *ClearCommand {
	return &ClearCommand{schedule: s}
}

// Execute snapshots the week and clears it.
func (c *ClearCommand) Execute() error {
	c.snapshot = c.schedule.Snapshot()
	c.schedule.clearAll()
	c.executed = true
	return nil
}

// Undo restores every day from the snapshot.
func (c *ClearCommand) Undo() error {
	if !c.executed {
		return fmt.Errorf("undo clear: %w", ErrNotExecuted)
	}
	c.schedule.restore(c.snapshot)
	c.executed = false
	return nil
}

// Description returns a human-readable description.
func (c *ClearCommand) Description() string {
	return "Clear schedule"
}

// Kind returns KindClear.
func (c *ClearCommand) Kind() string { return KindClear }
