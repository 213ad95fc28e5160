package app

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/schedule"
	"github.com/dshills/lineup/internal/seed"
	"github.com/dshills/lineup/internal/show"
)

// Session is one user's editing session over a weekly lineup. It owns the
// schedule and the history that mutates it and is not safe for concurrent
// use.
type Session struct {
	schedule *schedule.Schedule
	history  *history.Processor
	logger   zerolog.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger     zerolog.Logger
	maxEntries int
	observers  []history.Observer
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithMaxUndoEntries caps the undo history.
func WithMaxUndoEntries(max int) Option {
	return func(o *sessionOptions) {
		o.maxEntries = max
	}
}

// WithObserver registers a history observer.
func WithObserver(obs history.Observer) Option {
	return func(o *sessionOptions) {
		o.observers = append(o.observers, obs)
	}
}

// NewSession creates a session over an empty week.
func NewSession(opts ...Option) *Session {
	o := sessionOptions{
		logger:     zerolog.Nop(),
		maxEntries: history.DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hopts := []history.Option{
		history.WithMaxEntries(o.maxEntries),
		history.WithLogger(o.logger),
	}
	for _, obs := range o.observers {
		hopts = append(hopts, history.WithObserver(obs))
	}

	return &Session{
		schedule: schedule.New(),
		history:  history.NewProcessor(hopts...),
		logger:   o.logger.With().Str("component", "session").Logger(),
	}
}

// Schedule returns the session's schedule for read access.
func (s *Session) Schedule() *schedule.Schedule {
	return s.schedule
}

// History returns the session's command processor.
func (s *Session) History() *history.Processor {
	return s.history
}

// Add schedules sh on day.
func (s *Session) Add(day show.Day, sh show.Show) error {
	cmd := s.schedule.NewAddCommand(day, sh)
	if err := s.history.Execute(cmd); err != nil {
		return err
	}
	if replaced := cmd.Replaced(); !show.IsEmpty(replaced) {
		s.logger.Info().
			Stringer("day", day).
			Str("replaced", replaced.Description()).
			Msg("show replaced")
	}
	return nil
}

// Introduce wraps the show already on day with an introduction by speaker.
func (s *Session) Introduce(day show.Day, speaker string) error {
	if !day.Valid() {
		return fmt.Errorf("introduce: %w: %d", schedule.ErrInvalidDay, int(day))
	}
	current := s.schedule.Get(day)
	intro, err := show.NewIntroduced(speaker, current)
	if err != nil {
		return fmt.Errorf("introduce on %v: %w", day, err)
	}
	return s.Add(day, intro)
}

// Remove empties day.
func (s *Session) Remove(day show.Day) error {
	return s.history.Execute(s.schedule.NewRemoveCommand(day))
}

// Clear empties the whole week.
func (s *Session) Clear() error {
	return s.history.Execute(s.schedule.NewClearCommand())
}

// Undo reverts the last command.
func (s *Session) Undo() error {
	return s.history.Undo()
}

// Redo re-applies the last undone command.
func (s *Session) Redo() error {
	return s.history.Redo()
}

// CanUndo reports whether Undo has something to revert.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo has something to re-apply.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Mark records the current point in history for a later Rewind.
func (s *Session) Mark() history.Checkpoint {
	return s.history.CreateCheckpoint()
}

// Rewind undoes every command executed since cp.
func (s *Session) Rewind(cp history.Checkpoint) error {
	return s.history.UndoToCheckpoint(cp)
}

// Atomically runs fn and, if it fails, undoes every command executed
// while it ran. The undone commands remain available to Redo.
func (s *Session) Atomically(fn func() error) error {
	cp := s.Mark()
	err := fn()
	if err == nil {
		return nil
	}
	if rerr := s.Rewind(cp); rerr != nil {
		s.logger.Warn().Err(rerr).Msg("rollback incomplete")
		return errors.Join(err, fmt.Errorf("rolling back: %w", rerr))
	}
	s.logger.Info().Err(err).Msg("changes rolled back")
	return err
}

// Forget drops the undo and redo history. The week is unchanged.
func (s *Session) Forget() {
	n := s.history.UndoCount() + s.history.RedoCount()
	s.history.Clear()
	s.logger.Info().Int("entries", n).Msg("history forgotten")
}

// Get returns the show on day.
func (s *Session) Get(day show.Day) show.Show {
	return s.schedule.Get(day)
}

// Render returns the text rendering of the week.
func (s *Session) Render() string {
	return s.schedule.String()
}

// Seed executes every entry of f as an add command.
func (s *Session) Seed(f *seed.File) error {
	n, err := f.Apply(s.schedule, s.history)
	if err != nil {
		return fmt.Errorf("seeding lineup: %w", err)
	}
	s.logger.Info().Int("shows", n).Msg("lineup seeded")
	return nil
}
