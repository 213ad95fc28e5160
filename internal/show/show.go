package show

import (
	"errors"
	"fmt"
)

// Errors returned when constructing shows or parsing days.
var (
	// ErrUnknownDay indicates a string that names no day of the week.
	ErrUnknownDay = errors.New("unknown day")

	// ErrNegativeRunningTime indicates a running time below zero.
	ErrNegativeRunningTime = errors.New("running time must not be negative")

	// ErrEmptyTitle indicates a show without a title.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrEmptySpeaker indicates an introduction without a speaker.
	ErrEmptySpeaker = errors.New("speaker must not be empty")

	// ErrEmptyShow indicates a composite show built around the empty show.
	ErrEmptyShow = errors.New("show must not be empty")
)

// IntroductionMinutes is the time added to a show by an introduction.
const IntroductionMinutes = 5

// Show is anything that can occupy a day slot.
// Implementations must be comparable value types; the schedule compares
// shows with == to recognize the empty sentinel.
type Show interface {
	// Description returns a human-readable description.
	Description() string

	// RunningTime returns the running time in minutes.
	RunningTime() int
}

type emptyShow struct{}

func (emptyShow) Description() string { return "" }
func (emptyShow) RunningTime() int    { return 0 }

// Empty is the sentinel for a day with nothing scheduled.
var Empty Show = emptyShow{}

// IsEmpty reports whether s is the empty sentinel.
// A nil show is treated as empty.
func IsEmpty(s Show) bool {
	return s == nil || s == Empty
}

// Movie is a single feature.
type Movie struct {
	Title   string
	Minutes int
}

// NewMovie creates a movie after validating its fields.
func NewMovie(title string, minutes int) (Movie, error) {
	if title == "" {
		return Movie{}, ErrEmptyTitle
	}
	if minutes < 0 {
		return Movie{}, fmt.Errorf("%w: %d", ErrNegativeRunningTime, minutes)
	}
	return Movie{Title: title, Minutes: minutes}, nil
}

// Description returns the title and running time.
func (m Movie) Description() string {
	return fmt.Sprintf("%s (%d min)", m.Title, m.Minutes)
}

// RunningTime returns the movie length.
func (m Movie) RunningTime() int {
	return m.Minutes
}

// Introduced is a show preceded by a short introduction from a speaker.
type Introduced struct {
	Speaker string
	Show    Show
}

// NewIntroduced wraps s with an introduction by speaker.
func NewIntroduced(speaker string, s Show) (Introduced, error) {
	if speaker == "" {
		return Introduced{}, ErrEmptySpeaker
	}
	if IsEmpty(s) {
		return Introduced{}, fmt.Errorf("introduce: %w", ErrEmptyShow)
	}
	return Introduced{Speaker: speaker, Show: s}, nil
}

// Description prefixes the wrapped description with the speaker.
func (i Introduced) Description() string {
	return fmt.Sprintf("%s introduces %s", i.Speaker, i.Show.Description())
}

// RunningTime adds the introduction to the wrapped show.
func (i Introduced) RunningTime() int {
	return IntroductionMinutes + i.Show.RunningTime()
}

// DoubleBill is two shows played back to back.
type DoubleBill struct {
	First  Show
	Second Show
}

// NewDoubleBill pairs two non-empty shows.
func NewDoubleBill(first, second Show) (DoubleBill, error) {
	if IsEmpty(first) || IsEmpty(second) {
		return DoubleBill{}, fmt.Errorf("double bill: %w", ErrEmptyShow)
	}
	return DoubleBill{First: first, Second: second}, nil
}

// Description joins both descriptions.
func (d DoubleBill) Description() string {
	return d.First.Description() + " / " + d.Second.Description()
}

// RunningTime sums both running times.
func (d DoubleBill) RunningTime() int {
	return d.First.RunningTime() + d.Second.RunningTime()
}
