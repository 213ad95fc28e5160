package schedule

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/lineup/internal/show"
)

// Week holds one show per day, indexed by show.Day.
// It is a value type; copying a Week copies every slot.
type Week [show.DaysPerWeek]show.Show

// Get returns the show on day, or the empty sentinel.
func (w Week) Get(day show.Day) show.Show {
	if !day.Valid() || w[day] == nil {
		return show.Empty
	}
	return w[day]
}

// Schedule is a weekly lineup. Every day always maps to a show, which is
// show.Empty when nothing is scheduled.
//
// A Schedule is only changed by the commands it creates. It is not safe
// for concurrent use.
type Schedule struct {
	week Week
}

// New creates a schedule with every day empty.
func New() *Schedule {
	s := &Schedule{}
	s.clearAll()
	return s
}

// Get returns the show scheduled on day. It never fails: unscheduled and
// invalid days yield show.Empty.
func (s *Schedule) Get(day show.Day) show.Show {
	return s.week.Get(day)
}

// IsEmpty reports whether sh is the empty sentinel.
func (s *Schedule) IsEmpty(sh show.Show) bool {
	return show.IsEmpty(sh)
}

// Snapshot returns a copy of the whole week.
func (s *Schedule) Snapshot() Week {
	return s.week
}

// Scheduled returns the number of days holding a show.
func (s *Schedule) Scheduled() int {
	n := 0
	for _, sh := range s.week {
		if !show.IsEmpty(sh) {
			n++
		}
	}
	return n
}

// TotalRunningTime returns the combined running time of the week in minutes.
func (s *Schedule) TotalRunningTime() int {
	total := 0
	for _, sh := range s.week {
		total += sh.RunningTime()
	}
	return total
}

// put overwrites the show on day.
func (s *Schedule) put(day show.Day, sh show.Show) {
	s.week[day] = sh
}

// restore replaces the whole week.
func (s *Schedule) restore(w Week) {
	for _, day := range show.Days() {
		s.week[day] = w.Get(day)
	}
}

// clearAll resets every day to the sentinel.
func (s *Schedule) clearAll() {
	for _, day := range show.Days() {
		s.week[day] = show.Empty
	}
}

// String renders the schedule, one line per day in canonical order.
func (s *Schedule) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

// WriteTo writes the rendered schedule to w.
func (s *Schedule) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, day := range show.Days() {
		n, err := fmt.Fprintf(w, "%9s: %s\n", day, s.Get(day).Description())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
