// Package seed reads a weekly lineup from YAML and turns it into commands.
//
// A seed file lists shows by day:
//
//	shows:
//	  - day: monday
//	    title: Casablanca
//	    minutes: 102
//	  - day: fri
//	    title: Alien
//	    minutes: 117
//	    introduced_by: Ada
//	    also:
//	      title: Aliens
//	      minutes: 137
//
// Seeding goes through the normal command path, so a seeded lineup can be
// undone like any other edit.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/lineup/internal/history"
	"github.com/dshills/lineup/internal/schedule"
	"github.com/dshills/lineup/internal/show"
)

// File is the document root of a seed file.
type File struct {
	Shows []Entry `yaml:"shows"`
}

// Entry schedules one show on one day.
type Entry struct {
	Day          string   `yaml:"day"`
	Title        string   `yaml:"title"`
	Minutes      int      `yaml:"minutes"`
	IntroducedBy string   `yaml:"introduced_by,omitempty"`
	Also         *Feature `yaml:"also,omitempty"`
}

// Feature is the second half of a double bill.
type Feature struct {
	Title   string `yaml:"title"`
	Minutes int    `yaml:"minutes"`
}

// Read decodes a seed document from r.
func Read(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return &f, nil
}

// ReadFile decodes the seed file at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed %s: %w", path, err)
	}
	defer fh.Close()
	return Read(fh)
}

// Build resolves an entry into its day and show.
func (e Entry) Build() (show.Day, show.Show, error) {
	day, err := show.ParseDay(e.Day)
	if err != nil {
		return 0, nil, err
	}

	var sh show.Show
	sh, err = show.NewMovie(e.Title, e.Minutes)
	if err != nil {
		return 0, nil, fmt.Errorf("%v: %w", day, err)
	}
	if e.Also != nil {
		second, err := show.NewMovie(e.Also.Title, e.Also.Minutes)
		if err != nil {
			return 0, nil, fmt.Errorf("%v second feature: %w", day, err)
		}
		if sh, err = show.NewDoubleBill(sh, second); err != nil {
			return 0, nil, err
		}
	}
	if e.IntroducedBy != "" {
		if sh, err = show.NewIntroduced(e.IntroducedBy, sh); err != nil {
			return 0, nil, err
		}
	}
	return day, sh, nil
}

// Commands validates every entry and returns one add command per entry.
// Nothing is returned if any entry is invalid.
func (f *File) Commands(s *schedule.Schedule) ([]history.Command, error) {
	cmds := make([]history.Command, 0, len(f.Shows))
	for i, e := range f.Shows {
		day, sh, err := e.Build()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
		cmds = append(cmds, s.NewAddCommand(day, sh))
	}
	return cmds, nil
}

// Apply executes the seed's commands through p and returns how many ran.
// On failure the commands already executed stay in the history.
func (f *File) Apply(s *schedule.Schedule, p *history.Processor) (int, error) {
	cmds, err := f.Commands(s)
	if err != nil {
		return 0, err
	}
	for i, cmd := range cmds {
		if err := p.Execute(cmd); err != nil {
			return i, err
		}
	}
	return len(cmds), nil
}
