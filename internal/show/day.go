package show

import (
	"fmt"
	"strings"
)

// Day is one of the seven days of a broadcast week.
type Day int

// Days of the week in canonical order.
const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of slots in a week.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Days returns all days in canonical order.
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven days.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the full English name of the day.
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay parses a day name. It accepts the full name or its
// three-letter abbreviation, case-insensitively.
func ParseDay(s string) (Day, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) >= 3 {
		for i, full := range dayNames {
			lower := strings.ToLower(full)
			if name == lower || name == lower[:3] {
				return Day(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDay, s)
}
