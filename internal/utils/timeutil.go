package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
)

// ParseClock converts an HH:MM string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back into an HH:MM string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddClock returns clock shifted forward by the given number of minutes.
// All arithmetic stays within a single reference day.
func AddClock(clock string, minutes int) (string, error) {
	m, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatClock(m + minutes), nil
}

// DiffMinutes returns the whole minutes between two clocks on the same day.
func DiffMinutes(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

var dayAliases = map[string]string{
	"mon": "Monday", "monday": "Monday",
	"tue": "Tuesday", "tuesday": "Tuesday",
	"wed": "Wednesday", "wednesday": "Wednesday",
	"thu": "Thursday", "thursday": "Thursday",
	"fri": "Friday", "friday": "Friday",
	"sat": "Saturday", "saturday": "Saturday",
	"sun": "Sunday", "sunday": "Sunday",
	"daily": constants.DayDaily,
}

// NormalizeDay canonicalizes a day name ("mon", "Monday", "daily").
func NormalizeDay(day string) (string, error) {
	if normalized, ok := dayAliases[strings.ToLower(strings.TrimSpace(day))]; ok {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid day: %q", day)
}

// DayMatches reports whether an activity scheduled for activityDay occurs
// on the given weekday. Activities marked daily occur on every day.
func DayMatches(activityDay, day string) bool {
	return activityDay == day || activityDay == constants.DayDaily
}

// Today returns the canonical name of the current weekday.
func Today() string {
	return time.Now().Weekday().String()
}
