// Package dates turns user-typed deadline text into a time and back.
package dates

import (
	"errors"
	"strings"
	"time"

	"github.com/dori/tasklist/internal/clock"
)

// DefaultLayout is how deadlines are shown unless configured otherwise
const DefaultLayout = "2006-01-02"

// ErrInvalidDate is returned when text matches no known form
var ErrInvalidDate = errors.New("invalid date")

// layouts are tried in order. Anything without a zone is read in the
// clock's location; anything with one is converted into it.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"01-02-2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
}

// shortLayouts have no year; the current year is assumed
var shortLayouts = []string{
	"Jan 2",
	"2 Jan",
}

// Parse reads a deadline. Natural words (today, tomorrow, yesterday,
// weekday names, nextweek) are resolved against clk. Absolute forms keep
// their time of day if one was given.
func Parse(text string, clk clock.Clock) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	now := clk.Now()
	loc := clk.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "nextweek":
		return today.AddDate(0, 0, 7), nil
	}
	if day, ok := weekday(strings.ToLower(s)); ok {
		return nextWeekday(today, day), nil
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range shortLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// Format renders a deadline with layout. An empty layout means DefaultLayout.
func Format(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Format(layout)
}

func weekday(s string) (time.Weekday, bool) {
	switch s {
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	case "sunday", "sun":
		return time.Sunday, true
	}
	return 0, false
}

// nextWeekday returns the next occurrence of day strictly after today
func nextWeekday(today time.Time, day time.Weekday) time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
