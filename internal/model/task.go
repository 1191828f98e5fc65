package model

import (
	"time"
)

// Task represents a todo item inside a project
type Task struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Done        bool       `json:"done"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// HasDeadline returns true if a deadline has been set
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}

// DeadlineDate returns the calendar date of the deadline (midnight, same
// location). The second result is false when no deadline is set.
func (t *Task) DeadlineDate() (time.Time, bool) {
	if t.Deadline == nil {
		return time.Time{}, false
	}
	return CalendarDate(*t.Deadline), true
}

// IsDueOn returns true if the deadline falls on the same calendar date as day
func (t *Task) IsDueOn(day time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	d := t.Deadline.In(day.Location())
	return d.Year() == day.Year() && d.YearDay() == day.YearDay()
}

// Clone returns a copy that shares nothing with t
func (t *Task) Clone() Task {
	c := *t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	return c
}

// CalendarDate truncates t to midnight in its own location
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
