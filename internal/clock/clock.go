// Package clock provides an injectable time source.
//
// Production code calls Real(loc) and tests call Fake(t). Everything that
// needs "now" (the today query, relative deadline words) goes through a
// Clock so the reference time zone is configuration rather than whatever
// the process happens to run in.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time in a fixed location
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Real returns a Clock backed by time.Now, converted to loc.
// A nil loc means time.Local.
func Real(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return realClock{loc: loc}
}

type realClock struct {
	loc *time.Location
}

func (c realClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c realClock) Location() *time.Location { return c.loc }

// FakeClock is a Clock that only moves when told to. Safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// Fake returns a FakeClock frozen at initial. Its location is initial's.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// Now returns the frozen time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Location returns the location of the frozen time
func (c *FakeClock) Location() *time.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Location()
}

// Advance moves the clock forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set jumps the clock to t
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}
