package testutil

import (
	"time"

	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/store"
)

// Today is the fixed "now" used by tests: Friday 2026-10-16, 09:00 UTC.
var Today = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

// Midnight returns Today shifted by days, at midnight
func Midnight(days int) time.Time {
	return time.Date(2026, 10, 16+days, 0, 0, 0, 0, time.UTC)
}

// NewStore returns an empty store on a fake clock frozen at Today
func NewStore() (*store.Store, *clock.FakeClock) {
	c := clock.Fake(Today)
	return store.New(c), c
}

// SeedTraining fills s with the two-project session used across tests:
// "secrets" (tasks 1-2) and "training" (tasks 3-8), tasks 1, 3, 5 and 6
// done, deadlines on 1 (today), 2 (yesterday), 3 (today), 4 (tomorrow).
func SeedTraining(s *store.Store) {
	s.AddProject("secrets")
	s.AddTask("secrets", "Eat more donuts.")
	s.AddTask("secrets", "Destroy all humans.")

	s.AddProject("training")
	for _, d := range []string{
		"Four Elements of Simple Design",
		"SOLID",
		"Coupling and Cohesion",
		"Primitive Obsession",
		"Outside-In TDD",
		"Interaction-Driven Design",
	} {
		s.AddTask("training", d)
	}

	for _, id := range []int64{1, 3, 5, 6} {
		s.MarkTaskDone(id, true)
	}

	s.SetDeadline(1, Midnight(0))
	s.SetDeadline(2, Midnight(-1))
	s.SetDeadline(3, Midnight(0))
	s.SetDeadline(4, Midnight(1))
}
