package deadline

import (
	"reflect"
	"testing"
	"time"

	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/dates"
	"github.com/dori/tasklist/internal/store"
)

var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func newStore() *store.Store {
	return store.New(clock.Fake(today.Add(9 * time.Hour)))
}

// groupIDs flattens groups into date -> project -> ids for easy comparison
type groupIDs struct {
	date     string
	projects []projectIDs
}

type projectIDs struct {
	name string
	ids  []int64
}

func flatten(groups []Group) []groupIDs {
	var out []groupIDs
	for _, g := range groups {
		gi := groupIDs{date: g.Date.Format("2006-01-02")}
		for _, p := range g.Projects {
			pi := projectIDs{name: p.Project}
			for _, t := range p.Tasks {
				pi.ids = append(pi.ids, t.ID)
			}
			gi.projects = append(gi.projects, pi)
		}
		out = append(out, gi)
	}
	return out
}

func TestTasksWithDeadlinesTwoDates(t *testing.T) {
	s := newStore()
	s.AddProject("a")
	s.AddTask("a", "t1")
	s.AddProject("b")
	s.AddTask("b", "t2")
	s.SetDeadlineByText("1", today)
	s.SetDeadlineByText("2", today.AddDate(0, 0, -1))

	got := flatten(NewBuilder(s).TasksWithDeadlines())
	want := []groupIDs{
		{date: "2026-10-15", projects: []projectIDs{{name: "b", ids: []int64{2}}}},
		{date: "2026-10-16", projects: []projectIDs{{name: "a", ids: []int64{1}}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TasksWithDeadlines() = %+v, want %+v", got, want)
	}
}

// The session from the interactive acceptance run: two projects, mixed
// deadlines, some tasks without one.
func seedTraining(s *store.Store) {
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
	s.SetDeadline(1, today)
	s.SetDeadline(2, today.AddDate(0, 0, -1))
	s.SetDeadline(3, today.Add(15*time.Hour))
	s.SetDeadline(4, today.AddDate(0, 0, 1))
}

func TestTasksWithDeadlinesGroupsByDateThenProject(t *testing.T) {
	s := newStore()
	seedTraining(s)

	got := flatten(NewBuilder(s).TasksWithDeadlines())
	want := []groupIDs{
		{date: "2026-10-15", projects: []projectIDs{{name: "secrets", ids: []int64{2}}}},
		{date: "2026-10-16", projects: []projectIDs{
			{name: "secrets", ids: []int64{1}},
			{name: "training", ids: []int64{3}},
		}},
		{date: "2026-10-17", projects: []projectIDs{{name: "training", ids: []int64{4}}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TasksWithDeadlines() = %+v, want %+v", got, want)
	}
}

func TestTasksWithDeadlinesIgnoresTimeOfDay(t *testing.T) {
	s := newStore()
	s.AddProject("p")
	s.AddTask("p", "late")
	s.AddTask("p", "early")
	s.SetDeadline(1, today.Add(23*time.Hour))
	s.SetDeadline(2, today.Add(1*time.Hour))

	groups := NewBuilder(s).TasksWithDeadlines()
	if len(groups) != 1 {
		t.Fatalf("expected one date group, got %d", len(groups))
	}
	ids := []int64{groups[0].Projects[0].Tasks[0].ID, groups[0].Projects[0].Tasks[1].ID}
	if !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("expected creation order [1 2] regardless of time of day, got %v", ids)
	}
	if !groups[0].Date.Equal(today) {
		t.Errorf("group date = %v, want %v", groups[0].Date, today)
	}
}

func TestTasksWithDeadlinesProjectOrderIsCreationOrder(t *testing.T) {
	s := newStore()
	s.AddProject("zeta")
	s.AddProject("alpha")
	s.AddProject("mid")
	s.AddTask("mid", "m")   // 1
	s.AddTask("alpha", "a") // 2
	s.AddTask("zeta", "z")  // 3
	for id := int64(1); id <= 3; id++ {
		s.SetDeadline(id, today)
	}

	groups := NewBuilder(s).TasksWithDeadlines()
	var names []string
	for _, p := range groups[0].Projects {
		names = append(names, p.Project)
	}
	if !reflect.DeepEqual(names, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("project order = %v, want creation order", names)
	}
}

func TestTasksWithDeadlinesDateOrder(t *testing.T) {
	s := newStore()
	s.AddProject("p")
	offsets := []int{5, -3, 0, 12, -40, 5, 1}
	for i, off := range offsets {
		s.AddTask("p", "t")
		s.SetDeadline(int64(i+1), today.AddDate(0, 0, off))
	}

	groups := NewBuilder(s).TasksWithDeadlines()
	for i := 1; i < len(groups); i++ {
		if !groups[i-1].Date.Before(groups[i].Date) {
			t.Errorf("group %d (%v) not before group %d (%v)", i-1, groups[i-1].Date, i, groups[i].Date)
		}
	}
	if len(groups) != 6 {
		t.Errorf("expected 6 distinct dates, got %d", len(groups))
	}
}

func TestTasksWithoutDeadlines(t *testing.T) {
	s := newStore()
	seedTraining(s)
	s.AddProject("empty")
	s.AddProject("all-dated")
	s.AddTask("all-dated", "x") // 9
	s.SetDeadline(9, today)

	got := NewBuilder(s).TasksWithoutDeadlines()
	if len(got) != 1 {
		t.Fatalf("expected only training to have undated tasks, got %+v", got)
	}
	if got[0].Project != "training" {
		t.Errorf("project = %q, want training", got[0].Project)
	}
	var ids []int64
	for _, task := range got[0].Tasks {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []int64{5, 6, 7, 8}) {
		t.Errorf("ids = %v, want [5 6 7 8]", ids)
	}
}

func TestViewsPartitionAllTasks(t *testing.T) {
	s := newStore()
	seedTraining(s)
	s.AddProject("extra")
	s.AddTask("extra", "dated")
	s.AddTask("extra", "undated")
	s.SetDeadline(9, today.AddDate(0, 1, 0))

	report := NewBuilder(s).ByDeadline()

	count := make(map[int64]int)
	for _, g := range report.Dated {
		for _, p := range g.Projects {
			for _, task := range p.Tasks {
				if task.Deadline == nil {
					t.Errorf("task %d in dated view has no deadline", task.ID)
				}
				count[task.ID]++
			}
		}
	}
	for _, p := range report.Undated {
		for _, task := range p.Tasks {
			if task.Deadline != nil {
				t.Errorf("task %d in undated view has a deadline", task.ID)
			}
			count[task.ID]++
		}
	}

	if len(count) != s.TaskCount() {
		t.Errorf("views cover %d tasks, store has %d", len(count), s.TaskCount())
	}
	for id, n := range count {
		if n != 1 {
			t.Errorf("task %d appears %d times", id, n)
		}
	}
}

func TestViewsAreDeterministic(t *testing.T) {
	s := newStore()
	seedTraining(s)
	b := NewBuilder(s)

	first := b.ByDeadline()
	for i := 0; i < 20; i++ {
		if again := b.ByDeadline(); !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d produced a different report", i)
		}
	}
}

func TestViewsEmptyStore(t *testing.T) {
	b := NewBuilder(newStore())
	if g := b.TasksWithDeadlines(); len(g) != 0 {
		t.Errorf("expected no groups, got %+v", g)
	}
	if u := b.TasksWithoutDeadlines(); len(u) != 0 {
		t.Errorf("expected no undated projects, got %+v", u)
	}
}

func TestOffsetDeadlineSameDateAsToday(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	s := store.New(clk)
	s.AddProject("secrets")
	s.AddTask("secrets", "Eat more donuts.")

	when, err := dates.Parse("2026-10-16T23:00:00-05:00", clk)
	if err != nil {
		t.Fatal(err)
	}
	s.SetDeadline(1, when)

	if due := s.ListTasksDueToday(); len(due) != 1 {
		t.Fatalf("due today = %+v, want the task", due)
	}
	got := flatten(NewBuilder(s).TasksWithDeadlines())
	want := []groupIDs{
		{date: "2026-10-17", projects: []projectIDs{{name: "secrets", ids: []int64{1}}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %+v, want %+v", got, want)
	}
}
