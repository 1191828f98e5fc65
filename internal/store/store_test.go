package store

import (
	"testing"
	"time"

	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/model"
)

var testNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *clock.FakeClock) {
	t.Helper()
	c := clock.Fake(testNow)
	return New(c), c
}

func TestAddProjectAndTasks(t *testing.T) {
	s, _ := newTestStore(t)

	if !s.AddProject("secrets") {
		t.Fatal("AddProject(secrets) failed")
	}
	if !s.AddTask("secrets", "Eat more donuts.") {
		t.Fatal("AddTask failed")
	}
	if !s.AddTask("secrets", "Destroy all humans.") {
		t.Fatal("AddTask failed")
	}

	projects := s.ListProjects()
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.Name != "secrets" {
		t.Errorf("expected project name secrets, got %q", p.Name)
	}
	if len(p.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(p.Tasks))
	}

	want := []model.Task{
		{ID: 1, Description: "Eat more donuts."},
		{ID: 2, Description: "Destroy all humans."},
	}
	for i, w := range want {
		got := p.Tasks[i]
		if got.ID != w.ID || got.Description != w.Description {
			t.Errorf("task %d = {%d %q}, want {%d %q}", i, got.ID, got.Description, w.ID, w.Description)
		}
		if got.Done {
			t.Errorf("task %d should not be done", i)
		}
		if got.Deadline != nil {
			t.Errorf("task %d should have no deadline", i)
		}
	}
}

func TestAddProjectDuplicate(t *testing.T) {
	s, _ := newTestStore(t)

	if !s.AddProject("p") {
		t.Fatal("first AddProject failed")
	}
	if s.AddProject("p") {
		t.Error("second AddProject with same name should fail")
	}

	projects := s.ListProjects()
	if len(projects) != 1 || projects[0].Name != "p" {
		t.Errorf("expected exactly one project p, got %+v", projects)
	}
}

func TestAddProjectNamesAreCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)

	for _, name := range []string{"Work", "work", "WORK", "work "} {
		if !s.AddProject(name) {
			t.Errorf("AddProject(%q) failed", name)
		}
	}
	if got := len(s.ListProjects()); got != 4 {
		t.Errorf("expected 4 projects, got %d", got)
	}
}

func TestProjectNamesStayUnique(t *testing.T) {
	s, _ := newTestStore(t)

	names := []string{"a", "b", "a", "c", "b", "a", "d"}
	for _, n := range names {
		s.AddProject(n)
	}

	seen := make(map[string]bool)
	for _, p := range s.ListProjects() {
		if seen[p.Name] {
			t.Errorf("duplicate project %q", p.Name)
		}
		seen[p.Name] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct projects, got %d", len(seen))
	}
}

func TestAddTaskMissingProject(t *testing.T) {
	s, _ := newTestStore(t)

	if s.AddTask("missing", "x") {
		t.Error("AddTask on missing project should fail")
	}
	if s.TaskCount() != 0 {
		t.Errorf("expected no tasks, got %d", s.TaskCount())
	}
	if s.LastID() != 0 {
		t.Errorf("ID counter moved to %d", s.LastID())
	}

	// The next successful add still gets ID 1.
	s.AddProject("real")
	s.AddTask("real", "first")
	task, ok := s.FindTaskByID("1")
	if !ok || task.Description != "first" {
		t.Errorf("expected task 1 to be 'first', got %+v (found=%v)", task, ok)
	}
}

func TestIDsIncreaseAcrossProjects(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("a")
	s.AddProject("b")
	s.AddProject("c")

	order := []string{"a", "b", "a", "c", "missing", "b", "c", "a"}
	for _, p := range order {
		s.AddTask(p, "task in "+p)
	}

	var ids []int64
	for _, p := range s.ListProjects() {
		for _, task := range p.Tasks {
			ids = append(ids, task.ID)
		}
	}
	if len(ids) != 7 {
		t.Fatalf("expected 7 tasks, got %d", len(ids))
	}

	seen := make(map[int64]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
		if id < 1 || id > 7 {
			t.Errorf("id %d out of range 1..7", id)
		}
	}

	// Within each project IDs are strictly increasing in insertion order.
	for _, p := range s.ListProjects() {
		for i := 1; i < len(p.Tasks); i++ {
			if p.Tasks[i].ID <= p.Tasks[i-1].ID {
				t.Errorf("project %s: id %d after %d", p.Name, p.Tasks[i].ID, p.Tasks[i-1].ID)
			}
		}
	}
	if s.LastID() != 7 {
		t.Errorf("LastID() = %d, want 7", s.LastID())
	}
}

func TestStoresHaveIndependentCounters(t *testing.T) {
	a, _ := newTestStore(t)
	b, _ := newTestStore(t)

	a.AddProject("p")
	a.AddTask("p", "one")
	a.AddTask("p", "two")

	b.AddProject("p")
	b.AddTask("p", "only")

	if task, ok := b.FindTaskByID("1"); !ok || task.Description != "only" {
		t.Errorf("second store should start at 1, got %+v", task)
	}
}

func TestMarkTaskDone(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "t")

	if !s.MarkTaskDone(1, true) {
		t.Fatal("MarkTaskDone(1, true) failed")
	}
	if !s.MarkTaskDone(1, true) {
		t.Fatal("second MarkTaskDone(1, true) failed")
	}
	if task, _ := s.FindTaskByID("1"); !task.Done {
		t.Error("expected task done after setting true twice")
	}

	if !s.MarkTaskDone(1, false) {
		t.Fatal("MarkTaskDone(1, false) failed")
	}
	if task, _ := s.FindTaskByID("1"); task.Done {
		t.Error("expected task not done after setting false")
	}
}

func TestMarkTaskDoneUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "t")

	for _, id := range []int64{0, -1, 2, 999} {
		if s.MarkTaskDone(id, true) {
			t.Errorf("MarkTaskDone(%d) should fail", id)
		}
	}
	if task, _ := s.FindTaskByID("1"); task.Done {
		t.Error("unrelated task was modified")
	}
}

func TestMarkTaskDoneByText(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "t")

	if s.MarkTaskDoneByText("one", true) {
		t.Error("malformed id should fail")
	}
	if !s.MarkTaskDoneByText(" 1 ", true) {
		t.Error("padded id should succeed")
	}
}

func TestSetDeadlineOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "t")

	first := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

	if !s.SetDeadline(1, first) {
		t.Fatal("SetDeadline failed")
	}
	if !s.SetDeadline(1, second) {
		t.Fatal("second SetDeadline failed")
	}

	task, ok := s.FindTaskByID("1")
	if !ok {
		t.Fatal("task 1 not found")
	}
	if task.Deadline == nil || !task.Deadline.Equal(second) {
		t.Errorf("deadline = %v, want %v", task.Deadline, second)
	}
}

func TestSetDeadlineUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	if s.SetDeadline(1, testNow) {
		t.Error("SetDeadline on empty store should fail")
	}
	if s.SetDeadlineByText("abc", testNow) {
		t.Error("SetDeadlineByText with malformed id should fail")
	}
}

func TestFindTaskByID(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "only")

	tests := []struct {
		idText string
		found  bool
	}{
		{"1", true},
		{"abc", false},
		{"999", false},
		{"", false},
		{"1.0", false},
		{"-1", false},
		{"0", false},
	}
	for _, tt := range tests {
		_, ok := s.FindTaskByID(tt.idText)
		if ok != tt.found {
			t.Errorf("FindTaskByID(%q) found=%v, want %v", tt.idText, ok, tt.found)
		}
	}
}

func TestSnapshotsDoNotLeakState(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "t")

	projects := s.ListProjects()
	projects[0].Tasks[0].Done = true
	projects[0].Name = "renamed"

	task, _ := s.FindTaskByID("1")
	if task.Done {
		t.Error("mutating a snapshot changed the store")
	}
	if _, ok := s.Project("p"); !ok {
		t.Error("project renamed through snapshot")
	}
}

func TestListTasksDueToday(t *testing.T) {
	s, c := newTestStore(t)
	s.AddProject("a")
	s.AddProject("b")
	s.AddProject("c")
	s.AddTask("a", "a-today")     // 1
	s.AddTask("a", "a-yesterday") // 2
	s.AddTask("b", "b-none")      // 3
	s.AddTask("c", "c-tomorrow")  // 4
	s.AddTask("c", "c-today")     // 5

	today := time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC)
	s.SetDeadline(1, today)
	s.SetDeadline(2, today.AddDate(0, 0, -1))
	s.SetDeadline(4, today.AddDate(0, 0, 1))
	s.SetDeadline(5, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))

	due := s.ListTasksDueToday()
	if len(due) != 2 {
		t.Fatalf("expected 2 projects due today, got %d", len(due))
	}
	if due[0].Name != "a" || len(due[0].Tasks) != 1 || due[0].Tasks[0].ID != 1 {
		t.Errorf("unexpected first group: %+v", due[0])
	}
	if due[1].Name != "c" || len(due[1].Tasks) != 1 || due[1].Tasks[0].ID != 5 {
		t.Errorf("unexpected second group: %+v", due[1])
	}

	// A day later, task 4 is due and nothing else.
	c.Advance(24 * time.Hour)
	due = s.ListTasksDueToday()
	if len(due) != 1 || due[0].Name != "c" || due[0].Tasks[0].ID != 4 {
		t.Errorf("after advance, unexpected result: %+v", due)
	}
}

func TestListTasksDueTodayUsesClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	c := clock.Fake(time.Date(2026, 10, 17, 1, 0, 0, 0, tokyo))
	s := New(c)
	s.AddProject("p")
	s.AddTask("p", "t")

	// 2026-10-16 20:00 UTC is 2026-10-17 05:00 in Tokyo.
	s.SetDeadline(1, time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))

	due := s.ListTasksDueToday()
	if len(due) != 1 {
		t.Fatalf("expected the task to be due in the clock's zone, got %+v", due)
	}
}

func TestSetDeadlineKeepsClockLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	c := clock.Fake(time.Date(2026, 10, 17, 1, 0, 0, 0, tokyo))
	s := New(c)
	s.AddProject("p")
	s.AddTask("p", "t")

	s.SetDeadline(1, time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))

	task, _ := s.FindTaskByID("1")
	date, ok := task.DeadlineDate()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if want := time.Date(2026, 10, 17, 0, 0, 0, 0, tokyo); !date.Equal(want) {
		t.Errorf("DeadlineDate() = %v, want %v", date, want)
	}
	if !task.IsDueOn(c.Now()) {
		t.Error("the displayed date and the due-today check disagree")
	}
}

func TestListTasksDueTodayEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddProject("p")
	s.AddTask("p", "no deadline")

	if due := s.ListTasksDueToday(); len(due) != 0 {
		t.Errorf("expected nothing due, got %+v", due)
	}
}
