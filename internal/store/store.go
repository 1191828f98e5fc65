// Package store holds the authoritative in-memory set of projects and tasks.
//
// The store is not safe for concurrent use. Hosts that serve several
// callers at once (the socket server) must serialize access themselves.
package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/model"
)

// Store owns every project and task and hands out task IDs
type Store struct {
	clock    clock.Clock
	projects []*model.Project
	byName   map[string]int
	byID     map[int64]taskRef
	lastID   int64
}

// taskRef locates a task by project and task position
type taskRef struct {
	project int
	task    int
}

// New creates an empty store. Each store has its own ID counter.
func New(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.Real(nil)
	}
	return &Store{
		clock:  clk,
		byName: make(map[string]int),
		byID:   make(map[int64]taskRef),
	}
}

// AddProject creates an empty project. Returns false if the name is taken.
func (s *Store) AddProject(name string) bool {
	if _, exists := s.byName[name]; exists {
		return false
	}
	s.byName[name] = len(s.projects)
	s.projects = append(s.projects, model.NewProject(name))
	return true
}

// AddTask appends a new task to the named project. Returns false, without
// consuming an ID, if the project doesn't exist.
func (s *Store) AddTask(projectName, description string) bool {
	pi, ok := s.byName[projectName]
	if !ok {
		return false
	}
	p := s.projects[pi]
	id := s.nextID()
	s.byID[id] = taskRef{project: pi, task: len(p.Tasks)}
	p.AddTask(&model.Task{
		ID:          id,
		Description: description,
		Done:        false,
	})
	return true
}

// MarkTaskDone sets the done flag of a task
func (s *Store) MarkTaskDone(taskID int64, done bool) bool {
	t := s.lookup(taskID)
	if t == nil {
		return false
	}
	t.Done = done
	return true
}

// SetDeadline replaces the deadline of a task. The deadline is kept in the
// clock's location so every view reads the same calendar date.
func (s *Store) SetDeadline(taskID int64, deadline time.Time) bool {
	t := s.lookup(taskID)
	if t == nil {
		return false
	}
	d := deadline.In(s.clock.Location())
	t.Deadline = &d
	return true
}

// MarkTaskDoneByText is MarkTaskDone for an unparsed ID
func (s *Store) MarkTaskDoneByText(idText string, done bool) bool {
	id, ok := ParseID(idText)
	if !ok {
		return false
	}
	return s.MarkTaskDone(id, done)
}

// SetDeadlineByText is SetDeadline for an unparsed ID
func (s *Store) SetDeadlineByText(idText string, deadline time.Time) bool {
	id, ok := ParseID(idText)
	if !ok {
		return false
	}
	return s.SetDeadline(id, deadline)
}

// FindTaskByID resolves an ID given as text. Text that isn't an integer
// is reported the same way as an unknown ID.
func (s *Store) FindTaskByID(idText string) (model.Task, bool) {
	id, ok := ParseID(idText)
	if !ok {
		return model.Task{}, false
	}
	t := s.lookup(id)
	if t == nil {
		return model.Task{}, false
	}
	return t.Clone(), true
}

// ListProjects returns a snapshot of every project in creation order
func (s *Store) ListProjects() []model.Project {
	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// Project returns a snapshot of one project by exact name
func (s *Store) Project(name string) (model.Project, bool) {
	pi, ok := s.byName[name]
	if !ok {
		return model.Project{}, false
	}
	return s.projects[pi].Clone(), true
}

// ListTasksDueToday returns, per project, the tasks whose deadline falls on
// the clock's current calendar date. Projects with no such task are left out.
func (s *Store) ListTasksDueToday() []model.Project {
	today := s.clock.Now()
	var out []model.Project
	for _, p := range s.projects {
		tasks := p.TasksWhere(func(t *model.Task) bool { return t.IsDueOn(today) })
		if len(tasks) == 0 {
			continue
		}
		due := model.Project{ID: p.ID, Name: p.Name, Tasks: make([]*model.Task, len(tasks))}
		for i := range tasks {
			due.Tasks[i] = &tasks[i]
		}
		out = append(out, due)
	}
	return out
}

// TaskCount returns the number of tasks across all projects
func (s *Store) TaskCount() int {
	return len(s.byID)
}

// LastID returns the most recently issued task ID, 0 if none
func (s *Store) LastID() int64 {
	return s.lastID
}

// Now returns the store's notion of the current time
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// lookup scans projects, then tasks, in creation order. The index gives the
// same answer since IDs are unique; the scan is the fallback if the index
// and the slices ever disagree.
func (s *Store) lookup(id int64) *model.Task {
	if id <= 0 || id > s.lastID {
		return nil
	}
	if ref, ok := s.byID[id]; ok {
		t := s.projects[ref.project].Tasks[ref.task]
		if t.ID == id {
			return t
		}
	}
	for _, p := range s.projects {
		for _, t := range p.Tasks {
			if t.ID == id {
				return t
			}
		}
	}
	return nil
}

func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

// ParseID parses task ID text. Surrounding whitespace is ignored.
func ParseID(idText string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
