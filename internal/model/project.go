package model

import (
	"github.com/google/uuid"
)

// Project represents a named list of tasks
type Project struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Tasks []*Task `json:"tasks"`
}

// NewProject creates an empty project with a fresh ID
func NewProject(name string) *Project {
	return &Project{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// AddTask appends a task, keeping insertion order
func (p *Project) AddTask(t *Task) {
	p.Tasks = append(p.Tasks, t)
}

// Clone returns a deep copy so callers can't reach back into the store
func (p *Project) Clone() Project {
	c := Project{ID: p.ID, Name: p.Name}
	if len(p.Tasks) > 0 {
		c.Tasks = make([]*Task, len(p.Tasks))
		for i, t := range p.Tasks {
			tc := t.Clone()
			c.Tasks[i] = &tc
		}
	}
	return c
}

// TasksWhere returns the tasks matching keep, in insertion order
func (p *Project) TasksWhere(keep func(*Task) bool) []Task {
	var out []Task
	for _, t := range p.Tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
