// Package deadline derives the "view by deadline" report from a store.
//
// The builder keeps no state: every call reads the current projects and
// recomputes. Ordering is fully determined by project creation order, task
// creation order and deadline date, never by map iteration.
package deadline

import (
	"sort"
	"time"

	"github.com/dori/tasklist/internal/model"
)

// Source is anything that can list projects in creation order
type Source interface {
	ListProjects() []model.Project
}

// ProjectTasks is one project's slice of a group
type ProjectTasks struct {
	Project string       `json:"project"`
	Tasks   []model.Task `json:"tasks"`
}

// Group holds every task due on one calendar date, split by project
type Group struct {
	Date     time.Time      `json:"date"`
	Projects []ProjectTasks `json:"projects"`
}

// Report is the combined view: dated groups first, then undated tasks
type Report struct {
	Dated   []Group        `json:"dated"`
	Undated []ProjectTasks `json:"undated"`
}

// Builder computes deadline views
type Builder struct {
	src Source
}

// NewBuilder creates a builder reading from src
func NewBuilder(src Source) *Builder {
	return &Builder{src: src}
}

// entry is a task tagged with where it came from
type entry struct {
	date time.Time
	key  int
	name string
	task model.Task
}

// TasksWithDeadlines groups every task that has a deadline by calendar date,
// oldest date first. Inside a date, projects keep creation order and tasks
// keep insertion order.
func (b *Builder) TasksWithDeadlines() []Group {
	projects := b.src.ListProjects()

	var entries []entry
	for _, p := range projects {
		for _, t := range p.Tasks {
			date, ok := t.DeadlineDate()
			if !ok {
				continue
			}
			entries = append(entries, entry{date: date, key: dateKey(date), name: p.Name, task: *t})
		}
	}

	// Entries were collected in project then task order, so a stable sort on
	// date alone leaves that order intact inside each date.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	var groups []Group
	for _, e := range entries {
		if n := len(groups); n == 0 || dateKey(groups[n-1].Date) != e.key {
			groups = append(groups, Group{Date: e.date})
		}
		g := &groups[len(groups)-1]
		if n := len(g.Projects); n == 0 || g.Projects[n-1].Project != e.name {
			g.Projects = append(g.Projects, ProjectTasks{Project: e.name})
		}
		pt := &g.Projects[len(g.Projects)-1]
		pt.Tasks = append(pt.Tasks, e.task)
	}
	return groups
}

// TasksWithoutDeadlines lists, per project, the tasks with no deadline.
// Projects where every task has a deadline are left out.
func (b *Builder) TasksWithoutDeadlines() []ProjectTasks {
	var out []ProjectTasks
	for _, p := range b.src.ListProjects() {
		tasks := p.TasksWhere(func(t *model.Task) bool { return !t.HasDeadline() })
		if len(tasks) == 0 {
			continue
		}
		out = append(out, ProjectTasks{Project: p.Name, Tasks: tasks})
	}
	return out
}

// ByDeadline returns both views at once
func (b *Builder) ByDeadline() Report {
	return Report{
		Dated:   b.TasksWithDeadlines(),
		Undated: b.TasksWithoutDeadlines(),
	}
}

// dateKey orders calendar dates as yyyymmdd, read in each date's own
// location so the time zone never moves a deadline to another day.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
