package api

import "time"

// Action names served by Service
const (
	ActionAddProject     = "add-project"
	ActionAddTask        = "add-task"
	ActionMarkDone       = "mark-done"
	ActionSetDeadline    = "set-deadline"
	ActionGetTask        = "get-task"
	ActionListProjects   = "list-projects"
	ActionToday          = "today"
	ActionViewByDeadline = "view-by-deadline"
	ActionStatus         = "status"
)

type addProjectRequest struct {
	Name string `json:"name"`
}

type addTaskRequest struct {
	Project     string `json:"project"`
	Description string `json:"description"`
}

// ID fields accept either an integer or text so that values typed on a
// command line behave like IDs typed in the shell.
type markDoneRequest struct {
	ID   any   `json:"id"`
	Done *bool `json:"done"`
}

type setDeadlineRequest struct {
	ID       any    `json:"id"`
	Deadline string `json:"deadline"`
}

type getTaskRequest struct {
	ID any `json:"id"`
}

// AddTaskResult is returned by add-task
type AddTaskResult struct {
	ID int64 `json:"id"`
}

// DeadlineResult is returned by set-deadline
type DeadlineResult struct {
	ID       int64     `json:"id"`
	Deadline time.Time `json:"deadline"`
}

// Status describes a running server
type Status struct {
	Projects      int       `json:"projects"`
	Tasks         int       `json:"tasks"`
	LastID        int64     `json:"last_id"`
	Now           time.Time `json:"now"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}
