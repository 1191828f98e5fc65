// Package render writes store data as the text shown by the interpreter.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/dori/tasklist/internal/dates"
	"github.com/dori/tasklist/internal/deadline"
	"github.com/dori/tasklist/internal/model"
	"github.com/dori/tasklist/internal/ui/theme"
)

const (
	indent       = "    "
	doubleIndent = indent + indent
)

// Renderer formats projects and deadline reports
type Renderer struct {
	styles theme.Styles
	layout string
	now    func() time.Time
}

// New creates a renderer. layout is the deadline display layout; now is
// used to highlight overdue deadlines and may be nil.
func New(styles theme.Styles, layout string, now func() time.Time) *Renderer {
	if layout == "" {
		layout = dates.DefaultLayout
	}
	return &Renderer{styles: styles, layout: layout, now: now}
}

// SetStyles swaps the styles used for later output
func (r *Renderer) SetStyles(styles theme.Styles) {
	r.styles = styles
}

// Projects writes each project followed by its tasks and a blank line:
//
//	secrets
//	    [x] 1: Eat more donuts. 2026-10-16
//	    [ ] 2: Destroy all humans.
func (r *Renderer) Projects(w io.Writer, projects []model.Project) {
	for _, p := range projects {
		fmt.Fprintln(w, r.styles.Render(r.styles.ProjectHeader, p.Name))
		for _, t := range p.Tasks {
			fmt.Fprintln(w, indent+r.taskLine(t))
		}
		fmt.Fprintln(w)
	}
}

// ByDeadline writes the dated groups in date order, then a "No deadline:"
// section if any task has no deadline.
func (r *Renderer) ByDeadline(w io.Writer, report deadline.Report) {
	for _, g := range report.Dated {
		header := dates.Format(g.Date, r.layout) + ":"
		fmt.Fprintln(w, r.styles.Render(r.styles.DateHeader, header))
		r.projectTasks(w, g.Projects)
		fmt.Fprintln(w)
	}

	if len(report.Undated) > 0 {
		fmt.Fprintln(w, r.styles.Render(r.styles.DateHeader, "No deadline:"))
		r.projectTasks(w, report.Undated)
		fmt.Fprintln(w)
	}
}

// Error writes a failure message
func (r *Renderer) Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, r.styles.Render(r.styles.Error, fmt.Sprintf(format, args...)))
}

// Status writes an informational message
func (r *Renderer) Status(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, r.styles.Render(r.styles.Status, fmt.Sprintf(format, args...)))
}

func (r *Renderer) projectTasks(w io.Writer, groups []deadline.ProjectTasks) {
	for _, pt := range groups {
		fmt.Fprintln(w, indent+r.styles.Render(r.styles.ProjectHeader, pt.Project+":"))
		for _, t := range pt.Tasks {
			id := r.styles.Render(r.styles.TaskID, fmt.Sprintf("%d:", t.ID))
			fmt.Fprintf(w, "%s%s %s\n", doubleIndent, id, r.description(&t))
		}
	}
}

func (r *Renderer) taskLine(t *model.Task) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	id := r.styles.Render(r.styles.TaskID, fmt.Sprintf("%d:", t.ID))
	line := fmt.Sprintf("%s %s %s", box, id, r.description(t))
	if t.Deadline != nil {
		line += " " + r.deadline(t)
	}
	return line
}

func (r *Renderer) description(t *model.Task) string {
	if t.Done {
		return r.styles.Render(r.styles.TaskDone, t.Description)
	}
	return r.styles.Render(r.styles.TaskOpen, t.Description)
}

func (r *Renderer) deadline(t *model.Task) string {
	text := dates.Format(*t.Deadline, r.layout)
	if r.now != nil && !t.Done {
		today := model.CalendarDate(r.now())
		if due, _ := t.DeadlineDate(); due.Before(today) {
			return r.styles.Render(r.styles.Overdue, text)
		}
	}
	return r.styles.Render(r.styles.Deadline, text)
}
