package interp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dori/tasklist/internal/dates"
	"github.com/dori/tasklist/internal/export"
	"github.com/dori/tasklist/internal/render"
)

// command is one entry of the command table. A command with sub set
// only dispatches to its subcommands.
type command struct {
	name  string
	usage string
	sub   *registry
	run   func(ctx context.Context, in *Interpreter, w io.Writer, args string)
}

// registry keeps commands in help order
type registry struct {
	list   []*command
	byName map[string]*command
}

func newRegistry() *registry {
	return &registry{byName: make(map[string]*command)}
}

func (r *registry) register(c *command) {
	if _, exists := r.byName[c.name]; exists {
		panic(fmt.Sprintf("interp: command already registered: %s", c.name))
	}
	r.byName[c.name] = c
	r.list = append(r.list, c)
}

func (r *registry) find(name string) (*command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// usages flattens the table, groups expanded to their subcommands
func (r *registry) usages() []string {
	var out []string
	for _, c := range r.list {
		if c.sub != nil {
			out = append(out, c.sub.usages()...)
			continue
		}
		out = append(out, c.usage)
	}
	return out
}

func defaultRegistry() *registry {
	add := newRegistry()
	add.register(&command{name: "project", usage: "add project <project name>", run: addProject})
	add.register(&command{name: "task", usage: "add task <project name> <task description>", run: addTask})

	r := newRegistry()
	r.register(&command{name: "show", usage: "show", run: show})
	r.register(&command{name: "today", usage: "today", run: today})
	r.register(&command{name: "add", sub: add})
	r.register(&command{name: "check", usage: "check <task ID>", run: check})
	r.register(&command{name: "uncheck", usage: "uncheck <task ID>", run: uncheck})
	r.register(&command{name: "deadline", usage: "deadline <task ID> <date>", run: setDeadline})
	r.register(&command{name: "view-by-deadline", usage: "view-by-deadline", run: viewByDeadline})
	r.register(&command{name: "export", usage: "export <path>", run: exportSnapshot})
	r.register(&command{name: "remind", usage: "remind", run: remind})
	r.register(&command{name: "help", usage: "help", run: help})
	return r
}

// usageError reports how c is meant to be called
func (in *Interpreter) usageError(w io.Writer, c *command) {
	usages := []string{c.usage}
	if c.sub != nil {
		usages = c.sub.usages()
	}
	for _, u := range usages {
		in.render.Error(w, "Usage: %s", u)
	}
}

func show(_ context.Context, in *Interpreter, w io.Writer, _ string) {
	in.render.Projects(w, in.store.ListProjects())
}

func today(_ context.Context, in *Interpreter, w io.Writer, _ string) {
	in.render.Projects(w, in.store.ListTasksDueToday())
}

func viewByDeadline(_ context.Context, in *Interpreter, w io.Writer, _ string) {
	in.render.ByDeadline(w, in.builder.ByDeadline())
}

func help(_ context.Context, in *Interpreter, w io.Writer, _ string) {
	in.Help(w)
}

func addProject(_ context.Context, in *Interpreter, w io.Writer, args string) {
	name := args
	if strings.TrimSpace(name) == "" {
		in.render.Error(w, "Usage: add project <project name>")
		return
	}
	if !in.store.AddProject(name) {
		in.render.Error(w, "%s", render.ProjectExists(name))
	}
}

func addTask(_ context.Context, in *Interpreter, w io.Writer, args string) {
	project, description := splitWord(args)
	if project == "" || description == "" {
		in.render.Error(w, "Usage: add task <project name> <task description>")
		return
	}
	if !in.store.AddTask(project, description) {
		in.render.Error(w, "%s", render.ProjectNotFound(project))
	}
}

func check(_ context.Context, in *Interpreter, w io.Writer, args string) {
	setDone(in, w, args, true, "check")
}

func uncheck(_ context.Context, in *Interpreter, w io.Writer, args string) {
	setDone(in, w, args, false, "uncheck")
}

func setDone(in *Interpreter, w io.Writer, args string, done bool, name string) {
	id := strings.TrimSpace(args)
	if id == "" {
		in.render.Error(w, "Usage: %s <task ID>", name)
		return
	}
	if !in.store.MarkTaskDoneByText(id, done) {
		in.render.Error(w, "%s", render.TaskNotFound(id))
	}
}

func setDeadline(_ context.Context, in *Interpreter, w io.Writer, args string) {
	id, text := splitWord(args)
	if id == "" || strings.TrimSpace(text) == "" {
		in.render.Error(w, "Usage: deadline <task ID> <date>")
		return
	}
	when, err := dates.Parse(text, in.clock)
	if err != nil {
		in.render.Error(w, "%s", render.InvalidDeadline)
		return
	}
	if !in.store.SetDeadlineByText(id, when) {
		in.render.Error(w, "%s", render.TaskNotFound(id))
	}
}

func exportSnapshot(ctx context.Context, in *Interpreter, w io.Writer, args string) {
	path := strings.TrimSpace(args)
	if path == "" {
		in.render.Error(w, "Usage: export <path>")
		return
	}

	summary, err := export.Write(ctx, path, export.Snapshot{
		Projects:   in.store.ListProjects(),
		LastTaskID: in.store.LastID(),
		TakenAt:    in.clock.Now(),
	})
	if err != nil {
		in.logger.Error("export failed", "path", path, "error", err)
		in.render.Error(w, "Export failed: %v", err)
		return
	}
	in.logger.Info("exported snapshot", "path", path, "projects", summary.Projects, "tasks", summary.Tasks)
	in.render.Status(w, "Exported %d projects, %d tasks to %s", summary.Projects, summary.Tasks, path)
}

func remind(_ context.Context, in *Interpreter, w io.Writer, _ string) {
	if in.notifier == nil || !in.notifier.IsEnabled() {
		in.render.Status(w, "Notifications are disabled.")
		return
	}
	n, err := in.notifier.SendDueToday(in.store.ListTasksDueToday())
	if err != nil {
		in.logger.Warn("reminder failed", "error", err)
		in.render.Error(w, "Could not send reminder: %v", err)
		return
	}
	if n == 0 {
		in.render.Status(w, "Nothing is due today.")
		return
	}
	in.render.Status(w, "Sent a reminder for %d task(s) due today.", n)
}
