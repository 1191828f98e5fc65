// Package interp reads task commands and answers them in text.
//
// It is the only place that turns user-typed text into store calls:
// IDs and deadlines are parsed here, and every refused request is
// reported as a message rather than an error.
package interp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/deadline"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
	"github.com/dori/tasklist/internal/render"
	"github.com/dori/tasklist/internal/store"
)

const (
	// StartupText is printed once when the line loop starts
	StartupText = "Welcome to TaskList! Type 'help' for available commands."
	// Prompt precedes every command
	Prompt = "> "
	// QuitCommand ends the loop
	QuitCommand = "quit"
)

// Notifier sends the reminder for today's tasks
type Notifier interface {
	IsEnabled() bool
	SendDueToday(projects []model.Project) (int, error)
}

// Options configures an Interpreter
type Options struct {
	Store    *store.Store
	Clock    clock.Clock
	Renderer *render.Renderer
	Notifier Notifier
	Logger   *slog.Logger
}

// Interpreter executes command lines against a store
type Interpreter struct {
	store    *store.Store
	builder  *deadline.Builder
	clock    clock.Clock
	render   *render.Renderer
	notifier Notifier
	logger   *slog.Logger
	commands *registry
}

// New creates an interpreter. Store, Clock and Renderer are required.
func New(opts Options) *Interpreter {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interpreter{
		store:    opts.Store,
		builder:  deadline.NewBuilder(opts.Store),
		clock:    opts.Clock,
		render:   opts.Renderer,
		notifier: opts.Notifier,
		logger:   logger,
		commands: defaultRegistry(),
	}
}

// Execute runs one command line, writing any output to w. It returns
// false when the line was the quit command.
func (in *Interpreter) Execute(ctx context.Context, w io.Writer, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if line == QuitCommand {
		return false
	}

	name, rest := splitWord(line)
	cmd, ok := in.commands.find(name)
	if ok && cmd.sub != nil {
		var subName string
		subName, rest = splitWord(rest)
		group := cmd
		if cmd, ok = group.sub.find(subName); !ok {
			in.usageError(w, group)
			return true
		}
	}
	if !ok {
		in.render.Error(w, "%s", render.UnknownCommand(name))
		return true
	}

	in.logger.Debug("executing command", "command", cmd.name)
	cmd.run(ctx, in, w, rest)
	return true
}

// Run prints the startup text, then prompts for and executes commands
// until quit, end of input or ctx is cancelled.
func (in *Interpreter) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	fmt.Fprintln(w, StartupText)

	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(w, Prompt)
		if !scanner.Scan() {
			break
		}
		if !in.Execute(ctx, w, scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

// Help writes the command list
func (in *Interpreter) Help(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	for _, usage := range in.commands.usages() {
		fmt.Fprintln(w, "  "+usage)
	}
	fmt.Fprintln(w, "  "+QuitCommand)
	fmt.Fprintln(w)
}

// CommandNames returns the top-level command names in help order
func (in *Interpreter) CommandNames() []string {
	names := make([]string, 0, len(in.commands.list)+1)
	for _, c := range in.commands.list {
		names = append(names, c.name)
	}
	return append(names, QuitCommand)
}

// splitWord cuts s at the first space
func splitWord(s string) (string, string) {
	word, rest, _ := strings.Cut(s, " ")
	return word, rest
}
