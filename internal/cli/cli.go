// Package cli parses the command line and runs the selected mode.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dori/tasklist/internal/api"
	"github.com/dori/tasklist/internal/app"
	"github.com/dori/tasklist/internal/config"
	"github.com/dori/tasklist/internal/exitcode"
	"github.com/dori/tasklist/internal/export"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/model"
)

// Version is reported by the version mode
var Version = "0.1.0"

// Env is the process environment a run sees
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive is true when stdin and stdout are both terminals
	Interactive bool
}

// options holds the parsed global flags
type options struct {
	configPath string
	theme      string
	plain      bool
	socket     string
	help       bool
}

// Run parses args (without the program name), runs the selected mode
// and returns the process exit code.
func Run(ctx context.Context, args []string, env Env) int {
	var opts options
	fs := pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file (default $"+config.EnvConfig+")")
	fs.StringVar(&opts.theme, "theme", "", "colour theme (nord, dracula, gruvbox, catppuccin)")
	fs.BoolVar(&opts.plain, "plain", false, "disable colours and styling")
	fs.StringVar(&opts.socket, "socket", "", "socket path for serve, call and export")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.UserError
	}

	rest := fs.Args()
	mode := "repl"
	if len(rest) > 0 {
		mode, rest = rest[0], rest[1:]
	}

	switch {
	case opts.help || mode == "help":
		printHelp(env.Stdout, fs)
		return exitcode.Success
	case mode == "version":
		fmt.Fprintf(env.Stdout, "tasklist v%s\n", Version)
		return exitcode.Success
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.ConfigError
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.ConfigError
	}

	switch mode {
	case "repl":
		return runREPL(ctx, cfg, level, env)
	case "serve":
		return runServe(ctx, cfg, level, env)
	case "call":
		return runCall(ctx, cfg, rest, env)
	case "export":
		return runExport(ctx, cfg, rest, env)
	default:
		fmt.Fprintf(env.Stderr, "error: unknown command: %s\n", mode)
		return exitcode.UserError
	}
}

// loadConfig reads the config file, then applies flags that were set
func loadConfig(fs *pflag.FlagSet, opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if fs.Changed("theme") {
		cfg.Theme = opts.theme
	}
	if fs.Changed("plain") {
		cfg.Plain = opts.plain
	}
	if fs.Changed("socket") {
		cfg.SocketPath = opts.socket
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runREPL(ctx context.Context, cfg *config.Config, level slog.Level, env Env) int {
	if !env.Interactive {
		a, err := app.New(cfg, app.Options{Logger: logging.New(env.Stderr, level)})
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitcode.ConfigError
		}
		defer a.Close()

		if err := a.RunLines(ctx, env.Stdin, env.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	logger, closeLog := logging.ForTUI()
	defer closeLog()

	a, err := app.New(cfg, app.Options{Logger: logger})
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer a.Close()

	if err := a.RunShell(ctx); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

func runServe(ctx context.Context, cfg *config.Config, level slog.Level, env Env) int {
	a, err := app.New(cfg, app.Options{Logger: logging.New(env.Stderr, level)})
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

func runCall(ctx context.Context, cfg *config.Config, args []string, env Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.Stderr, "Usage: tasklist call <action> [key=value...]")
		return exitcode.UserError
	}
	action := args[0]

	fields := make(map[string]any, len(args)-1)
	for _, arg := range args[1:] {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			fmt.Fprintf(env.Stderr, "error: expected key=value, got %q\n", arg)
			return exitcode.UserError
		}
		fields[k] = parseValue(k, v)
	}

	var data any
	if err := api.NewClient(cfg.SocketPath).Call(ctx, action, fields, &data); err != nil {
		return reportCallError(env.Stderr, err)
	}
	if data == nil {
		fmt.Fprintln(env.Stdout, "ok")
		return exitcode.Success
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: formatting response: %v\n", err)
		return exitcode.BackendError
	}
	fmt.Fprintln(env.Stdout, string(out))
	return exitcode.Success
}

func runExport(ctx context.Context, cfg *config.Config, args []string, env Env) int {
	if len(args) != 1 {
		fmt.Fprintln(env.Stderr, "Usage: tasklist export <file>")
		return exitcode.UserError
	}
	path := args[0]
	client := api.NewClient(cfg.SocketPath)

	var projects []model.Project
	if err := client.Call(ctx, api.ActionListProjects, nil, &projects); err != nil {
		return reportCallError(env.Stderr, err)
	}
	var status api.Status
	if err := client.Call(ctx, api.ActionStatus, nil, &status); err != nil {
		return reportCallError(env.Stderr, err)
	}

	summary, err := export.Write(ctx, path, export.Snapshot{
		Projects:   projects,
		LastTaskID: status.LastID,
		TakenAt:    status.Now,
	})
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitcode.BackendError
	}
	fmt.Fprintf(env.Stdout, "Exported %d projects, %d tasks to %s\n", summary.Projects, summary.Tasks, path)
	return exitcode.Success
}

// reportCallError prints err; a refused request is a user error, anything
// else means the server could not be reached.
func reportCallError(w io.Writer, err error) int {
	var serviceErr *api.ServiceError
	if errors.As(err, &serviceErr) {
		fmt.Fprintln(w, serviceErr.Message)
		return exitcode.UserError
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return exitcode.BackendError
}

// parseValue turns command-line text into the value a handler expects.
// Only done is a boolean; everything else, IDs included, is sent as text.
func parseValue(key, s string) any {
	if key == "done" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return s
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprint(w, `tasklist - projects, tasks and deadlines

Usage:
  tasklist [flags] [repl]                       Interactive shell (plain line loop when piped)
  tasklist [flags] serve                        Serve the store on a Unix socket
  tasklist [flags] call <action> [key=value...] Send one request to a running server
  tasklist [flags] export <file>                Snapshot a running server to SQLite
  tasklist version                              Show version
  tasklist help                                 Show this help

Actions:
  add-project name=<name>
  add-task project=<name> description=<text>
  mark-done id=<id> [done=false]
  set-deadline id=<id> deadline=<date>
  get-task id=<id>
  list-projects | today | view-by-deadline | status

Flags:
`)
	fmt.Fprint(w, fs.FlagUsages())
}
