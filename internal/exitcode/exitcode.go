// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown mode, refused request).
	UserError = 1

	// ConfigError indicates an unreadable or invalid config file.
	ConfigError = 2

	// BackendError indicates a socket, lock or SQLite failure.
	BackendError = 3
)
