package render

import "fmt"

// Messages shared by every surface that reports a refused request

// ProjectNotFound is reported when a task names a missing project
func ProjectNotFound(name string) string {
	return fmt.Sprintf("Could not find a project with the name %q.", name)
}

// ProjectExists is reported when a project name is already taken
func ProjectExists(name string) string {
	return fmt.Sprintf("Project %q already exists.", name)
}

// TaskNotFound is reported for an unknown or malformed task ID
func TaskNotFound(id string) string {
	return fmt.Sprintf("Could not find a task with an ID of %s.", id)
}

// InvalidDeadline is reported when a deadline cannot be parsed
const InvalidDeadline = "Invalid deadline date"

// UnknownCommand is reported for a command the interpreter doesn't know
func UnknownCommand(cmd string) string {
	return fmt.Sprintf("I don't know what the command %q is.", cmd)
}
