package ui

// Messages for the shell model

// ExecuteMsg runs a command line as if it had been typed
type ExecuteMsg struct {
	Line string
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
