package main

// Exit codes shared by all commands
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing repository, invalid config)
	ExitDataError   = 3 // Data error (malformed bibliography or report)
	ExitFindings    = 4 // Check completed and found discrepancies
)
