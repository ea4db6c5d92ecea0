// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// Failure indicates a runtime error (storage, config, terminal).
	Failure = 1

	// Usage indicates bad arguments or an unresolvable task reference.
	Usage = 2
)
