// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols used in table and message output.
const (
	// Success marks a file that was written as a new or newer version.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a forced overwrite or another non-fatal concern.
	Warning = "!"

	// Optional marks a skipped write.
	Optional = "-"

	// Unknown represents unknown or indeterminate states.
	Unknown = "?"
)
