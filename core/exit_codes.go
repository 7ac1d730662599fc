package core

// Exit codes for the CLI.
const (
	// ExitCodeSuccess indicates every requested icon was written or verified
	ExitCodeSuccess = 0

	// ExitCodeError indicates at least one icon failed, or configuration was invalid
	ExitCodeError = 1

	// ExitCodeUsage indicates a malformed command line
	ExitCodeUsage = 2
)

// ExitCodeName returns a human-readable name for an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeUsage:
		return "usage"
	default:
		return "unknown"
	}
}
