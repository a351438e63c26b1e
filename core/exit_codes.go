package core

// Process exit codes.
const (
	// ExitCodeSuccess: the data file is in place and startup may continue.
	ExitCodeSuccess = 0

	// ExitCodeError: a bootstrap step failed.
	ExitCodeError = 1

	// ExitCodeConfig: the configuration or command line is invalid.
	ExitCodeConfig = 2
)

// ExitCodeName returns a human-readable name for an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "bootstrap failure"
	case ExitCodeConfig:
		return "configuration error"
	default:
		return "unknown"
	}
}
