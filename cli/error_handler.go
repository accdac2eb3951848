package cli

import (
	"fmt"
	"os"

	engineerrors "github.com/grovetools/nvimgui/errors"
)

// ErrorHandler renders an EngineError as a user-facing message instead of
// a raw Go error string, matching the failure category to a short,
// actionable hint.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle prints a message appropriate to err's category and returns err
// unchanged so callers can still use it for the process exit code.
func (h *ErrorHandler) Handle(err error) error {
	switch engineerrors.Code(err) {
	case engineerrors.ErrCodeTransportFatal:
		fmt.Fprintf(os.Stderr, "Lost the connection to the backend: %v\n", err)
		fmt.Fprintf(os.Stderr, "The editor process may have exited or the socket path may be wrong.\n")

	case engineerrors.ErrCodeWireMalformed:
		fmt.Fprintf(os.Stderr, "Received a malformed message from the backend: %v\n", err)

	case engineerrors.ErrCodeSemanticEvent:
		fmt.Fprintf(os.Stderr, "Dropped an invalid redraw event: %v\n", err)

	case engineerrors.ErrCodeResourceExhausted:
		fmt.Fprintf(os.Stderr, "Failed to allocate window state: %v\n", err)

	case engineerrors.ErrCodeProtocolMisuse:
		fmt.Fprintf(os.Stderr, "Protocol misuse: %v\n", err)

	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if h.Verbose {
		if engErr, ok := err.(*engineerrors.EngineError); ok {
			fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", engErr.ToJSON())
		}
	}

	return err
}
