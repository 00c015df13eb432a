package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/punchclock/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Report writes the formatted error followed by indented hint lines.
func Report(w io.Writer, err error, hints ...string) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	for _, h := range hints {
		fmt.Fprintf(w, "       %s\n", h)
	}
}

// Fatal logs an error, prints it with any hints and exits with code 1
func Fatal(err error, hints ...string) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err, hints...)
		os.Exit(1)
	}
}
