package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitInvalid = 1 // Input document failed validation
	ExitError   = 2 // Configuration or runtime error
)

// ValidationError indicates that an input document was read but did not
// pass validation. Issues holds one line per problem.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d validation issue(s)", e.Path, len(e.Issues))
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			os.Exit(ExitInvalid)
		}

		os.Exit(ExitError)
	}
}
