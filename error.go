package mysh

import "fmt"

// ExitError is raised by the exit built-in and carried unchanged through the
// evaluation loop; main maps it onto the process exit code.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
