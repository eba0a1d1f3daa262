package mysh

import (
	"io"
	"os"

	"github.com/mysh-sh/mysh/shparser"
)

// streams is the stdio triple a command observes. Built-ins write through
// these writers; external commands get them wired into the child process.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// openRedirect opens a command's redirection target: truncate for the plain
// modes, append for the append modes, created 0644 when missing.
func openRedirect(c shparser.Command) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE
	switch c.Redirect {
	case shparser.AppendOut, shparser.AppendErr:
		flags |= os.O_APPEND
	default:
		flags |= os.O_TRUNC
	}
	return os.OpenFile(c.RedirectFile, flags, 0o644)
}

// redirected returns the streams with the descriptor targeted by mode
// replaced by f. The C original saved and restored file descriptors with
// dup/dup2; swapping the writer achieves the same and restoration is the
// caller keeping its original streams value.
func (st streams) redirected(mode shparser.RedirectMode, f *os.File) streams {
	switch mode {
	case shparser.RedirectOut, shparser.AppendOut:
		st.out = f
	case shparser.RedirectErr, shparser.AppendErr:
		st.err = f
	}
	return st
}
