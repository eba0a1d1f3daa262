package mysh

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/mysh-sh/mysh/shparser"
)

// pipelineLength returns the number of consecutive commands joined by pipes
// starting at cmds[0], including the terminating non-piped command.
func pipelineLength(cmds []shparser.Command) int {
	n := 0
	for n < len(cmds) && cmds[n].Redirect == shparser.RedirectPipe {
		n++
	}
	return n + 1
}

// stdinFile passes the shell's stdin to a child only when it is a real file;
// handing the line reader's buffer to a child makes no sense.
func stdinFile(r io.Reader) io.Reader {
	if f, ok := r.(*os.File); ok {
		return f
	}
	return nil
}

// runCommand executes a single non-piped command. Built-ins run in-process
// so cd and exit affect the shell; externals resolve through the index and
// run as a child the shell waits for.
func (sh *Shell) runCommand(c shparser.Command) error {
	st := streams{in: sh.In, out: sh.Out, err: sh.Err}
	if c.Redirect != shparser.RedirectNone {
		f, err := openRedirect(c)
		if err != nil {
			sh.Log.WithError(err).WithField("file", c.RedirectFile).Fatal("cannot open redirection target")
		}
		defer f.Close()
		st = st.redirected(c.Redirect, f)
	}

	name := c.Argv[0]
	if fn, ok := builtinTable[name]; ok {
		return fn(sh, st, c.Argv)
	}

	path, ok := sh.Index.Snapshot().Lookup(name)
	if !ok {
		fmt.Fprintf(st.out, "%s: command not found\n", name)
		return nil
	}

	cmd := exec.Command(path)
	cmd.Args = c.Argv
	cmd.Stdin = stdinFile(sh.In)
	cmd.Stdout = st.out
	cmd.Stderr = st.err
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			sh.Log.WithError(err).WithField("command", name).Debug("command failed")
		}
	}
	return nil
}

// runPipeline executes a run of N >= 2 piped commands: N-1 pipes, N stages
// all started before any is waited on, reaped in spawn order. Built-in
// stages run as goroutines writing into the pipe, the Go rendition of
// forking the built-in so its stdio observes the pipe plumbing. An
// unresolved external stage reports command not found and yields without
// aborting its siblings.
func (sh *Shell) runPipeline(cmds []shparser.Command) error {
	n := len(cmds)
	snap := sh.Index.Snapshot()

	type pipePair struct{ r, w *os.File }
	pipes := make([]pipePair, n-1)
	for i := range pipes {
		r, w, err := os.Pipe()
		if err != nil {
			sh.Log.WithError(err).Fatal("cannot create pipe")
		}
		pipes[i] = pipePair{r: r, w: w}
	}

	type stage struct {
		cmd  *exec.Cmd
		done chan struct{}
	}
	stages := make([]stage, n)
	var redirect *os.File

	for i := range cmds {
		c := cmds[i]
		st := streams{in: stdinFile(sh.In), out: sh.Out, err: sh.Err}
		var in, out *os.File
		if i > 0 {
			in = pipes[i-1].r
			st.in = in
		}
		if i < n-1 {
			out = pipes[i].w
			st.out = out
		}
		if c.Redirect != shparser.RedirectNone && c.Redirect != shparser.RedirectPipe {
			f, err := openRedirect(c)
			if err != nil {
				sh.Log.WithError(err).WithField("file", c.RedirectFile).Fatal("cannot open redirection target")
			}
			redirect = f
			st = st.redirected(c.Redirect, f)
		}

		// each pipe end is closed exactly once: by the goroutine that owns
		// it, or by the parent right after the child process has its dup
		closeEnds := func() {
			if in != nil {
				in.Close()
			}
			if out != nil {
				out.Close()
			}
		}

		name := c.Argv[0]
		if fn, ok := builtinTable[name]; ok {
			done := make(chan struct{})
			go func() {
				defer close(done)
				defer closeEnds()
				// exit inside a pipeline ends only its own stage
				_ = fn(sh, st, c.Argv)
			}()
			stages[i] = stage{done: done}
			continue
		}

		path, ok := snap.Lookup(name)
		if !ok {
			done := make(chan struct{})
			go func() {
				defer close(done)
				defer closeEnds()
				fmt.Fprintf(st.out, "%s: command not found\n", name)
			}()
			stages[i] = stage{done: done}
			continue
		}

		cmd := exec.Command(path)
		cmd.Args = c.Argv
		cmd.Stdin = st.in
		cmd.Stdout = st.out
		cmd.Stderr = st.err
		if err := cmd.Start(); err != nil {
			sh.Log.WithError(err).WithField("command", name).Debug("command failed to start")
			closeEnds()
			done := make(chan struct{})
			close(done)
			stages[i] = stage{done: done}
			continue
		}
		closeEnds()
		stages[i] = stage{cmd: cmd}
	}

	for _, sg := range stages {
		if sg.cmd != nil {
			_ = sg.cmd.Wait()
		} else {
			<-sg.done
		}
	}
	if redirect != nil {
		redirect.Close()
	}
	return nil
}
