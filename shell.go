// Package mysh implements the engine of an interactive command-line shell:
// one Eval per prompt iteration, taking a raw line through the tokenizer and
// parser and into the executor, which dispatches built-ins versus external
// programs and wires up pipes and file redirections.
package mysh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mysh-sh/mysh/pathindex"
	"github.com/mysh-sh/mysh/shparser"
)

const DefaultPrompt = "$ "

type Shell struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	Prompt string
	Index  *pathindex.Index
	Log    logrus.FieldLogger
}

func New(in io.Reader, out, errw io.Writer, idx *pathindex.Index, log logrus.FieldLogger) *Shell {
	return &Shell{
		In:     in,
		Out:    out,
		Err:    errw,
		Prompt: DefaultPrompt,
		Index:  idx,
		Log:    log,
	}
}

// Eval runs one prompt iteration: tokenize, parse, execute. Syntax errors
// and resolution failures are reported and consumed; the only error Eval
// returns is the ExitError raised by the exit built-in.
func (sh *Shell) Eval(line string) error {
	cmds, err := shparser.Parse(line)
	if err != nil {
		fmt.Fprintf(sh.Err, "mysh: %v\n", err)
		return nil
	}
	if len(cmds) == 0 {
		return nil
	}
	sh.Log.WithField("commands", len(cmds)).Debug("evaluating line")

	for i := 0; i < len(cmds); {
		n := pipelineLength(cmds[i:])
		if n == 1 {
			err = sh.runCommand(cmds[i])
		} else {
			err = sh.runPipeline(cmds[i : i+n])
		}
		if err != nil {
			return err
		}
		i += n
	}
	return nil
}

// Run reads lines from sh.In until end-of-input, printing the prompt before
// each. This is the non-interactive loop; the interactive front end drives
// Eval through its own line editor instead.
func (sh *Shell) Run() error {
	sc := bufio.NewScanner(sh.In)
	for {
		fmt.Fprint(sh.Out, sh.Prompt)
		if !sc.Scan() {
			break
		}
		if err := sh.Eval(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}
