package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	mysh "github.com/mysh-sh/mysh"
	"github.com/mysh-sh/mysh/pathindex"
)

var (
	rootCmd = &cobra.Command{
		Use:          "mysh",
		Short:        "mysh",
		SilenceUsage: true,
		Long:         `Interactive command-line shell. Reads a line per prompt, parses it into commands with pipelines and redirections, and executes built-ins in-process and external programs resolved via the search path.`,
		Args:         cobra.NoArgs,
		RunE:         runShell,
	}

	verbose bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	return rootCmd.Execute()
}

func runShell(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	config, err := LoadConfig()
	if err != nil {
		return err
	}

	// the index builds on a background worker; the first lookup blocks on it
	idx := pathindex.New(os.Getenv("PATH"), mysh.BuiltinNames(), logger)
	if config.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := idx.Watch(ctx); err != nil {
			logger.WithError(err).Warn("index watching unavailable")
		}
	}

	sh := mysh.New(os.Stdin, os.Stdout, os.Stderr, idx, logger)
	if config.Prompt != "" {
		sh.Prompt = config.Prompt
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		err = interact(sh, idx, config)
	} else {
		err = sh.Run()
	}

	var exit mysh.ExitError
	if errors.As(err, &exit) {
		os.Exit(exit.Code)
	}
	return err
}

// interact drives Eval through readline: prompt, line editing, history, and
// tab completion backed by the executable index.
func interact(sh *mysh.Shell, idx *pathindex.Index, config Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.Prompt,
		HistoryFile:     config.HistoryFile,
		AutoComplete:    &completer{idx: idx},
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sh.Eval(line); err != nil {
			return err
		}
	}
}
