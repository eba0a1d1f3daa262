package cmd

import (
	"errors"
	"fmt"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/mysh-sh/mysh/shparser"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse <line>",
		Short: "Tokenize and parse a command line and dump the resulting command sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need exactly one argument <line>")
			}
			cmds, err := shparser.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Println(repr.String(cmds, repr.Indent("  ")))
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(parseCmd)
}
