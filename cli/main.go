package main

import (
	"os"

	"github.com/mysh-sh/mysh/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
