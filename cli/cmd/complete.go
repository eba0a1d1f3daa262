package cmd

import (
	"strings"

	"github.com/mysh-sh/mysh/pathindex"
)

// completer adapts the index's prefix enumeration to readline's completion
// interface. Only the command word is completed; past the first whitespace
// the cursor is in argument territory, which the index knows nothing about.
type completer struct {
	idx *pathindex.Index
}

func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	prefix := string(line[:pos])
	if strings.ContainsAny(prefix, " \t") {
		return nil, 0
	}
	var candidates [][]rune
	for _, name := range c.idx.Complete(prefix) {
		candidates = append(candidates, []rune(name[len(prefix):]+" "))
	}
	return candidates, len(prefix)
}
