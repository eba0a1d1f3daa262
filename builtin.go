package mysh

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// A built-in runs inside the shell process. It reads and writes through the
// streams it is handed, never through the process descriptors directly, so
// redirections and pipelines apply to built-ins exactly like to externals.
type builtinFunc func(sh *Shell, st streams, argv []string) error

var builtinTable = map[string]builtinFunc{
	"cd":      builtinCd,
	"echo":    builtinEcho,
	"exit":    builtinExit,
	"history": builtinHistory,
	"pwd":     builtinPwd,
	"type":    builtinType,
}

// BuiltinNames returns every built-in name. The executable index seeds these
// before scanning the search path, so a built-in always wins the
// deduplication tie against a same-named executable.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinTable))
	for name := range builtinTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cd with no argument or `~` changes to the home directory.
func builtinCd(sh *Shell, st streams, argv []string) error {
	if len(argv) > 2 {
		fmt.Fprintln(st.out, "mysh: cd: too many arguments")
		return nil
	}
	var target string
	if len(argv) == 2 {
		target = argv[1]
	}
	if target == "" || target == "~" {
		target = os.Getenv("HOME")
		if target == "" {
			if home, err := homedir.Dir(); err == nil {
				target = home
			}
		}
	}
	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(st.out, "cd: %s: No such file or directory\n", target)
	}
	return nil
}

func builtinPwd(sh *Shell, st streams, argv []string) error {
	wd, err := os.Getwd()
	if err != nil {
		sh.Log.WithError(err).Error("cannot read working directory")
		return nil
	}
	fmt.Fprintln(st.out, wd)
	return nil
}

// echo prints its arguments separated by single spaces, newline terminated.
// With no arguments it prints a lone newline.
func builtinEcho(sh *Shell, st streams, argv []string) error {
	fmt.Fprintln(st.out, strings.Join(argv[1:], " "))
	return nil
}

func builtinType(sh *Shell, st streams, argv []string) error {
	snap := sh.Index.Snapshot()
	for _, name := range argv[1:] {
		if sh.Index.IsBuiltin(name) {
			fmt.Fprintf(st.out, "%s is a shell builtin\n", name)
		} else if path, ok := snap.Lookup(name); ok {
			fmt.Fprintf(st.out, "%s is %s\n", name, path)
		} else {
			fmt.Fprintf(st.out, "%s: not found\n", name)
		}
	}
	return nil
}

// exit with no code exits 0; a non-numeric code exits 2; a numeric code is
// truncated to an unsigned byte. Extra arguments are complained about, but
// the shell exits regardless.
func builtinExit(sh *Shell, st streams, argv []string) error {
	if len(argv) > 2 {
		fmt.Fprintln(st.out, "mysh: exit: too many arguments")
	}
	code := 0
	if len(argv) >= 2 {
		n, err := strconv.Atoi(argv[1])
		if err != nil {
			code = 2
		} else {
			code = int(uint8(n))
		}
	}
	return ExitError{Code: code}
}

// history recall is not implemented; the built-in exists so that `type
// history` reports it and invoking it is not an error.
func builtinHistory(sh *Shell, st streams, argv []string) error {
	return nil
}
