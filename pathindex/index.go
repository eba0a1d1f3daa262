// Package pathindex maintains a sorted, deduplicated index of every distinct
// executable basename reachable from the search path, plus the shell's
// built-in names. The index powers both exact resolution of program names and
// prefix enumeration for tab completion.
//
// Construction happens on a background goroutine so startup never blocks on
// directory scans; every consumer crosses a once-barrier that forces
// completion before the first lookup.
package pathindex

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// BuiltinPath is the sentinel stored as the path of built-in entries.
const BuiltinPath = "a shell builtin"

type Entry struct {
	Name string
	Path string
}

// Index is the long-lived handle. It is read-only after construction; the
// entry table is republished wholesale by Watch, never mutated in place.
type Index struct {
	log      logrus.FieldLogger
	pathEnv  string
	builtins map[string]struct{}
	seed     []string // builtin names in registration order

	ready chan struct{}
	snap  atomic.Pointer[Snapshot]
}

// Snapshot is one immutable view of the index. Resolution of a single
// command grabs one Snapshot and uses it for every lookup, so a concurrent
// rebuild cannot change the answer mid-command.
type Snapshot struct {
	entries []Entry
}

// New starts building the index in the background and returns immediately.
// builtins are seeded before any search-path entry so they win ties during
// deduplication. A missing or empty search path indexes only the built-ins.
func New(pathEnv string, builtins []string, log logrus.FieldLogger) *Index {
	ix := &Index{
		log:      log,
		pathEnv:  pathEnv,
		builtins: make(map[string]struct{}, len(builtins)),
		seed:     builtins,
		ready:    make(chan struct{}),
	}
	for _, b := range builtins {
		ix.builtins[b] = struct{}{}
	}
	go func() {
		ix.snap.Store(ix.build())
		close(ix.ready)
	}()
	return ix
}

// Snapshot blocks until the initial build has completed, then returns the
// current view.
func (ix *Index) Snapshot() *Snapshot {
	<-ix.ready
	return ix.snap.Load()
}

// IsBuiltin tests built-in-ness against the known built-in set; unlike the
// lookups it never blocks on the build barrier.
func (ix *Index) IsBuiltin(name string) bool {
	_, ok := ix.builtins[name]
	return ok
}

// Lookup resolves name to the stored absolute path. It returns false both
// when nothing matches and when the entry is a built-in.
func (ix *Index) Lookup(name string) (string, bool) {
	return ix.Snapshot().Lookup(name)
}

// Complete enumerates all indexed names starting with prefix, in order.
func (ix *Index) Complete(prefix string) []string {
	return ix.Snapshot().Complete(prefix)
}

func (s *Snapshot) Len() int {
	return len(s.entries)
}

func (s *Snapshot) At(i int) Entry {
	return s.entries[i]
}

func (s *Snapshot) Lookup(name string) (string, bool) {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].Name >= name })
	if i < len(s.entries) && s.entries[i].Name == name && s.entries[i].Path != BuiltinPath {
		return s.entries[i].Path, true
	}
	return "", false
}

// PrefixFirst returns the smallest index whose name starts with prefix.
// All matches form a contiguous range starting there.
func (s *Snapshot) PrefixFirst(prefix string) (int, bool) {
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].Name >= prefix })
	if i < len(s.entries) && strings.HasPrefix(s.entries[i].Name, prefix) {
		return i, true
	}
	return 0, false
}

func (s *Snapshot) Complete(prefix string) []string {
	i, ok := s.PrefixFirst(prefix)
	if !ok {
		return nil
	}
	var names []string
	for ; i < len(s.entries) && strings.HasPrefix(s.entries[i].Name, prefix); i++ {
		names = append(names, s.entries[i].Name)
	}
	return names
}
