package pathindex

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// maxScanners bounds the number of directories enumerated concurrently.
const maxScanners = 8

// build scans the search path and assembles a sorted, deduplicated entry
// table. Built-ins are appended before any directory result and the sort is
// stable, so for equal names the built-in wins and among executables the
// earlier search-path directory wins.
func (ix *Index) build() *Snapshot {
	dirs := filepath.SplitList(ix.pathEnv)

	perDir := make([][]Entry, len(dirs))
	g := new(errgroup.Group)
	g.SetLimit(maxScanners)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			perDir[i] = ix.scanDir(dir)
			return nil
		})
	}
	_ = g.Wait()

	entries := make([]Entry, 0, 256)
	for _, b := range ix.seed {
		entries = append(entries, Entry{Name: b, Path: BuiltinPath})
	}
	for _, es := range perDir {
		entries = append(entries, es...)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	// dedup in place keeping the first occurrence
	out := entries[:0]
	for _, e := range entries {
		if len(out) > 0 && out[len(out)-1].Name == e.Name {
			continue
		}
		out = append(out, e)
	}

	ix.log.WithField("entries", len(out)).Debug("executable index built")
	return &Snapshot{entries: out}
}

func (ix *Index) scanDir(dir string) []Entry {
	ents, err := os.ReadDir(dir)
	if err != nil {
		// unreadable search-path directories are skipped, same as resolution
		ix.log.WithError(err).WithField("dir", dir).Debug("skipping search path entry")
		return nil
	}
	var out []Entry
	for _, de := range ents {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if !executable(de, full) {
			continue
		}
		out = append(out, Entry{Name: name, Path: full})
	}
	return out
}

// executable classifies a directory entry: a regular file the current
// process may execute. Symlinks and entries with an unknown type fall back
// to stat, which follows links.
func executable(de fs.DirEntry, full string) bool {
	if t := de.Type(); t != 0 {
		if t&(fs.ModeSymlink|fs.ModeIrregular) == 0 {
			return false
		}
		fi, err := os.Stat(full)
		if err != nil || !fi.Mode().IsRegular() {
			return false
		}
	}
	return unix.Access(full, unix.X_OK) == nil
}
