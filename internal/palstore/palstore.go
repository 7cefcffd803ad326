// Package palstore provides read-only access to a directory of BMC
// palette files, the palette library.
package palstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pish-pish/bmc2json/pkg/bmc"
)

var ErrNotFound = errors.New("palstore: palette not found")

// Store lists and loads palettes from a single library directory. It holds
// no open resources; every call goes to the filesystem, so external edits
// to the library are picked up as they happen.
type Store struct {
	dir string
}

// Entry describes one palette file in the library.
type Entry struct {
	Name    string // file name without the container suffix
	Path    string
	Size    int64 // file size in bytes
	Entries int   // color count, -1 when the file does not decode
}

// New opens the library at dir. The directory must exist.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("palstore: library directory is empty")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("palstore: library path is not a directory: %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the library directory.
func (s *Store) Dir() string { return s.dir }

// List returns the library's palettes sorted by name. Files that fail to
// decode are listed with a -1 entry count rather than dropped, so a
// corrupt palette stays visible.
func (s *Store) List() ([]Entry, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), bmc.Extension) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		entry := Entry{
			Name:    strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path:    path,
			Entries: -1,
		}
		if info, err := e.Info(); err == nil {
			entry.Size = info.Size()
		}
		if c, err := bmc.Open(path); err == nil {
			entry.Entries = len(c.Table.Colors)
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load opens a palette by its library name. The name must be bare: path
// separators, dot prefixes, and anything else that could escape the
// library directory are reported as not found.
func (s *Store) Load(name string) (*bmc.Container, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	c, err := bmc.Open(filepath.Join(s.dir, name+bmc.Extension))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, err
	}
	return c, nil
}
