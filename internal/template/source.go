package template

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devhouston/ocrmill/internal/common"
)

// Entry is one (key, template) pair produced by a Source. The order a Source
// returns entries in becomes registration order, which the selector's
// tie-break depends on, so sources must be deterministic.
type Entry struct {
	Key      string
	Template Template
}

// Source materializes template definitions from somewhere: a compiled-in
// table, a definition-file folder, a remote fetch. The registry consumes any
// number of sources in priority order.
type Source interface {
	Name() string
	Load() ([]Entry, error)
}

// StaticSource serves a fixed, explicitly ordered set of templates. The
// builtin supplier templates register through one of these.
type StaticSource struct {
	name    string
	entries []Entry
}

func NewStaticSource(name string, entries ...Entry) *StaticSource {
	return &StaticSource{name: name, entries: entries}
}

func (s *StaticSource) Name() string { return s.name }

func (s *StaticSource) Load() ([]Entry, error) {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// DirSource scans a folder for declarative *.json template definitions.
// Definition files whose name contains a space, that fail schema validation,
// or whose patterns do not compile are skipped with a warning; discovery
// continues for the remaining files. Filenames are sorted so registration
// order does not depend on directory listing order.
type DirSource struct {
	dir    string
	logger *slog.Logger
}

func NewDirSource(dir string, logger *slog.Logger) *DirSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirSource{dir: dir, logger: logger}
}

func (s *DirSource) Name() string { return "dir:" + s.dir }

func (s *DirSource) Load() ([]Entry, error) {
	if s.dir == "" {
		return nil, nil
	}
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("template.source.missing", "dir", s.dir)
			return nil, nil
		}
		return nil, common.WrapError(err, "reading template dir")
	}

	var names []string
	for _, de := range dirents {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".json") {
			continue
		}
		if strings.Contains(de.Name(), " ") {
			s.logger.Warn("template.source.skipped", "file", de.Name(), "reason", "filename contains spaces")
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	var entries []Entry
	for _, name := range names {
		path := filepath.Join(s.dir, name)
		tmpl, err := LoadDefinitionFile(path)
		if err != nil {
			s.logger.Warn("template.source.skipped", "file", name, "err", err)
			continue
		}
		key := strings.TrimSuffix(name, filepath.Ext(name))
		entries = append(entries, Entry{Key: key, Template: tmpl})
	}
	return entries, nil
}
