package ingest

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/devhouston/ocrmill/constants"
)

// DirStats aggregates one directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
}

// ScanDirectory walks root and returns the document paths whose extension is
// allowed, sorted for deterministic processing order. Hidden files and
// directories are skipped.
func ScanDirectory(root string, includeExts []string) ([]string, DirStats, error) {
	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if _, ok := exts[constants.NormalizeExt(filepath.Ext(name))]; !ok {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	sort.Strings(paths)
	return paths, stats, nil
}
