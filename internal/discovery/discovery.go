// Package discovery locates the most recent export file for each source
// category in an input directory.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/assetmap/internal/matcher"
	"github.com/agentstation/assetmap/pkg/errors"
)

// Candidate is a file matching a category pattern.
type Candidate struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Find lists the regular files in dir whose names match any of patterns,
// newest first. Patterns are case-insensitive globs, or regexes when they
// contain regex syntax. Ties on modification time are broken by name.
func Find(dir string, patterns []string, exclude ...string) ([]Candidate, error) {
	if len(patterns) == 0 {
		return nil, &errors.ValidationError{Field: "patterns", Message: "at least one pattern is required"}
	}
	mm, err := matcher.NewMultiMatcher(patterns, matcher.Auto, &matcher.Options{CaseInsensitive: true})
	if err != nil {
		return nil, errors.WrapValidation("patterns", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		if p != "" {
			skip[filepath.Clean(p)] = true
		}
	}

	var out []Candidate
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !mm.Match(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if skip[filepath.Clean(path)] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Candidate{Path: path, ModTime: info.ModTime(), Size: info.Size()})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Path > out[j].Path
	})
	return out, nil
}

// Latest returns the most recently modified file matching patterns.
// It returns a NotFoundError when no file matches.
func Latest(dir string, patterns []string, exclude ...string) (Candidate, error) {
	candidates, err := Find(dir, patterns, exclude...)
	if err != nil {
		return Candidate{}, err
	}
	if len(candidates) == 0 {
		return Candidate{}, &errors.NotFoundError{
			Resource: "file",
			ID:       strings.Join(patterns, ", ") + " in " + dir,
		}
	}
	return candidates[0], nil
}
