package assetmap

import (
	"context"
	"os"
	"time"

	"github.com/agentstation/assetmap/internal/discovery"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/logging"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Selection is the file picked for one source category.
type Selection struct {
	Source  sources.ID `json:"source" yaml:"source"`
	Enabled bool       `json:"enabled" yaml:"enabled"`
	Path    string     `json:"path" yaml:"path"`
	ModTime time.Time  `json:"mod_time" yaml:"mod_time"`
	// Candidates counts the files matching the category patterns
	Candidates int    `json:"candidates" yaml:"candidates"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`

	err error
}

// Err returns the reason no file was selected.
func (s Selection) Err() error {
	return s.err
}

// Found reports whether a file was selected.
func (s Selection) Found() bool {
	return s.Enabled && s.err == nil && s.Path != ""
}

// Discover picks the file each enabled category would read. Problems are
// reported on the selection, not returned, so one missing export never hides
// the others.
func (c *client) Discover(ctx context.Context) ([]Selection, error) {
	out := make([]Selection, 0, len(sources.IDs()))
	for _, id := range sources.IDs() {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrCanceled
		}
		out = append(out, c.selectSource(ctx, id))
	}
	return out, nil
}

func (c *client) selectSource(ctx context.Context, id sources.ID) Selection {
	src := c.cfg.Source(id)
	sel := Selection{Source: id, Enabled: src.Enabled}
	if !src.Enabled {
		sel.Message = "disabled"
		return sel
	}

	if src.Path != "" {
		info, err := os.Stat(src.Path)
		if err != nil {
			return sel.fail(errors.WrapIO("stat", src.Path, err))
		}
		sel.Path = src.Path
		sel.ModTime = info.ModTime()
		sel.Candidates = 1
		return sel
	}

	candidates, err := discovery.Find(c.cfg.InputDir, src.Patterns, c.cfg.MasterPath, c.cfg.OutputPath)
	if err != nil {
		return sel.fail(err)
	}
	sel.Candidates = len(candidates)
	if len(candidates) == 0 {
		return sel.fail(errors.NewNotFoundError("file", id.String()+" export in "+c.cfg.InputDir))
	}

	sel.Path = candidates[0].Path
	sel.ModTime = candidates[0].ModTime
	logging.FromContext(ctx).Debug().
		Str("source", id.String()).
		Str("path", sel.Path).
		Int("candidates", sel.Candidates).
		Msg("Selected source file")
	return sel
}

func (s Selection) fail(err error) Selection {
	s.err = err
	s.Message = err.Error()
	return s
}
