// Package config holds the typed configuration of a reconciliation run. The
// CLI fills it from flags, environment, .env files and .assetmap.yaml.
package config

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/agentstation/assetmap/internal/tabular"
	"github.com/agentstation/assetmap/pkg/constants"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/reconcile"
	"github.com/agentstation/assetmap/pkg/sources"
)

// Source configures how one source category is located and read.
type Source struct {
	// Enabled includes the source in the run.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	// Path names the file directly and disables discovery.
	Path string `mapstructure:"path" yaml:"path,omitempty" json:"path,omitempty"`
	// Patterns are matched against file names in the input directory.
	Patterns []string `mapstructure:"patterns" yaml:"patterns" json:"patterns"`
	// SkipRows is the number of banner rows above the header.
	SkipRows int `mapstructure:"skip_rows" yaml:"skip_rows" json:"skip_rows"`
	// Sheet selects a workbook sheet.
	Sheet string `mapstructure:"sheet" yaml:"sheet,omitempty" json:"sheet,omitempty"`
	// Delimiter separates CSV fields.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
	// NameColumn overrides the raw column holding the asset name.
	NameColumn string `mapstructure:"name_column" yaml:"name_column,omitempty" json:"name_column,omitempty"`
	// LocationPassthrough keeps unmatched location values verbatim.
	LocationPassthrough bool `mapstructure:"location_passthrough" yaml:"location_passthrough" json:"location_passthrough"`
	// ClientOSPattern overrides the desktop OS exclusion pattern.
	ClientOSPattern string `mapstructure:"client_os_pattern" yaml:"client_os_pattern,omitempty" json:"client_os_pattern,omitempty"`
}

// Sources groups the per-category settings.
type Sources struct {
	VMware   Source `mapstructure:"vmware" yaml:"vmware" json:"vmware"`
	Proxmox  Source `mapstructure:"proxmox" yaml:"proxmox" json:"proxmox"`
	Coverage Source `mapstructure:"coverage" yaml:"coverage" json:"coverage"`
}

// Run is the configuration of one reconciliation run.
type Run struct {
	InputDir     string   `mapstructure:"input_dir" yaml:"input_dir" json:"input_dir"`
	MasterPath   string   `mapstructure:"master" yaml:"master" json:"master"`
	OutputPath   string   `mapstructure:"output" yaml:"output" json:"output"`
	Sources      Sources  `mapstructure:"sources" yaml:"sources" json:"sources"`
	Precedence   []string `mapstructure:"precedence" yaml:"precedence" json:"precedence"`
	PurgePolicy  string   `mapstructure:"purge_policy" yaml:"purge_policy" json:"purge_policy"`
	PurgePattern string   `mapstructure:"purge_pattern" yaml:"purge_pattern" json:"purge_pattern"`
	SummaryFile  string   `mapstructure:"summary_file" yaml:"summary_file,omitempty" json:"summary_file,omitempty"`
	SummaryTitle string   `mapstructure:"summary_title" yaml:"summary_title" json:"summary_title"`
	HistoryDB    string   `mapstructure:"history_db" yaml:"history_db,omitempty" json:"history_db,omitempty"`
	DryRun       bool     `mapstructure:"dry_run" yaml:"dry_run" json:"dry_run"`
}

// Default returns the configuration matching the standard export names.
func Default() *Run {
	return &Run{
		InputDir:   ".",
		MasterPath: constants.DefaultMasterFile,
		OutputPath: constants.DefaultOutputFile,
		Sources: Sources{
			VMware: Source{
				Enabled:  true,
				Patterns: []string{"*vSphere*", "*VM Inventory*"},
			},
			Proxmox: Source{
				Enabled:  true,
				Patterns: []string{"*Proxmox*"},
			},
			Coverage: Source{
				Enabled:  true,
				Patterns: []string{"latest_agents*"},
				SkipRows: constants.DefaultCoverageSkipRows,
			},
		},
		Precedence:   []string{sources.VMwareID.String(), sources.ProxmoxID.String()},
		PurgePolicy:  reconcile.PurgeOff.String(),
		PurgePattern: constants.DefaultPurgePattern,
		SummaryTitle: "Inventory reconciliation",
	}
}

// Source returns the settings for a category.
func (r *Run) Source(id sources.ID) Source {
	switch id {
	case sources.VMwareID:
		return r.Sources.VMware
	case sources.ProxmoxID:
		return r.Sources.Proxmox
	case sources.CoverageID:
		return r.Sources.Coverage
	}
	return Source{}
}

// Resolve turns relative master, output and source paths into paths under
// the input directory.
func (r *Run) Resolve() {
	r.MasterPath = r.under(r.MasterPath)
	r.OutputPath = r.under(r.OutputPath)
	for _, s := range []*Source{&r.Sources.VMware, &r.Sources.Proxmox, &r.Sources.Coverage} {
		if s.Path != "" {
			s.Path = r.under(s.Path)
		}
	}
}

func (r *Run) under(path string) string {
	if path == "" || filepath.IsAbs(path) || r.InputDir == "" {
		return path
	}
	return filepath.Join(r.InputDir, path)
}

// Validate checks the configuration for errors.
func (r *Run) Validate() error {
	if r.MasterPath == "" {
		return &errors.ValidationError{Field: "master", Message: "cannot be empty"}
	}
	if r.OutputPath == "" && !r.DryRun {
		return &errors.ValidationError{Field: "output", Message: "cannot be empty"}
	}
	if _, err := sources.ParsePrecedence(r.Precedence); err != nil {
		return err
	}
	if _, err := r.EngineOptions(); err != nil {
		return err
	}
	for _, id := range sources.IDs() {
		s := r.Source(id)
		if !s.Enabled {
			continue
		}
		if s.Path == "" && len(s.Patterns) == 0 {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("sources.%s", id),
				Message: "needs a path or at least one pattern",
			}
		}
		if s.SkipRows < 0 {
			return &errors.ValidationError{Field: fmt.Sprintf("sources.%s.skip_rows", id), Value: s.SkipRows, Message: "cannot be negative"}
		}
		if _, err := s.DelimiterRune(); err != nil {
			return errors.WrapValidation(fmt.Sprintf("sources.%s.delimiter", id), err)
		}
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or zero for the default.
// The names "tab" and "semicolon" are accepted.
func (s Source) DelimiterRune() (rune, error) {
	switch s.Delimiter {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "semicolon":
		return ';', nil
	}
	if utf8.RuneCountInString(s.Delimiter) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	return r, nil
}

// ReaderOptions returns the options used to load the source file.
func (s Source) ReaderOptions() (tabular.Options, error) {
	delim, err := s.DelimiterRune()
	if err != nil {
		return tabular.Options{}, err
	}
	return tabular.Options{SkipRows: s.SkipRows, Delimiter: delim, Sheet: s.Sheet}, nil
}

// NormalizerOptions returns the normalizer options for a category.
func (s Source) NormalizerOptions() []sources.Option {
	var opts []sources.Option
	if s.LocationPassthrough {
		opts = append(opts, sources.WithLocationPassthrough(true))
	}
	if s.ClientOSPattern != "" {
		opts = append(opts, sources.WithClientOSPattern(s.ClientOSPattern))
	}
	if s.NameColumn != "" {
		opts = append(opts, sources.WithNameColumn(s.NameColumn))
	}
	return opts
}

// EngineOptions returns the reconciliation engine options.
func (r *Run) EngineOptions() ([]reconcile.Option, error) {
	precedence, err := sources.ParsePrecedence(r.Precedence)
	if err != nil {
		return nil, err
	}
	policy, err := reconcile.ParsePurgePolicy(r.PurgePolicy)
	if err != nil {
		return nil, err
	}
	opts := []reconcile.Option{
		reconcile.WithPrecedence(precedence),
		reconcile.WithPurgePolicy(policy),
	}
	if r.PurgePattern != "" {
		opts = append(opts, reconcile.WithPurgePattern(r.PurgePattern))
	}
	return opts, nil
}
