package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/assetmap/pkg/config"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/reconcile"
	"github.com/agentstation/assetmap/pkg/sources"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Inventory.csv", cfg.MasterPath)
	assert.Equal(t, 3, cfg.Source(sources.CoverageID).SkipRows)
	assert.Equal(t, []string{"vmware", "proxmox"}, cfg.Precedence)

	opts, err := cfg.EngineOptions()
	require.NoError(t, err)
	e, err := reconcile.New(opts...)
	require.NoError(t, err)
	assert.Equal(t, reconcile.PurgeOff, e.PurgePolicy())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Run)
	}{
		{"empty master", func(r *config.Run) { r.MasterPath = "" }},
		{"empty output", func(r *config.Run) { r.OutputPath = "" }},
		{"bad precedence", func(r *config.Run) { r.Precedence = []string{"coverage"} }},
		{"bad purge policy", func(r *config.Run) { r.PurgePolicy = "always" }},
		{"bad purge pattern", func(r *config.Run) { r.PurgePattern = "(" }},
		{"source without patterns", func(r *config.Run) { r.Sources.Proxmox.Patterns = nil }},
		{"negative skip rows", func(r *config.Run) { r.Sources.Coverage.SkipRows = -1 }},
		{"bad delimiter", func(r *config.Run) { r.Sources.VMware.Delimiter = ";;" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)
			assert.True(t, errors.IsValidationError(cfg.Validate()))
		})
	}

	t.Run("dry run needs no output", func(t *testing.T) {
		cfg := config.Default()
		cfg.OutputPath = ""
		cfg.DryRun = true
		assert.NoError(t, cfg.Validate())
	})

	t.Run("disabled sources are not checked", func(t *testing.T) {
		cfg := config.Default()
		cfg.Sources.Proxmox = config.Source{}
		assert.NoError(t, cfg.Validate())
	})
}

func TestResolve(t *testing.T) {
	cfg := config.Default()
	cfg.InputDir = "/data/exports"
	cfg.OutputPath = "/tmp/out.csv"
	cfg.Sources.Proxmox.Path = "px.xlsx"
	cfg.Resolve()

	assert.Equal(t, filepath.Join("/data/exports", "Inventory.csv"), cfg.MasterPath)
	assert.Equal(t, "/tmp/out.csv", cfg.OutputPath)
	assert.Equal(t, filepath.Join("/data/exports", "px.xlsx"), cfg.Sources.Proxmox.Path)
	assert.Empty(t, cfg.Sources.VMware.Path)
}

func TestDelimiterRune(t *testing.T) {
	for in, want := range map[string]rune{"": 0, "tab": '\t', "semicolon": ';', "|": '|', ",": ','} {
		got, err := config.Source{Delimiter: in}.DelimiterRune()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizerOptions(t *testing.T) {
	s := config.Source{LocationPassthrough: true, ClientOSPattern: "win", NameColumn: "VM"}
	opts := sources.ApplyOptions(s.NormalizerOptions()...)
	assert.True(t, opts.LocationPassthrough)
	assert.Equal(t, "win", opts.ClientOSPattern)
	assert.Equal(t, "VM", opts.NameColumn)

	assert.Empty(t, config.Source{}.NormalizerOptions())
}

func TestReaderOptions(t *testing.T) {
	opts, err := config.Source{SkipRows: 3, Delimiter: "tab", Sheet: "Agents"}.ReaderOptions()
	require.NoError(t, err)
	assert.Equal(t, 3, opts.SkipRows)
	assert.Equal(t, '\t', opts.Delimiter)
	assert.Equal(t, "Agents", opts.Sheet)

	_, err = config.Source{Delimiter: "ab"}.ReaderOptions()
	assert.Error(t, err)
}
