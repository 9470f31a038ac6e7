package logging_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/assetmap/pkg/logging"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, logging.FromContext(context.Background()))
}

func TestSetDefault(t *testing.T) {
	saved := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(saved) })

	rec := logging.NewRecorder()
	logging.SetDefault(*rec.Logger())
	logging.FromContext(context.Background()).Info().Msg("via default")

	require.Len(t, rec.Find("info", "via default"), 1)
}

func TestContextFields(t *testing.T) {
	rec := logging.NewRecorder()

	ctx := rec.Context(context.Background())
	ctx = logging.WithRun(ctx, "run-1")
	ctx = logging.WithSource(ctx, "proxmox")
	ctx = logging.WithFile(ctx, "proxmox-cluster.xlsx")
	logging.FromContext(ctx).Warn().Int("rows", 3).Msg("Loaded source file")

	events := rec.Find("warn", "Loaded source")
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "run-1", e.Str("run_id"))
	assert.Equal(t, "proxmox", e.Str("source"))
	assert.Equal(t, "proxmox-cluster.xlsx", e.Str("file"))
	assert.Equal(t, 3, e.Int("rows"))
}

func TestWithLoggerNil(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), nil)
	assert.NotNil(t, logging.FromContext(ctx))
}

func TestRecorderFiltersByLevel(t *testing.T) {
	rec := logging.NewRecorder()
	logger := rec.Logger()
	logger.Trace().Msg("below debug")
	logger.Debug().Msg("row classified")
	logger.Info().Msg("row classified")

	assert.Len(t, rec.Events(), 2)
	assert.Len(t, rec.Find("debug", "classified"), 1)
	assert.Empty(t, rec.Find("error", ""))
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
