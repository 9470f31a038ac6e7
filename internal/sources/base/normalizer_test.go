package base_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/assetmap/internal/sources/base"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/sources"
)

func testProfile() base.Profile {
	return base.Profile{
		ID:                sources.VMwareID,
		NameColumn:        "Name",
		PowerState:        &base.StateFilter{Column: "State", Token: "on"},
		PlaceholderColumn: "Placeholder",
		Exclusions: []base.PatternFilter{
			{Columns: []string{"Name"}, Pattern: "template|replica"},
			{Columns: []string{"OS"}, Pattern: `Windows 1[01]`, ClientOS: true},
		},
		Mappings: []base.Mapping{
			{Column: "Name", Field: assets.FieldName},
			{Column: "OS", Field: assets.FieldOS},
			{Column: "Site", Field: assets.FieldCluster},
		},
		Location: &base.LocationRules{
			From: assets.FieldCluster,
			Rules: []base.SiteRule{
				{Site: "Brindisi", Matchers: []base.LocationMatcher{base.Prefix("BDS")}},
			},
		},
	}
}

func TestNormalizeFilters(t *testing.T) {
	tbl := inventory.NewTable("Name", "State", "Placeholder", "OS", "Site", "Ignored")
	tbl.Append("keep-1", " ON ", "false", "RHEL 9", "bds-01", "x")
	tbl.Append("off-1", "off", "false", "RHEL 9", "bds-01", "x")
	tbl.Append("ph-1", "on", "TRUE", "RHEL 9", "bds-01", "x")
	tbl.Append("web-Template", "on", "0", "RHEL 9", "bds-01", "x")
	tbl.Append("desk-1", "on", "", "windows 11 pro", "bds-01", "x")
	tbl.Append(" ", "on", "", "RHEL 9", "bds-01", "x")
	tbl.Append("keep-2", "on", "", "-", "vlc-02", "x")

	n := base.MustNew(testProfile())
	records, stats, err := n.NormalizeWithStats(context.Background(), tbl)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 7, stats.Input)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, map[string]int{
		base.DropPowerState:  1,
		base.DropPlaceholder: 1,
		base.DropExcluded:    2,
		base.DropBlankName:   1,
	}, stats.Dropped)

	first := records[0]
	assert.Equal(t, "keep-1", first.Name())
	assert.Equal(t, "Brindisi", first.Value(assets.FieldLocation))
	assert.Equal(t, "VMware", first.Value(assets.FieldTechnologySource))
	assert.False(t, first.Has(assets.Field("ignored")))

	second := records[1]
	assert.Equal(t, assets.Unknown, second.Fields[assets.FieldOS])
	assert.Equal(t, assets.Unknown, second.Fields[assets.FieldLocation])
}

func TestNormalizeSkipsAbsentColumns(t *testing.T) {
	tbl := inventory.NewTable("Name")
	tbl.Append("host-a")

	records, err := base.MustNew(testProfile()).Normalize(context.Background(), tbl)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Has(assets.FieldOS))
	assert.False(t, records[0].Has(assets.FieldLocation))
}

func TestNormalizeEmptyAndNil(t *testing.T) {
	n := base.MustNew(testProfile())

	records, err := n.Normalize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = n.Normalize(context.Background(), inventory.NewTable("Name"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeMissingNameColumn(t *testing.T) {
	tbl := inventory.NewTable("Hostname")
	tbl.Append("a")

	records, err := base.MustNew(testProfile()).Normalize(context.Background(), tbl)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNormalizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tbl := inventory.NewTable("Name")
	tbl.Append("a")
	_, err := base.MustNew(testProfile()).Normalize(ctx, tbl)
	assert.True(t, errors.IsCanceled(err))
}

func TestNewValidation(t *testing.T) {
	p := testProfile()
	p.Exclusions = []base.PatternFilter{{Columns: []string{"Name"}, Pattern: "("}}
	_, err := base.New(p)
	assert.True(t, errors.IsValidationError(err))

	p = testProfile()
	p.NameColumn = ""
	_, err = base.New(p)
	assert.True(t, errors.IsValidationError(err))

	p = testProfile()
	p.ID = "xen"
	_, err = base.New(p)
	assert.Error(t, err)

	p = testProfile()
	p.Mappings = append(p.Mappings, base.Mapping{Column: "Serial", Field: assets.Field("serial")})
	_, err = base.New(p)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "serial")
}

func TestProfileApply(t *testing.T) {
	p := testProfile().Apply(sources.ApplyOptions(
		sources.WithNameColumn("VM"),
		sources.WithClientOSPattern("win11"),
		sources.WithLocationPassthrough(true),
	))

	assert.Equal(t, "VM", p.NameColumn)
	assert.Equal(t, "VM", p.Mappings[0].Column)
	assert.Equal(t, []string{"VM"}, p.Exclusions[0].Columns)
	assert.Equal(t, "template|replica", p.Exclusions[0].Pattern)
	assert.Equal(t, "win11", p.Exclusions[1].Pattern)
	assert.True(t, p.Location.Passthrough)

	orig := testProfile()
	assert.Equal(t, "Name", orig.NameColumn)
	assert.False(t, orig.Location.Passthrough)
}
