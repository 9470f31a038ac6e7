package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/errors"
	"github.com/agentstation/assetmap/pkg/inventory"
	"github.com/agentstation/assetmap/pkg/logging"
	"github.com/agentstation/assetmap/pkg/reconcile"
	"github.com/agentstation/assetmap/pkg/sources"
)

func newEngine(t *testing.T, opts ...reconcile.Option) *reconcile.Engine {
	t.Helper()
	e, err := reconcile.New(opts...)
	require.NoError(t, err)
	return e
}

func TestReconcileScenario(t *testing.T) {
	e := newEngine(t)
	sm := reconcile.BuildSourceMap(e.Precedence(), map[sources.ID][]assets.Record{
		sources.VMwareID: {
			record(assets.SourceVMware, "B"),
			record(assets.SourceVMware, "C", "cluster", "bds-vc-01", "location", "Brindisi"),
		},
		sources.ProxmoxID: nil,
	})

	out, res, err := e.Reconcile(context.Background(), master("A", "B"), sm)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"A": "Removed",
		"B": "Existing",
		"C": "Newly Added",
	}, statusByName(out))
	assert.Equal(t, 1, res.Stats.Existing)
	assert.Equal(t, 1, res.Stats.Removed)
	assert.Equal(t, 1, res.Stats.NewlyAdded)
	assert.Equal(t, 3, res.Stats.TotalRows)

	c := rowByName(out, "C")
	assert.Equal(t, "VMware", c[inventory.ColumnTechnology])
	assert.Equal(t, "bds-vc-01", c[inventory.ColumnCluster])
	assert.Equal(t, "Brindisi", c[inventory.ColumnLocation])
	assert.Equal(t, "c", c[inventory.ColumnKey])
}

func TestStatusIsExclusiveAndNewKeysComeFromSources(t *testing.T) {
	e := newEngine(t)
	m := master("alpha", " Beta ", "", "gamma")
	sm := reconcile.BuildSourceMap(e.Precedence(), map[sources.ID][]assets.Record{
		sources.VMwareID:  {record(assets.SourceVMware, "BETA"), record(assets.SourceVMware, "delta")},
		sources.ProxmoxID: {record(assets.SourceProxmox, "epsilon"), record(assets.SourceProxmox, "gamma")},
	})

	out, _, err := e.Reconcile(context.Background(), m, sm)
	require.NoError(t, err)

	masterKeys := map[string]bool{}
	for i := 0; i < m.Len(); i++ {
		masterKeys[assets.Key(m.Value(i, inventory.ColumnName))] = true
	}
	for i := 0; i < out.Len(); i++ {
		status := inventory.Status(out.Value(i, inventory.ColumnStatus))
		require.True(t, status.IsValid(), "row %d has status %q", i, status)
		if status == inventory.StatusNewlyAdded {
			key := assets.Key(out.Value(i, inventory.ColumnName))
			assert.False(t, masterKeys[key])
			assert.True(t, sm.Has(key))
		}
	}

	assert.Equal(t, []string{"alpha", " Beta ", "", "gamma", "delta", "epsilon"}, namesOf(out))
	assert.Equal(t, "Removed", out.Value(2, inventory.ColumnStatus), "blank master names never match")
}

func namesOf(t *inventory.Table) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.Value(i, inventory.ColumnName)
	}
	return out
}

func TestNewRowsHaveUnknownCoverage(t *testing.T) {
	e := newEngine(t)
	sm := reconcile.BuildSourceMap(e.Precedence(), map[sources.ID][]assets.Record{
		sources.ProxmoxID: {record(assets.SourceProxmox, "px-1", "functional_maintainer", "Web Team")},
	})

	out, _, err := e.Reconcile(context.Background(), master(), sm)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())

	row := out.Row(0)
	for _, col := range inventory.CoverageColumns() {
		assert.Equal(t, assets.Unknown, row[col], col)
	}
	assert.Equal(t, "Web Team", row[inventory.ColumnFunctionalGroup])
	assert.Equal(t, "Proxmox", row[inventory.ColumnTechnology])
	assert.Equal(t, assets.Unknown, row[inventory.ColumnIPAddress])
}

func TestFunctionalGroupPrefersOwnValue(t *testing.T) {
	e := newEngine(t)
	sm := reconcile.BuildSourceMap(e.Precedence(), map[sources.ID][]assets.Record{
		sources.VMwareID: {record(assets.SourceVMware, "vm-1", "functional_group", "Payments", "functional_maintainer", "Other")},
	})
	out, _, err := e.Reconcile(context.Background(), master(), sm)
	require.NoError(t, err)
	assert.Equal(t, "Payments", out.Value(0, inventory.ColumnFunctionalGroup))
}

func TestPrecedenceLaw(t *testing.T) {
	records := map[sources.ID][]assets.Record{
		sources.VMwareID:  {record(assets.SourceVMware, "Host1", "os", "RHEL 8", "cluster", "bds-vc-01")},
		sources.ProxmoxID: {record(assets.SourceProxmox, " host1 ", "os", "Debian 12")},
	}

	sm := reconcile.BuildSourceMap(sources.DefaultPrecedence(), records)
	rec, ok := sm.Get("host1")
	require.True(t, ok)
	assert.Equal(t, assets.SourceProxmox, rec.Source)
	assert.Equal(t, "Debian 12", rec.Value(assets.FieldOS))
	assert.False(t, rec.Has(assets.FieldCluster), "the later record replaces the earlier one entirely")
	assert.Equal(t, 1, sm.Overrides())
	assert.Equal(t, []string{"host1"}, sm.Keys())

	reversed := reconcile.BuildSourceMap(sources.Precedence{sources.ProxmoxID, sources.VMwareID}, records)
	rec, _ = reversed.Get("host1")
	assert.Equal(t, assets.SourceVMware, rec.Source)
	origin, _ := reversed.Origin("host1")
	assert.Equal(t, sources.VMwareID, origin)
}

func TestSourcesMissingFromPrecedenceAreInsertedLast(t *testing.T) {
	e := newEngine(t, reconcile.WithPrecedence(sources.Precedence{sources.VMwareID}))
	rec := logging.NewRecorder()

	out, res, err := e.Run(rec.Context(context.Background()), reconcile.Input{
		Master: master("px-only", "shared"),
		Discovered: map[sources.ID][]assets.Record{
			sources.VMwareID:  {record(assets.SourceVMware, "shared", "os", "RHEL 8")},
			sources.ProxmoxID: {record(assets.SourceProxmox, "px-only"), record(assets.SourceProxmox, "px-new"), record(assets.SourceProxmox, "shared", "os", "Debian 12")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"px-only": "Existing",
		"shared":  "Existing",
		"px-new":  "Newly Added",
	}, statusByName(out))
	assert.Equal(t, 1, res.Stats.NewlyAdded)
	assert.Equal(t, 1, res.Stats.Overrides, "an unlisted source still replaces earlier records")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "proxmox")

	events := rec.Find("warn", "missing from precedence")
	require.Len(t, events, 1)
	assert.Equal(t, "proxmox", events[0].Str("source"))
	assert.Equal(t, 3, events[0].Int("records"))

	added := rec.Find("debug", "Adding newly discovered asset")
	require.Len(t, added, 1)
	assert.Equal(t, "px-new", added[0].Str("key"))
	assert.Equal(t, "proxmox", added[0].Str("origin"))
}

func TestUnlistedSourceWithoutRecordsIsIgnored(t *testing.T) {
	sm := reconcile.BuildSourceMap(sources.Precedence{sources.ProxmoxID}, map[sources.ID][]assets.Record{
		sources.VMwareID:   nil,
		sources.ProxmoxID:  {record(assets.SourceProxmox, "px-1")},
		sources.CoverageID: {record(assets.SourceCoverage, "ths-1")},
	})
	assert.Equal(t, []string{"px-1"}, sm.Keys(), "coverage is never a discovery source")
}

func TestExistingIgnoresFieldContent(t *testing.T) {
	e := newEngine(t)
	m := master("db-1")
	sm := reconcile.BuildSourceMap(e.Precedence(), map[sources.ID][]assets.Record{
		sources.VMwareID: {record(assets.SourceVMware, "DB-1", "os", "Windows Server 2022")},
	})
	out, _, err := e.Reconcile(context.Background(), m, sm)
	require.NoError(t, err)
	assert.Equal(t, "Existing", out.Value(0, inventory.ColumnStatus))
	assert.Equal(t, "Linux", out.Value(0, inventory.ColumnOS))
}

func TestReconcileDoesNotMutateMaster(t *testing.T) {
	e := newEngine(t)
	m := master("a")
	before := m.Records()

	_, _, err := e.Reconcile(context.Background(), m, reconcile.NewSourceMap())
	require.NoError(t, err)

	assert.Equal(t, before, m.Records())
	assert.False(t, m.HasColumn(inventory.ColumnStatus))
}

func TestPurgePolicies(t *testing.T) {
	build := func() (*inventory.Table, *reconcile.SourceMap) {
		m := inventory.NewTable(inventory.ColumnName, inventory.ColumnOS)
		m.Append("desk-old", "Microsoft Windows 10 Enterprise")
		m.Append("srv-1", "RHEL 9")
		sm := reconcile.NewSourceMap()
		sm.Add(sources.VMwareID, []assets.Record{
			record(assets.SourceVMware, "srv-1"),
			record(assets.SourceVMware, "desk-new", "os", "windows 11 pro"),
		})
		return m, sm
	}

	tests := []struct {
		policy reconcile.PurgePolicy
		names  []string
		purged int
	}{
		{reconcile.PurgeOff, []string{"desk-old", "srv-1", "desk-new"}, 0},
		{reconcile.PurgeBeforeSynthesis, []string{"srv-1", "desk-new"}, 1},
		{reconcile.PurgeAfterSynthesis, []string{"srv-1"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			e := newEngine(t, reconcile.WithPurgePolicy(tt.policy))
			m, sm := build()
			out, res, err := e.Reconcile(context.Background(), m, sm)
			require.NoError(t, err)
			assert.Equal(t, tt.names, namesOf(out))
			assert.Equal(t, tt.purged, res.Stats.Purged)
			assert.Equal(t, tt.policy, res.Metadata.PurgePolicy)
		})
	}
}

func TestPurgePattern(t *testing.T) {
	e := newEngine(t, reconcile.WithPurgePolicy(reconcile.PurgeBeforeSynthesis), reconcile.WithPurgePattern("CentOS 6"))
	m := inventory.NewTable(inventory.ColumnName, inventory.ColumnOS)
	m.Append("legacy", "centos 6.10")
	m.Append("desk", "Windows 10")

	out, _, err := e.Reconcile(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"desk"}, namesOf(out))
}

func TestOptionsValidation(t *testing.T) {
	_, err := reconcile.New(reconcile.WithPurgePolicy("sometimes"))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconcile.New(reconcile.WithPurgePattern(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconcile.New(reconcile.WithPurgePattern("("))
	assert.True(t, errors.IsValidationError(err))

	_, err = reconcile.New(reconcile.WithPrecedence(sources.Precedence{sources.CoverageID}))
	assert.True(t, errors.IsValidationError(err))

	p, err := reconcile.ParsePurgePolicy(" After-Synthesis ")
	require.NoError(t, err)
	assert.Equal(t, reconcile.PurgeAfterSynthesis, p)

	p, err = reconcile.ParsePurgePolicy("")
	require.NoError(t, err)
	assert.Equal(t, reconcile.PurgeOff, p)
}

func TestReconcileErrors(t *testing.T) {
	e := newEngine(t)
	_, _, err := e.Reconcile(context.Background(), nil, nil)
	assert.True(t, errors.IsValidationError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = e.Reconcile(ctx, master("a"), nil)
	assert.True(t, errors.IsCanceled(err))
}

func TestRerunWithOutputAsMasterAddsNothing(t *testing.T) {
	e := newEngine(t)
	in := reconcile.Input{
		Master: master("A", "B"),
		Discovered: map[sources.ID][]assets.Record{
			sources.VMwareID: {record(assets.SourceVMware, "B"), record(assets.SourceVMware, "C")},
		},
	}

	first, res1, err := e.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, res1.Stats.NewlyAdded)

	in.Master = first
	second, res2, err := e.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, res2.Stats.NewlyAdded)
	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, "Existing", rowByName(second, "C")[inventory.ColumnStatus])
}
