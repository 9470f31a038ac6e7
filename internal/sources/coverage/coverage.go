// Package coverage normalizes the THS agent coverage report. Its records
// enrich existing inventory rows and never add assets.
package coverage

import (
	"github.com/agentstation/assetmap/internal/sources/base"
	"github.com/agentstation/assetmap/internal/sources/registry"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/sources"
)

func init() {
	registry.Register(sources.CoverageID, func(opts ...sources.Option) (sources.Normalizer, error) {
		return New(opts...)
	})
}

// Report columns.
const (
	ColumnHostname       = "Hostname"
	ColumnTHSDeployment  = "THS deployment"
	ColumnGRRCoverage    = "System covered by GRR"
	ColumnLogsShipped    = "System logs shipped"
	ColumnSysmonCoverage = "System covered by Sysmon"
)

// SkipRows is the number of banner rows above the report header.
const SkipRows = 3

// Profile returns the coverage report stage configuration.
func Profile() base.Profile {
	return base.Profile{
		ID:         sources.CoverageID,
		NameColumn: ColumnHostname,
		Mappings: []base.Mapping{
			{Column: ColumnHostname, Field: assets.FieldName},
			{Column: ColumnTHSDeployment, Field: assets.FieldTHSDeployment},
			{Column: ColumnGRRCoverage, Field: assets.FieldGRRCoverage},
			{Column: ColumnLogsShipped, Field: assets.FieldLogsShipped},
			{Column: ColumnSysmonCoverage, Field: assets.FieldSysmonCoverage},
		},
	}
}

// New creates a coverage report normalizer.
func New(opts ...sources.Option) (*base.Normalizer, error) {
	return base.New(Profile().Apply(sources.ApplyOptions(opts...)))
}
