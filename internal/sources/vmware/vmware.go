// Package vmware normalizes vSphere VM inventory exports.
package vmware

import (
	"github.com/agentstation/assetmap/internal/sources/base"
	"github.com/agentstation/assetmap/internal/sources/registry"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/sources"
)

func init() {
	registry.Register(sources.VMwareID, func(opts ...sources.Option) (sources.Normalizer, error) {
		return New(opts...)
	})
}

// Export columns.
const (
	ColumnName                  = "Name"
	ColumnPowerState            = "Power state"
	ColumnSRMPlaceholder        = "SRM Placeholder"
	ColumnVCenter               = "vCenter"
	ColumnOSSystem              = "OS System"
	ColumnFunctionalGroup       = "Functional Group"
	ColumnBusinessApplication   = "Business Application"
	ColumnOSTechnicalMaintainer = "OS Technical Maintainer"
	ColumnEnvironment           = "Environment"
	ColumnCICollection          = "CICollection"
	ColumnOrganization          = "Organization"
)

// ClientOSPattern matches desktop Windows releases such as
// "Microsoft Windows 10 (64-bit)" but not "Microsoft Windows Server 2019".
const ClientOSPattern = `Microsoft Windows \d+`

// Profile returns the vSphere stage configuration.
func Profile() base.Profile {
	return base.Profile{
		ID:                sources.VMwareID,
		NameColumn:        ColumnName,
		PowerState:        &base.StateFilter{Column: ColumnPowerState, Token: "powered on"},
		PlaceholderColumn: ColumnSRMPlaceholder,
		Exclusions: []base.PatternFilter{
			{Columns: []string{ColumnName}, Pattern: "template|replica|migrated"},
			{Columns: []string{ColumnOSSystem}, Pattern: ClientOSPattern, ClientOS: true},
		},
		Mappings: []base.Mapping{
			{Column: ColumnName, Field: assets.FieldName},
			{Column: ColumnVCenter, Field: assets.FieldCluster},
			{Column: ColumnOSSystem, Field: assets.FieldOS},
			{Column: ColumnFunctionalGroup, Field: assets.FieldFunctionalGroup},
			{Column: ColumnBusinessApplication, Field: assets.FieldApplication},
			{Column: ColumnOSTechnicalMaintainer, Field: assets.FieldOSTechnicalMaintainer},
			{Column: ColumnEnvironment, Field: assets.FieldEnvironment},
			{Column: ColumnCICollection, Field: assets.FieldCICollection},
			{Column: ColumnOrganization, Field: assets.FieldOrganization},
		},
		Location: &base.LocationRules{
			From: assets.FieldCluster,
			Rules: []base.SiteRule{
				{Site: "Brindisi", Matchers: []base.LocationMatcher{
					base.Prefix("BDS"), base.Equals("DFS-VCS-01"), base.Equals("DEC"),
				}},
				{Site: "Valencia", Matchers: []base.LocationMatcher{
					base.Prefix("VLC"), base.Equals("DFS-VCS-51"), base.Equals("EDCV"),
				}},
			},
		},
	}
}

// New creates a vSphere normalizer.
func New(opts ...sources.Option) (*base.Normalizer, error) {
	return base.New(Profile().Apply(sources.ApplyOptions(opts...)))
}
