// Package proxmox normalizes Proxmox discovered VM exports.
package proxmox

import (
	"github.com/agentstation/assetmap/internal/sources/base"
	"github.com/agentstation/assetmap/internal/sources/registry"
	"github.com/agentstation/assetmap/pkg/assets"
	"github.com/agentstation/assetmap/pkg/sources"
)

func init() {
	registry.Register(sources.ProxmoxID, func(opts ...sources.Option) (sources.Normalizer, error) {
		return New(opts...)
	})
}

// Export columns.
const (
	ColumnName                  = "name"
	ColumnPowerState            = "powerstate"
	ColumnTags                  = "tags"
	ColumnOSType                = "ostype"
	ColumnOSDescription         = "OsDescription"
	ColumnClusterNode           = "cluster_node"
	ColumnApplicationMaintainer = "DiscoveredApplicationMaintainer"
	ColumnApplication           = "DiscoveredApplication"
	ColumnCICollection          = "DiscoveredCICollection"
	ColumnEnvironment           = "DiscoveredEnvironment"
	ColumnOSTechnicalMaintainer = "DiscoveredOSTechnicalMaintainer"
	ColumnOrganization          = "DiscoveredOrganization"
	ColumnIPAddress             = "ipaddress"
	ColumnOSName                = "DiscoveredOsName"
	ColumnLocation              = "Location"
)

// ClientOSPattern matches desktop Windows in any of the OS probe columns.
const ClientOSPattern = `Windows 10|Windows 11|win10|win11`

// Profile returns the Proxmox stage configuration.
func Profile() base.Profile {
	return base.Profile{
		ID:         sources.ProxmoxID,
		NameColumn: ColumnName,
		PowerState: &base.StateFilter{Column: ColumnPowerState, Token: "poweredon"},
		Exclusions: []base.PatternFilter{
			{Columns: []string{ColumnName}, Pattern: "template|replica|migrated"},
			{Columns: []string{ColumnTags}, Pattern: "template|replica"},
			{
				Columns:  []string{ColumnOSType, ColumnOSName, ColumnOSDescription},
				Pattern:  ClientOSPattern,
				ClientOS: true,
			},
		},
		Mappings: []base.Mapping{
			{Column: ColumnName, Field: assets.FieldName},
			{Column: ColumnClusterNode, Field: assets.FieldCluster},
			{Column: ColumnApplicationMaintainer, Field: assets.FieldFunctionalMaintainer},
			{Column: ColumnApplication, Field: assets.FieldApplication},
			{Column: ColumnCICollection, Field: assets.FieldCICollection},
			{Column: ColumnEnvironment, Field: assets.FieldEnvironment},
			{Column: ColumnOSTechnicalMaintainer, Field: assets.FieldOSTechnicalMaintainer},
			{Column: ColumnOrganization, Field: assets.FieldOrganization},
			{Column: ColumnIPAddress, Field: assets.FieldIPAddress},
			{Column: ColumnOSName, Field: assets.FieldOS},
			{Column: ColumnLocation, Field: assets.FieldLocation},
		},
		Location: &base.LocationRules{
			From: assets.FieldLocation,
			Rules: []base.SiteRule{
				{Site: "Brindisi", Matchers: []base.LocationMatcher{base.Equals("BDS")}},
				{Site: "Valencia", Matchers: []base.LocationMatcher{base.Equals("VLC")}},
			},
		},
	}
}

// New creates a Proxmox normalizer.
func New(opts ...sources.Option) (*base.Normalizer, error) {
	return base.New(Profile().Apply(sources.ApplyOptions(opts...)))
}
