// Package inventory models the master asset inventory: an ordered table of
// string cells whose rows carry a lifecycle status and agent coverage columns.
//
// Tables are treated as values by the reconciliation pipeline. Every transform
// clones its input and returns a new table, so a caller's table is never
// mutated behind its back.
package inventory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/assetmap/pkg/assets"
)

// Status is the lifecycle status of an inventory row.
type Status string

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// Lifecycle statuses.
const (
	StatusExisting   Status = "Existing"
	StatusRemoved    Status = "Removed"
	StatusNewlyAdded Status = "Newly Added"
)

// Statuses returns all statuses in reporting order.
func Statuses() []Status {
	return []Status{StatusExisting, StatusRemoved, StatusNewlyAdded}
}

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses(), s)
}

// Master inventory columns.
const (
	ColumnName                  = "Name"
	ColumnApplication           = "Application"
	ColumnCICollection          = "CICollection"
	ColumnCluster               = "Cluster"
	ColumnFunctionalGroup       = "Functional_Group"
	ColumnEnvironment           = "Environment"
	ColumnIPAddress             = "IP_Address"
	ColumnLocation              = "Location"
	ColumnOrganization          = "Organization"
	ColumnOS                    = "OS"
	ColumnOSTechnicalMaintainer = "OS_Technical_Maintainer"
	ColumnStatus                = "Status"
	ColumnTechnology            = "Technology"

	ColumnTHSDeployment  = "THS deployment"
	ColumnGRRCoverage    = "THS_System covered by GRR"
	ColumnLogsShipped    = "THS_System logs shipped"
	ColumnSysmonCoverage = "THS_System covered by Sysmon"

	// ColumnKey is the working identity key column. It never reaches output.
	ColumnKey = "Name_lower"
)

// fieldColumns maps canonical fields to master columns.
var fieldColumns = map[assets.Field]string{
	assets.FieldName:                  ColumnName,
	assets.FieldApplication:           ColumnApplication,
	assets.FieldCICollection:          ColumnCICollection,
	assets.FieldCluster:               ColumnCluster,
	assets.FieldFunctionalGroup:       ColumnFunctionalGroup,
	assets.FieldEnvironment:           ColumnEnvironment,
	assets.FieldIPAddress:             ColumnIPAddress,
	assets.FieldLocation:              ColumnLocation,
	assets.FieldOrganization:          ColumnOrganization,
	assets.FieldOS:                    ColumnOS,
	assets.FieldOSTechnicalMaintainer: ColumnOSTechnicalMaintainer,
	assets.FieldTechnologySource:      ColumnTechnology,
	assets.FieldTHSDeployment:         ColumnTHSDeployment,
	assets.FieldGRRCoverage:           ColumnGRRCoverage,
	assets.FieldLogsShipped:           ColumnLogsShipped,
	assets.FieldSysmonCoverage:        ColumnSysmonCoverage,
}

// ColumnFor returns the master column a canonical field is written to.
func ColumnFor(f assets.Field) (string, bool) {
	col, ok := fieldColumns[f]
	return col, ok
}

// CoverageColumns returns the coverage columns in the order of
// assets.CoverageFields.
func CoverageColumns() []string {
	return []string{ColumnTHSDeployment, ColumnGRRCoverage, ColumnLogsShipped, ColumnSysmonCoverage}
}

// NewRowColumns returns the columns a synthesized row populates, in the order
// they are appended to a master that lacks them.
func NewRowColumns() []string {
	return append([]string{
		ColumnName,
		ColumnApplication,
		ColumnCICollection,
		ColumnCluster,
		ColumnFunctionalGroup,
		ColumnEnvironment,
		ColumnIPAddress,
		ColumnLocation,
		ColumnOrganization,
		ColumnOS,
		ColumnOSTechnicalMaintainer,
		ColumnStatus,
		ColumnTechnology,
	}, CoverageColumns()...)
}

// dedupeHeader trims column names, names blank headers "Unnamed: i" and
// renames repeats to "name.1", "name.2" and so on.
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	repeats := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			repeats[h]++
			name = fmt.Sprintf("%s.%d", h, repeats[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
