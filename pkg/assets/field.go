package assets

import "slices"

// Field names a canonical attribute of an asset record.
type Field string

// String returns the string representation of a field.
func (f Field) String() string {
	return string(f)
}

// Canonical fields.
const (
	FieldName                  Field = "name"
	FieldCluster               Field = "cluster"
	FieldApplication           Field = "application"
	FieldCICollection          Field = "ci_collection"
	FieldOrganization          Field = "organization"
	FieldFunctionalGroup       Field = "functional_group"
	FieldEnvironment           Field = "environment"
	FieldIPAddress             Field = "ip_address"
	FieldOS                    Field = "os"
	FieldOSTechnicalMaintainer Field = "os_technical_maintainer"
	FieldLocation              Field = "location"
	FieldTechnologySource      Field = "technology_source"

	// FieldFunctionalMaintainer is the fallback for FieldFunctionalGroup on
	// sources that only report an application maintainer.
	FieldFunctionalMaintainer Field = "functional_maintainer"
)

// Coverage fields, produced only by the agent coverage report.
const (
	FieldTHSDeployment  Field = "ths_deployment"
	FieldGRRCoverage    Field = "grr_coverage"
	FieldLogsShipped    Field = "logs_shipped"
	FieldSysmonCoverage Field = "sysmon_coverage"
)

// Fields returns the canonical fields in master column order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldApplication,
		FieldCICollection,
		FieldCluster,
		FieldFunctionalGroup,
		FieldEnvironment,
		FieldIPAddress,
		FieldLocation,
		FieldOrganization,
		FieldOS,
		FieldOSTechnicalMaintainer,
		FieldTechnologySource,
	}
}

// CoverageFields returns the four agent coverage fields in report order.
func CoverageFields() []Field {
	return []Field{
		FieldTHSDeployment,
		FieldGRRCoverage,
		FieldLogsShipped,
		FieldSysmonCoverage,
	}
}

// IsValid returns true if f is a known canonical, working or coverage field.
func (f Field) IsValid() bool {
	return f == FieldFunctionalMaintainer ||
		slices.Contains(Fields(), f) ||
		slices.Contains(CoverageFields(), f)
}
