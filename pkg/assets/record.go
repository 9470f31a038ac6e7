package assets

import "maps"

// Source identifies the discovery technology that produced a record.
type Source string

// String returns the string representation of a source.
func (s Source) String() string {
	return string(s)
}

// Known record sources.
const (
	SourceVMware   Source = "VMware"
	SourceProxmox  Source = "Proxmox"
	SourceCoverage Source = "THS"
)

// Record is a source record normalized into the canonical schema. Fields the
// source did not provide are absent from the map rather than set to Unknown,
// so callers can tell "not reported" from "reported as unknown".
type Record struct {
	Fields map[Field]string
	Source Source
}

// NewRecord creates an empty record tagged with its source.
func NewRecord(source Source) Record {
	rec := Record{
		Fields: make(map[Field]string),
		Source: source,
	}
	rec.Fields[FieldTechnologySource] = source.String()
	return rec
}

// Get returns the value of f and whether the source provided it.
func (r Record) Get(f Field) (string, bool) {
	v, ok := r.Fields[f]
	return v, ok
}

// Value returns the value of f, or Unknown when absent.
func (r Record) Value(f Field) string {
	if v, ok := r.Fields[f]; ok {
		return Normalize(v)
	}
	return Unknown
}

// Has reports whether the source provided f.
func (r Record) Has(f Field) bool {
	_, ok := r.Fields[f]
	return ok
}

// Set stores v for f.
func (r Record) Set(f Field, v string) {
	r.Fields[f] = v
}

// Name returns the record's primary identifier.
func (r Record) Name() string {
	return r.Fields[FieldName]
}

// Key returns the identity key of the record.
func (r Record) Key() string {
	return Key(r.Fields[FieldName])
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Record{
		Fields: maps.Clone(r.Fields),
		Source: r.Source,
	}
}
