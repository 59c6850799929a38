// Package recgen provides tools for parsing record layout files and
// generating Go code from them.
package recgen

// Layout holds every record definition extracted from a layout file.
type Layout struct {
	// Records is a list of all record definitions in the layout.
	Records []RecordSpec
}

// RecordSpec describes one record type: its body fields, nested subrecords,
// and repeating sublists.
type RecordSpec struct {
	// Name is the record-type discriminator.
	Name string
	// Fields is a list of body field definitions.
	Fields []FieldSpec
	// Subrecords is a list of nested subrecord definitions.
	Subrecords []SubrecordSpec
	// Sublists is a list of repeating sublist definitions.
	Sublists []SublistSpec
}

// FieldSpec describes a single field of a record body or sublist line.
type FieldSpec struct {
	// Name is the declared field name.
	Name string
	// ValueType is the platform value type (text, number, integer,
	// currency, percent, date, checkbox, select, ...).
	ValueType string
	// FieldID overrides the platform field id when it differs from Name.
	FieldID string
	// Text requests a companion text-accessor property.
	Text bool
}

// SubrecordSpec describes a nested subrecord field.
type SubrecordSpec struct {
	// Name is the field the subrecord hangs off.
	Name string
	// RecordType is the record type of the nested record.
	RecordType string
}

// SublistSpec describes one repeating sublist and its line fields.
type SublistSpec struct {
	// Name is the sublist identifier.
	Name string
	// Fields is a list of line field definitions.
	Fields []FieldSpec
	// Subrecords is a list of line-level subrecord definitions.
	Subrecords []SubrecordSpec
}
