// Package platform defines the boundary to the host ERP's record-manipulation
// capability. The mapping core in the rec package talks exclusively to the
// Client and Record interfaces declared here; concrete implementations live
// elsewhere (see platform/memclient for the in-memory reference client).
package platform

// Client opens record handles. Implementations talk to the host runtime;
// both calls may perform remote I/O and return its errors unchanged.
type Client interface {
	// Create requests a brand-new record of the given type.
	Create(recordType string, opts CreateOptions) (Record, error)
	// Load requests an existing record by internal identifier. The
	// identifier keeps the caller's value type (a string id stays a
	// string, an int stays an int).
	Load(recordType string, id any, opts LoadOptions) (Record, error)
}

// Record is an opaque handle to one business record owned by the host
// runtime. Handles are borrowed references: the mapping layer never owns or
// releases them.
//
// Line-addressed ("sublist") calls come in two families. The standard family
// addresses lines by explicit index. The current-line family requires a line
// to be selected first and is only meaningful on dynamic-mode handles.
type Record interface {
	// ID returns the internal identifier, or nil when the record has
	// never been persisted.
	ID() any
	// Type returns the record-type discriminator.
	Type() string
	// IsDynamic reports whether the handle was opened in dynamic mode.
	IsDynamic() bool
	// IsPersistable reports whether Save is supported. Adopted
	// "current record" handles are transient and report false.
	IsPersistable() bool
	// Save persists the record and returns its identifier.
	Save(enableSourcing, ignoreMandatoryFields bool) (any, error)

	GetValue(fieldID string) (any, error)
	GetText(fieldID string) (string, error)
	SetValue(fieldID string, value any) error
	SetText(fieldID string, text string) error

	GetSublistValue(sublistID, fieldID string, line int) (any, error)
	GetSublistText(sublistID, fieldID string, line int) (string, error)
	SetSublistValue(sublistID, fieldID string, line int, value any) error
	SetSublistText(sublistID, fieldID string, line int, text string) error

	GetCurrentSublistValue(sublistID, fieldID string) (any, error)
	GetCurrentSublistText(sublistID, fieldID string) (string, error)
	SetCurrentSublistValue(sublistID, fieldID string, value any, opts ChangeOptions) error
	SetCurrentSublistText(sublistID, fieldID string, text string, opts ChangeOptions) error

	// SelectLine makes the line at the given index the current line.
	SelectLine(sublistID string, line int) error
	// SelectNewLine starts a new uncommitted line and makes it current.
	SelectNewLine(sublistID string) error
	// CommitLine commits the current line into the sublist.
	CommitLine(sublistID string) error

	// LineCount returns the number of committed lines in a sublist.
	// Unknown sublists count as empty.
	LineCount(sublistID string) int
	InsertLine(sublistID string, line int, ignoreRecalc bool) error
	RemoveLine(sublistID string, line int, ignoreRecalc bool) error

	GetSubrecord(fieldID string) (Record, error)
	GetSublistSubrecord(sublistID, fieldID string, line int) (Record, error)
	GetCurrentSublistSubrecord(sublistID, fieldID string) (Record, error)

	GetField(fieldID string) (*Field, error)
	GetSublistField(sublistID, fieldID string, line int) (*Field, error)
}

// Field describes a single field of a record or sublist line.
type Field struct {
	// ID is the field identifier.
	ID string
	// Label is the human-readable field label.
	Label string
	// Type is the platform value type (e.g. "text", "select", "currency").
	Type string
	// Mandatory reports whether the platform requires a value on save.
	Mandatory bool
}

// CreateOptions configures Client.Create.
type CreateOptions struct {
	// Dynamic requests a dynamic-mode handle.
	Dynamic bool
	// Defaults supplies initial field values applied at creation only.
	Defaults map[string]any
}

// LoadOptions configures Client.Load.
type LoadOptions struct {
	// Dynamic requests a dynamic-mode handle.
	Dynamic bool
	// Defaults supplies field values applied to fields the loaded record
	// leaves empty.
	Defaults map[string]any
}

// ChangeOptions carries the per-write behavioral flags accepted by
// current-line writes in dynamic mode.
type ChangeOptions struct {
	// IgnoreFieldChange suppresses the platform's field-change event.
	IgnoreFieldChange bool
	// ForceSyncSourcing forces dependent field sourcing to run
	// synchronously before the call returns.
	ForceSyncSourcing bool
}
