// Package rec provides the record wrapper and its construction modes.
package rec

import (
	"fmt"
	"reflect"

	"github.com/netlark/go-recdal/platform"
)

// Entity is the common access surface of record and line wrappers. It is
// satisfied by embedding BaseRecord or BaseLine.
type Entity interface {
	// GetValue reads a declared property's value.
	GetValue(name string) (any, error)
	// GetText reads a declared property's text representation.
	GetText(name string) (string, error)
	// SetValue writes a declared property's value.
	SetValue(name string, value any) error
	// SetText writes a declared property's text representation.
	SetText(name string, text string) error

	typeInfo() *TypeInfo
	subrecordHandle(name string) (platform.Record, error)
}

// NewOptions configures record construction.
type NewOptions struct {
	// Dynamic requests a dynamic-mode handle on create and load.
	Dynamic bool
	// Defaults supplies initial field values, applied by the platform at
	// creation only.
	Defaults map[string]any
}

// BaseRecord is the embeddable base for all Go structs mapping to business
// records. It owns the platform handle, the captured identifier, and the
// lazily built sublist containers.
//
// Example usage:
//
//	type SalesOrder struct {
//	    rec.BaseRecord `rec:"type:salesorder"`
//	    Memo  string           `rec:"memo"`
//	    Items []SalesOrderItem `rec:"item,sublist"`
//	}
type BaseRecord struct {
	handle        platform.Record
	client        platform.Client
	info          *TypeInfo
	id            any
	useDynamicAPI bool
	sublists      map[string]*Sublist
}

// New constructs a record entity of type T with default options. The source
// argument selects one of three mutually exclusive construction modes:
//
//   - nil: request a brand-new record of T's declared record type
//   - a platform.Record: adopt the handle directly, no load performed
//   - a number or numeric string: load the existing record by identifier
//
// Any other source fails with InvalidArgumentError.
func New[T any](client platform.Client, source any) (*T, error) {
	return NewWithOptions[T](client, source, NewOptions{})
}

// NewWithOptions is New with explicit dynamic-mode and default-value options.
// Options only affect the create and load modes; an adopted handle keeps
// whatever mode it was opened in.
func NewWithOptions[T any](client platform.Client, source any, opts NewOptions) (*T, error) {
	var zero T
	info, err := infoForType(reflect.TypeOf(zero))
	if err != nil {
		return nil, err
	}
	if info.Kind != TypeKindRecord {
		return nil, fmt.Errorf("rec: %s is a line type, not a record type", info.GoType.Name())
	}

	var handle platform.Record
	switch src := source.(type) {
	case nil:
		if client == nil {
			return nil, fmt.Errorf("rec: creating a %s record requires a client", info.RecordType)
		}
		handle, err = client.Create(info.RecordType, platform.CreateOptions{
			Dynamic:  opts.Dynamic,
			Defaults: opts.Defaults,
		})
	case platform.Record:
		handle = src
	default:
		if !isNumericSource(source) {
			return nil, &InvalidArgumentError{Value: source, Context: "source"}
		}
		if client == nil {
			return nil, fmt.Errorf("rec: loading a %s record requires a client", info.RecordType)
		}
		handle, err = client.Load(info.RecordType, source, platform.LoadOptions{
			Dynamic:  opts.Dynamic,
			Defaults: opts.Defaults,
		})
	}
	if err != nil {
		return nil, err
	}

	out := new(T)
	base := baseRecordOf(out)
	if base == nil {
		return nil, fmt.Errorf("rec: %s does not embed BaseRecord", info.GoType.Name())
	}
	base.init(handle, client, info)
	return out, nil
}

// init assigns the external reference; it runs exactly once per instance.
func (r *BaseRecord) init(handle platform.Record, client platform.Client, info *TypeInfo) {
	r.handle = handle
	r.client = client
	r.info = info
	r.useDynamicAPI = true
	r.sublists = make(map[string]*Sublist)
	// A null identifier on an unsaved handle is not an error; the local
	// identifier simply stays unset.
	if handle != nil && handle.ID() != nil {
		r.id = handle.ID()
	}
}

// ID returns the captured internal identifier, nil until the record has
// been persisted.
func (r *BaseRecord) ID() any { return r.id }

// RecordType returns the record-type discriminator declared by the type.
func (r *BaseRecord) RecordType() string { return r.info.RecordType }

// Handle returns the underlying platform handle.
func (r *BaseRecord) Handle() platform.Record { return r.handle }

// UseDynamicModeAPI reports whether dynamic-style platform calls may be
// issued for this record.
func (r *BaseRecord) UseDynamicModeAPI() bool { return r.useDynamicAPI }

// SetUseDynamicModeAPI toggles dynamic API usage for the record and every
// sublist container already materialized from it.
func (r *BaseRecord) SetUseDynamicModeAPI(use bool) {
	r.useDynamicAPI = use
	for _, s := range r.sublists {
		s.SetUseDynamicModeAPI(use)
	}
}

// GetValue reads a declared property. The reserved names "id" and "type"
// are answered from local state and never reach the platform; every other
// name is forwarded without local validation.
func (r *BaseRecord) GetValue(name string) (any, error) {
	switch name {
	case "id":
		return r.id, nil
	case "type":
		return r.info.RecordType, nil
	}
	b := r.info.resolve(name)
	return getFieldValue(r.bodyTarget(), b.FieldID, b.Kind == KindText)
}

// GetText reads a declared property's text representation. The reserved
// names "id" and "type" are answered from local state.
func (r *BaseRecord) GetText(name string) (string, error) {
	switch name {
	case "id":
		if r.id == nil {
			return "", nil
		}
		return fmt.Sprint(r.id), nil
	case "type":
		return r.info.RecordType, nil
	}
	b := r.info.resolve(name)
	v, err := getFieldValue(r.bodyTarget(), b.FieldID, true)
	if err != nil {
		return "", err
	}
	return textOf(v), nil
}

// SetValue writes a declared property. The reserved names "id" and "type"
// are rejected; numeric bindings coerce the value before writing.
func (r *BaseRecord) SetValue(name string, value any) error {
	if name == "id" || name == "type" {
		return &ReadOnlyFieldError{Name: name}
	}
	b := r.info.resolve(name)
	switch b.Kind {
	case KindText:
		return setFieldValue(r.bodyTarget(), b.FieldID, value, true)
	case KindNumeric:
		return setFieldValueNumeric(r.bodyTarget(), b.FieldID, value)
	default:
		return setFieldValue(r.bodyTarget(), b.FieldID, value, false)
	}
}

// SetText writes a declared property's text representation. The reserved
// names "id" and "type" are rejected.
func (r *BaseRecord) SetText(name string, text string) error {
	if name == "id" || name == "type" {
		return &ReadOnlyFieldError{Name: name}
	}
	b := r.info.resolve(name)
	return setFieldValue(r.bodyTarget(), b.FieldID, text, true)
}

// GetField returns platform field metadata for a declared property name.
// The name is resolved to its field id locally but never validated.
func (r *BaseRecord) GetField(name string) (*platform.Field, error) {
	b := r.info.resolve(name)
	return r.handle.GetField(b.FieldID)
}

// Save persists the record. It fails with NotSavableError when the adopted
// handle is transient. On success the local identifier is updated from the
// returned value and returned to the caller.
func (r *BaseRecord) Save(enableSourcing, ignoreMandatoryFields bool) (any, error) {
	if r.handle == nil || !r.handle.IsPersistable() {
		return nil, &NotSavableError{RecordType: r.info.RecordType}
	}
	id, err := r.handle.Save(enableSourcing, ignoreMandatoryFields)
	if err != nil {
		return nil, err
	}
	r.id = id
	return id, nil
}

// Sublist returns the container for a declared sublist binding, building it
// on first access and memoizing it for the instance lifetime: repeated
// access yields the identical container.
func (r *BaseRecord) Sublist(name string) (*Sublist, error) {
	if s, ok := r.sublists[name]; ok {
		return s, nil
	}
	b, ok := r.info.Binding(name)
	if !ok || b.Kind != KindSublist {
		return nil, &UnknownSublistError{RecordType: r.info.RecordType, Name: name}
	}
	s, err := newSublist(r.handle, b.SublistID, b.ElemType, r.useDynamicAPI)
	if err != nil {
		return nil, err
	}
	r.sublists[name] = s
	return s, nil
}

func (r *BaseRecord) bodyTarget() target {
	return target{handle: r.handle, useDynamicAPI: r.useDynamicAPI}
}

func (r *BaseRecord) typeInfo() *TypeInfo { return r.info }

func (r *BaseRecord) subrecordHandle(name string) (platform.Record, error) {
	b := r.info.resolve(name)
	return r.handle.GetSubrecord(b.FieldID)
}

// Subrecord wraps a declared subrecord property of the owning entity in a
// typed record entity of type S. Subrecord properties are read-only; every
// call builds a fresh wrapper around the platform's subrecord handle.
func Subrecord[S any](owner Entity, name string) (*S, error) {
	h, err := owner.subrecordHandle(name)
	if err != nil {
		return nil, err
	}
	return New[S](nil, h)
}

// baseRecordOf finds the embedded BaseRecord in a record struct pointer.
func baseRecordOf(out any) *BaseRecord {
	v := reflect.ValueOf(out).Elem()
	for i := 0; i < v.NumField(); i++ {
		fv := v.Field(i)
		if !fv.CanAddr() {
			continue
		}
		if base, ok := fv.Addr().Interface().(*BaseRecord); ok {
			return base
		}
	}
	return nil
}
