// Package rec provides reflection-based mapping between Go types and ERP
// record fields.
package rec

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeKind specifies whether a mapped Go struct represents a top-level
// record or a sublist line.
type TypeKind int

const (
	// TypeKindRecord represents a top-level business record.
	TypeKindRecord TypeKind = iota
	// TypeKindLine represents one line of a repeating sublist.
	TypeKindLine
)

// BindingKind is the access behavior a declared property resolves to.
type BindingKind int

const (
	// KindValue is a plain value field.
	KindValue BindingKind = iota
	// KindText is a text-mode field (name-suffix convention or explicit tag).
	KindText
	// KindNumeric is a value field whose writes are coerced to a number.
	KindNumeric
	// KindSubrecord is a nested single record, read-only.
	KindSubrecord
	// KindSublist is a repeating line collection, read-only.
	KindSublist
)

// BindingInfo describes how one declared property maps onto the platform
// field API.
type BindingInfo struct {
	// Tag is the parsed 'rec' struct tag.
	Tag FieldTag
	// Name is the declared property name.
	Name string
	// Kind selects the access behavior.
	Kind BindingKind
	// FieldID is the platform field id targeted by value/text/numeric and
	// subrecord bindings.
	FieldID string
	// SublistID is the platform sublist id for sublist bindings.
	SublistID string
	// FieldName is the Go struct field name.
	FieldName string
	// FieldIndex is the field's index in the Go struct.
	FieldIndex int
	// FieldType is the Go field type.
	FieldType reflect.Type
	// ElemType is the line struct type for sublists and the record struct
	// type for subrecords.
	ElemType reflect.Type
}

// TypeInfo is the descriptor table for one mapped Go type, built once at
// registration (or first use) and consulted by every property access.
type TypeInfo struct {
	// GoType is the mapped Go struct type.
	GoType reflect.Type
	// Kind indicates record vs sublist line.
	Kind TypeKind
	// RecordType is the record-type discriminator (records only).
	RecordType string
	// Bindings lists the declared properties in struct order.
	Bindings []BindingInfo
	byName   map[string]*BindingInfo
}

// Binding retrieves a declared binding by property name or Go field name.
func (ti *TypeInfo) Binding(name string) (BindingInfo, bool) {
	if b, ok := ti.byName[name]; ok {
		return *b, true
	}
	return BindingInfo{}, false
}

// resolve returns the binding for a property name, synthesizing one by the
// name-suffix convention for names that were never declared. Undeclared
// names are forwarded to the platform without local validation.
func (ti *TypeInfo) resolve(name string) BindingInfo {
	if b, ok := ti.byName[name]; ok {
		return *b
	}
	if id, ok := textFieldID(name); ok {
		return BindingInfo{Name: name, Kind: KindText, FieldID: id}
	}
	return BindingInfo{Name: name, Kind: KindValue, FieldID: name}
}

// ExtractTypeInfo analyzes a Go struct type and builds its descriptor table.
// The struct must embed BaseRecord or BaseLine.
func ExtractTypeInfo(t reflect.Type) (*TypeInfo, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct, got %s", t.Kind())
	}

	info := &TypeInfo{
		GoType:     t,
		RecordType: strings.ToLower(t.Name()),
		byName:     make(map[string]*BindingInfo),
	}

	kind, err := detectTypeKind(t)
	if err != nil {
		return nil, err
	}
	info.Kind = kind

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tagStr := field.Tag.Get("rec")

		// The record-type override rides on the embedded base field.
		if field.Anonymous {
			if tagStr != "" {
				tag, err := ParseTag(tagStr)
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", field.Name, err)
				}
				if tag.TypeName != "" {
					info.RecordType = tag.TypeName
				}
			}
			continue
		}

		if !field.IsExported() || tagStr == "" || tagStr == "-" {
			continue
		}

		tag, err := ParseTag(tagStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if tag.Skip {
			continue
		}

		b, err := buildBindingInfo(field, i, tag)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		info.Bindings = append(info.Bindings, b)
	}

	for i := range info.Bindings {
		b := &info.Bindings[i]
		info.byName[b.Name] = b
		info.byName[b.FieldName] = b
	}

	return info, nil
}

func detectTypeKind(t reflect.Type) (TypeKind, error) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		switch field.Type {
		case reflect.TypeOf(BaseRecord{}):
			return TypeKindRecord, nil
		case reflect.TypeOf(BaseLine{}):
			return TypeKindLine, nil
		}
	}
	return 0, fmt.Errorf("type %s must embed BaseRecord or BaseLine", t.Name())
}

func buildBindingInfo(field reflect.StructField, index int, tag FieldTag) (BindingInfo, error) {
	name := tag.Name
	if name == "" {
		name = strings.ToLower(field.Name)
	}

	b := BindingInfo{
		Tag:        tag,
		Name:       name,
		FieldID:    name,
		FieldName:  field.Name,
		FieldIndex: index,
		FieldType:  field.Type,
	}
	if tag.FieldID != "" {
		b.FieldID = tag.FieldID
	}

	switch {
	case tag.Sublist:
		b.Kind = KindSublist
		b.SublistID = b.FieldID
		ft := field.Type
		if ft.Kind() != reflect.Slice || ft.Elem().Kind() != reflect.Struct {
			return BindingInfo{}, fmt.Errorf("sublist binding requires a slice of line structs, got %s", ft)
		}
		b.ElemType = ft.Elem()

	case tag.Subrecord:
		b.Kind = KindSubrecord
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			return BindingInfo{}, fmt.Errorf("subrecord binding requires a struct or struct pointer, got %s", field.Type)
		}
		b.ElemType = ft

	case tag.Text:
		b.Kind = KindText
		if tag.FieldID == "" {
			if id, ok := textFieldID(name); ok {
				b.FieldID = id
			}
		}

	default:
		if id, ok := textFieldID(name); ok && tag.FieldID == "" && !tag.Numeric && !tag.Value {
			b.Kind = KindText
			b.FieldID = id
			break
		}
		if tag.Numeric || (!tag.Value && isNumericKind(field.Type.Kind())) {
			b.Kind = KindNumeric
			break
		}
		b.Kind = KindValue
	}

	return b, nil
}

// textFieldID applies the name-suffix convention: a property name ending in
// "Text" addresses the text representation of the suffix-stripped field.
func textFieldID(name string) (string, bool) {
	if strings.HasSuffix(name, "Text") && len(name) > len("Text") {
		return strings.TrimSuffix(name, "Text"), true
	}
	return "", false
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
