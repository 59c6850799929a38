// Package rec provides the sublist line wrapper.
package rec

import (
	"reflect"

	"github.com/netlark/go-recdal/platform"
)

// LineEntity is the access surface of one materialized sublist line.
type LineEntity interface {
	Entity
	// Index returns the zero-based line index, stable for the entity's
	// lifetime.
	Index() int
	// SublistID returns the owning sublist identifier.
	SublistID() string
	// ToDict returns the line's enumerable field view.
	ToDict() (map[string]any, error)
}

// BaseLine is the embeddable base for all Go structs mapping to sublist
// lines. Its identity — sublist id, record handle, and line index — is set
// once at construction by the owning Sublist and never changes.
//
// A line entity goes stale when its container rebuilds; callers must not
// retain line entities across mutating container operations.
type BaseLine struct {
	handle        platform.Record
	info          *TypeInfo
	sublistID     string
	index         int
	useDynamicAPI bool

	// IgnoreFieldChange suppresses the platform's field-change event on
	// dynamic-mode writes from this line.
	IgnoreFieldChange bool
	// ForceSyncSourcing forces synchronous dependent-field sourcing on
	// dynamic-mode writes from this line.
	ForceSyncSourcing bool
}

func (l *BaseLine) init(handle platform.Record, info *TypeInfo, sublistID string, index int, useDynamicAPI bool) {
	l.handle = handle
	l.info = info
	l.sublistID = sublistID
	l.index = index
	l.useDynamicAPI = useDynamicAPI
}

// Index returns the zero-based line index.
func (l *BaseLine) Index() int { return l.index }

// SublistID returns the owning sublist identifier.
func (l *BaseLine) SublistID() string { return l.sublistID }

// GetValue reads a declared line property.
func (l *BaseLine) GetValue(name string) (any, error) {
	b := l.info.resolve(name)
	return getFieldValue(l.lineTarget(), b.FieldID, b.Kind == KindText)
}

// GetText reads a declared line property's text representation.
func (l *BaseLine) GetText(name string) (string, error) {
	b := l.info.resolve(name)
	v, err := getFieldValue(l.lineTarget(), b.FieldID, true)
	if err != nil {
		return "", err
	}
	return textOf(v), nil
}

// SetValue writes a declared line property; numeric bindings coerce the
// value before writing.
func (l *BaseLine) SetValue(name string, value any) error {
	b := l.info.resolve(name)
	switch b.Kind {
	case KindText:
		return setFieldValue(l.lineTarget(), b.FieldID, value, true)
	case KindNumeric:
		return setFieldValueNumeric(l.lineTarget(), b.FieldID, value)
	default:
		return setFieldValue(l.lineTarget(), b.FieldID, value, false)
	}
}

// SetText writes a declared line property's text representation.
func (l *BaseLine) SetText(name string, text string) error {
	b := l.info.resolve(name)
	return setFieldValue(l.lineTarget(), b.FieldID, text, true)
}

// GetField returns platform field metadata for a declared line property.
func (l *BaseLine) GetField(name string) (*platform.Field, error) {
	b := l.info.resolve(name)
	return l.handle.GetSublistField(l.sublistID, b.FieldID, l.index)
}

func (l *BaseLine) lineTarget() target {
	return target{
		handle:    l.handle,
		sublistID: l.sublistID,
		line:      l.index,
		opts: platform.ChangeOptions{
			IgnoreFieldChange: l.IgnoreFieldChange,
			ForceSyncSourcing: l.ForceSyncSourcing,
		},
		useDynamicAPI: l.useDynamicAPI,
	}
}

func (l *BaseLine) typeInfo() *TypeInfo { return l.info }

// subrecordHandle retrieves the platform subrecord for a line field. In
// dynamic mode the line is selected first and the "current" subrecord is
// asked for; in standard mode the line-addressed call is used.
func (l *BaseLine) subrecordHandle(name string) (platform.Record, error) {
	b := l.info.resolve(name)
	t := l.lineTarget()
	if t.mode() == modeDynamic {
		if err := t.selectOwnLine(); err != nil {
			return nil, err
		}
		return l.handle.GetCurrentSublistSubrecord(l.sublistID, b.FieldID)
	}
	return l.handle.GetSublistSubrecord(l.sublistID, b.FieldID, l.index)
}

// baseLineOf finds the embedded BaseLine in a line struct value.
func baseLineOf(v reflect.Value) *BaseLine {
	for i := 0; i < v.NumField(); i++ {
		fv := v.Field(i)
		if !fv.CanAddr() {
			continue
		}
		if base, ok := fv.Addr().Interface().(*BaseLine); ok {
			return base
		}
	}
	return nil
}
