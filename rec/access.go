// Package rec routes property access onto the platform field API.
package rec

import (
	"fmt"

	"github.com/netlark/go-recdal/platform"
)

// accessMode is the resolved mode for a single field operation.
type accessMode int

const (
	modeStandard accessMode = iota
	modeDynamic
)

// target identifies where one field access lands: the record body when
// sublistID is empty, otherwise a sublist line. It carries everything the
// adapter needs so the branching below stays in one place.
type target struct {
	handle        platform.Record
	sublistID     string
	line          int
	opts          platform.ChangeOptions
	useDynamicAPI bool
}

// mode resolves the effective mode once per operation. Dynamic-style calls
// are only issued when the caller left dynamic API usage enabled AND the
// handle itself is dynamic; either gate alone is not enough.
func (t target) mode() accessMode {
	if t.useDynamicAPI && t.handle.IsDynamic() {
		return modeDynamic
	}
	return modeStandard
}

// selectOwnLine makes the target's line current before a dynamic-mode call.
// The line at the committed count is the uncommitted row, which is already
// the current line and must not be re-selected.
func (t target) selectOwnLine() error {
	if t.line == t.handle.LineCount(t.sublistID) {
		return nil
	}
	return t.handle.SelectLine(t.sublistID, t.line)
}

// getFieldValue reads a field, branching on text-vs-value and on the
// resolved mode. Top-level reads use the non-line calls in either mode.
func getFieldValue(t target, fieldID string, asText bool) (any, error) {
	if t.sublistID == "" {
		if asText {
			s, err := t.handle.GetText(fieldID)
			return s, err
		}
		return t.handle.GetValue(fieldID)
	}

	if t.mode() == modeDynamic {
		if err := t.selectOwnLine(); err != nil {
			return nil, err
		}
		if asText {
			s, err := t.handle.GetCurrentSublistText(t.sublistID, fieldID)
			return s, err
		}
		return t.handle.GetCurrentSublistValue(t.sublistID, fieldID)
	}

	if asText {
		s, err := t.handle.GetSublistText(t.sublistID, fieldID, t.line)
		return s, err
	}
	return t.handle.GetSublistValue(t.sublistID, fieldID, t.line)
}

// setFieldValue writes a field, mirroring the read branching. Dynamic-mode
// line writes pass the target's change flags through; standard-mode writes
// carry only the field id, line, and value.
func setFieldValue(t target, fieldID string, value any, asText bool) error {
	if t.sublistID == "" {
		if asText {
			return t.handle.SetText(fieldID, textOf(value))
		}
		return t.handle.SetValue(fieldID, value)
	}

	if t.mode() == modeDynamic {
		if err := t.selectOwnLine(); err != nil {
			return err
		}
		if asText {
			return t.handle.SetCurrentSublistText(t.sublistID, fieldID, textOf(value), t.opts)
		}
		return t.handle.SetCurrentSublistValue(t.sublistID, fieldID, value, t.opts)
	}

	if asText {
		return t.handle.SetSublistText(t.sublistID, fieldID, t.line, textOf(value))
	}
	return t.handle.SetSublistValue(t.sublistID, fieldID, t.line, value)
}

// setFieldValueNumeric coerces the value to a number immediately before the
// write, protecting against the platform rejecting string-typed numeric
// input. Non-coercible input is an InvalidArgumentError; text writes are
// never routed here.
func setFieldValueNumeric(t target, fieldID string, value any) error {
	n, err := toNumber(value)
	if err != nil {
		return &InvalidArgumentError{Value: value, Context: "numeric field"}
	}
	return setFieldValue(t, fieldID, n, false)
}

func textOf(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
