// Package rec provides parsing and representation of 'rec' struct tags.
package rec

import (
	"fmt"
	"strings"
)

// FieldTag is the structured form of a parsed `rec` struct tag.
//
// The first comma-separated part is the property name, which doubles as the
// platform field id (for sublist bindings, the sublist id). Options:
//
//	text       force text-mode access (implied by a name ending in "Text")
//	numeric    coerce written values to a number
//	value      force plain value access even on a numeric Go field
//	subrecord  nested single record, read-only
//	sublist    repeating line collection, read-only
//	field:x    override the platform field id
//	type:x     override the record type (on the embedded base field)
//	-          ignore the field
type FieldTag struct {
	// Name is the declared property name.
	Name string
	// Text forces text-mode access.
	Text bool
	// Numeric forces numeric write coercion.
	Numeric bool
	// Value forces plain value access.
	Value bool
	// Subrecord marks a nested subrecord binding.
	Subrecord bool
	// Sublist marks a repeating sublist binding.
	Sublist bool
	// FieldID overrides the platform field id derived from Name.
	FieldID string
	// TypeName overrides the record type for the declaring struct.
	TypeName string
	// Skip indicates the field should be ignored.
	Skip bool
}

// ParseTag parses the content of a `rec` struct tag.
func ParseTag(tag string) (FieldTag, error) {
	if tag == "" || tag == "-" {
		return FieldTag{Skip: tag == "-"}, nil
	}

	parts := strings.Split(tag, ",")
	ft := FieldTag{}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if i == 0 && !strings.Contains(part, ":") && !isTagOption(part) {
			ft.Name = part
			continue
		}

		switch {
		case part == "text":
			ft.Text = true
		case part == "numeric":
			ft.Numeric = true
		case part == "value":
			ft.Value = true
		case part == "subrecord":
			ft.Subrecord = true
		case part == "sublist":
			ft.Sublist = true
		case part == "-":
			ft.Skip = true
		case strings.HasPrefix(part, "field:"):
			ft.FieldID = strings.TrimPrefix(part, "field:")
		case strings.HasPrefix(part, "type:"):
			ft.TypeName = strings.TrimPrefix(part, "type:")
		default:
			if i == 0 {
				ft.Name = part
			} else {
				return FieldTag{}, fmt.Errorf("unknown tag option: %q", part)
			}
		}
	}

	if ft.Text && ft.Numeric {
		return FieldTag{}, fmt.Errorf("tag %q: text and numeric are mutually exclusive", tag)
	}
	if ft.Sublist && ft.Subrecord {
		return FieldTag{}, fmt.Errorf("tag %q: sublist and subrecord are mutually exclusive", tag)
	}

	return ft, nil
}

func isTagOption(s string) bool {
	switch s {
	case "text", "numeric", "value", "subrecord", "sublist", "-":
		return true
	}
	return false
}
