package rec

import (
	gojson "github.com/goccy/go-json"
)

// ToDict returns the record's enumerable field view as a map keyed by
// property name, including the reserved "id" and "type" entries.
//
// Two platform quirks are mirrored here: text bindings are suppressed until
// the record has been saved (text resolution is undefined on unsaved
// records), and sublists serialize their committed lines only — the phantom
// uncommitted line never appears. Subrecord bindings are built on demand
// and are not part of the serialized view.
func (r *BaseRecord) ToDict() (map[string]any, error) {
	d := map[string]any{
		"id":   r.id,
		"type": r.info.RecordType,
	}
	for _, b := range r.info.Bindings {
		switch b.Kind {
		case KindValue, KindNumeric:
			v, err := r.GetValue(b.Name)
			if err != nil {
				return nil, err
			}
			d[b.Name] = v
		case KindText:
			if r.id == nil {
				continue
			}
			s, err := r.GetText(b.Name)
			if err != nil {
				return nil, err
			}
			d[b.Name] = s
		case KindSublist:
			sub, err := r.Sublist(b.Name)
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]any, 0, sub.Len())
			for _, line := range sub.Lines() {
				row, err := line.ToDict()
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
			d[b.Name] = rows
		}
	}
	return d, nil
}

// ToDict returns the line's enumerable field view as a map keyed by
// property name. Text bindings follow the same suppressed-until-saved rule
// as record bodies; subrecord bindings are excluded.
func (l *BaseLine) ToDict() (map[string]any, error) {
	d := make(map[string]any, len(l.info.Bindings))
	for _, b := range l.info.Bindings {
		switch b.Kind {
		case KindValue, KindNumeric:
			v, err := l.GetValue(b.Name)
			if err != nil {
				return nil, err
			}
			d[b.Name] = v
		case KindText:
			if l.handle.ID() == nil {
				continue
			}
			s, err := l.GetText(b.Name)
			if err != nil {
				return nil, err
			}
			d[b.Name] = s
		}
	}
	return d, nil
}

// ToJSON encodes an entity's enumerable view as JSON.
func ToJSON(e interface {
	ToDict() (map[string]any, error)
}) ([]byte, error) {
	d, err := e.ToDict()
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(d)
}
