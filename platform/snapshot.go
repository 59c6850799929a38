package platform

// Snapshot is a portable copy of one record's full state: body fields, text
// representations, and committed sublist lines. Snapshots are produced and
// consumed by platform implementations (see memclient) and persisted by the
// fixture package.
//
// Identifier values survive a msgpack round trip as int64 or string; use one
// of those types for IDs in fixtures.
type Snapshot struct {
	// Type is the record-type discriminator.
	Type string
	// ID is the internal identifier, nil for unsaved records.
	ID any
	// Dynamic records the mode the handle was opened in.
	Dynamic bool
	// Fields holds body field values keyed by field id.
	Fields map[string]any
	// Texts holds explicit text representations keyed by field id.
	Texts map[string]string
	// Sublists holds committed lines per sublist id.
	Sublists map[string][]SnapshotLine
}

// SnapshotLine is the state of one committed sublist line.
type SnapshotLine struct {
	// Fields holds line field values keyed by field id.
	Fields map[string]any
	// Texts holds explicit text representations keyed by field id.
	Texts map[string]string
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Type:    s.Type,
		ID:      s.ID,
		Dynamic: s.Dynamic,
		Fields:  cloneValues(s.Fields),
		Texts:   cloneTexts(s.Texts),
	}
	if s.Sublists != nil {
		out.Sublists = make(map[string][]SnapshotLine, len(s.Sublists))
		for id, lines := range s.Sublists {
			copied := make([]SnapshotLine, len(lines))
			for i, ln := range lines {
				copied[i] = SnapshotLine{
					Fields: cloneValues(ln.Fields),
					Texts:  cloneTexts(ln.Texts),
				}
			}
			out.Sublists[id] = copied
		}
	}
	return out
}

func cloneValues(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTexts(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
