package memclient

import (
	"fmt"

	"github.com/netlark/go-recdal/platform"
)

// Rec is an in-memory platform.Record handle. Every boundary call is logged
// on the owning client, which the package tests use to assert exactly which
// external operations an access path issued.
type Rec struct {
	client *Client
	st     *state
}

var _ platform.Record = (*Rec)(nil)

// ID returns the internal identifier, nil until the record is saved.
func (r *Rec) ID() any { return r.st.id }

// Type returns the record-type discriminator.
func (r *Rec) Type() string { return r.st.typ }

// IsDynamic reports whether the handle was opened in dynamic mode.
func (r *Rec) IsDynamic() bool { return r.st.dynamic }

// IsPersistable reports whether Save is supported on this handle.
func (r *Rec) IsPersistable() bool { return r.st.persistable }

// Save assigns an identifier on first save and writes the record state into
// the client store.
func (r *Rec) Save(enableSourcing, ignoreMandatoryFields bool) (any, error) {
	r.client.log("Save(%s,sourcing=%v,ignoreMandatory=%v)", r.st.typ, enableSourcing, ignoreMandatoryFields)
	if !r.st.persistable {
		return nil, platform.ErrNotPersistable
	}
	if r.st.id == nil {
		r.st.id = r.client.nextID
		r.client.nextID++
	}
	r.client.store[storeKey(r.st.typ, r.st.id)] = r.st.clone()
	return r.st.id, nil
}

// --- body fields ---

func (r *Rec) GetValue(fieldID string) (any, error) {
	r.client.log("GetValue(%s)", fieldID)
	return r.st.values[fieldID], nil
}

// GetText returns the explicit text representation when one was set,
// otherwise the printed form of the value.
func (r *Rec) GetText(fieldID string) (string, error) {
	r.client.log("GetText(%s)", fieldID)
	if t, ok := r.st.texts[fieldID]; ok {
		return t, nil
	}
	if v, ok := r.st.values[fieldID]; ok && v != nil {
		return fmt.Sprint(v), nil
	}
	return "", nil
}

func (r *Rec) SetValue(fieldID string, value any) error {
	r.client.log("SetValue(%s,%v)", fieldID, value)
	r.st.values[fieldID] = value
	delete(r.st.texts, fieldID)
	return nil
}

// SetText records the text and makes it the field value, the way text entry
// behaves on the platform.
func (r *Rec) SetText(fieldID string, text string) error {
	r.client.log("SetText(%s,%s)", fieldID, text)
	r.st.texts[fieldID] = text
	r.st.values[fieldID] = text
	return nil
}

// --- standard-mode line fields ---

func (r *Rec) GetSublistValue(sublistID, fieldID string, line int) (any, error) {
	r.client.log("GetSublistValue(%s,%s,%d)", sublistID, fieldID, line)
	ln, err := r.lineAt(sublistID, line)
	if err != nil {
		return nil, err
	}
	return ln.values[fieldID], nil
}

func (r *Rec) GetSublistText(sublistID, fieldID string, line int) (string, error) {
	r.client.log("GetSublistText(%s,%s,%d)", sublistID, fieldID, line)
	ln, err := r.lineAt(sublistID, line)
	if err != nil {
		return "", err
	}
	return lineText(ln, fieldID), nil
}

func (r *Rec) SetSublistValue(sublistID, fieldID string, line int, value any) error {
	r.client.log("SetSublistValue(%s,%s,%d,%v)", sublistID, fieldID, line, value)
	ln, err := r.lineAt(sublistID, line)
	if err != nil {
		return err
	}
	ln.values[fieldID] = value
	delete(ln.texts, fieldID)
	return nil
}

func (r *Rec) SetSublistText(sublistID, fieldID string, line int, text string) error {
	r.client.log("SetSublistText(%s,%s,%d,%s)", sublistID, fieldID, line, text)
	ln, err := r.lineAt(sublistID, line)
	if err != nil {
		return err
	}
	ln.texts[fieldID] = text
	ln.values[fieldID] = text
	return nil
}

// --- dynamic-mode current-line fields ---

func (r *Rec) GetCurrentSublistValue(sublistID, fieldID string) (any, error) {
	r.client.log("GetCurrentSublistValue(%s,%s)", sublistID, fieldID)
	ln, err := r.currentLine(sublistID)
	if err != nil {
		return nil, err
	}
	return ln.values[fieldID], nil
}

func (r *Rec) GetCurrentSublistText(sublistID, fieldID string) (string, error) {
	r.client.log("GetCurrentSublistText(%s,%s)", sublistID, fieldID)
	ln, err := r.currentLine(sublistID)
	if err != nil {
		return "", err
	}
	return lineText(ln, fieldID), nil
}

func (r *Rec) SetCurrentSublistValue(sublistID, fieldID string, value any, opts platform.ChangeOptions) error {
	r.client.log("SetCurrentSublistValue(%s,%s,%v,ignoreFieldChange=%v,forceSyncSourcing=%v)",
		sublistID, fieldID, value, opts.IgnoreFieldChange, opts.ForceSyncSourcing)
	ln, err := r.currentLine(sublistID)
	if err != nil {
		return err
	}
	ln.values[fieldID] = value
	delete(ln.texts, fieldID)
	return nil
}

func (r *Rec) SetCurrentSublistText(sublistID, fieldID string, text string, opts platform.ChangeOptions) error {
	r.client.log("SetCurrentSublistText(%s,%s,%s,ignoreFieldChange=%v,forceSyncSourcing=%v)",
		sublistID, fieldID, text, opts.IgnoreFieldChange, opts.ForceSyncSourcing)
	ln, err := r.currentLine(sublistID)
	if err != nil {
		return err
	}
	ln.texts[fieldID] = text
	ln.values[fieldID] = text
	return nil
}

// --- line selection and lifecycle ---

func (r *Rec) SelectLine(sublistID string, line int) error {
	r.client.log("SelectLine(%s,%d)", sublistID, line)
	if !r.st.dynamic {
		return platform.ErrNotDynamic
	}
	s := r.st.sub(sublistID)
	if line < 0 || line >= len(s.lines) {
		return fmt.Errorf("%w: %s line %d of %d", platform.ErrLineOutOfBounds, sublistID, line, len(s.lines))
	}
	s.current = s.lines[line]
	s.currentIdx = line
	return nil
}

func (r *Rec) SelectNewLine(sublistID string) error {
	r.client.log("SelectNewLine(%s)", sublistID)
	if !r.st.dynamic {
		return platform.ErrNotDynamic
	}
	s := r.st.sub(sublistID)
	s.current = newLineState()
	s.currentIdx = -1
	return nil
}

// CommitLine appends the current line when it is new, or leaves a selected
// committed line in place, then clears the selection.
func (r *Rec) CommitLine(sublistID string) error {
	r.client.log("CommitLine(%s)", sublistID)
	if !r.st.dynamic {
		return platform.ErrNotDynamic
	}
	s := r.st.sub(sublistID)
	if s.current == nil {
		return platform.ErrNoCurrentLine
	}
	if s.currentIdx == -1 {
		s.lines = append(s.lines, s.current)
	}
	s.current = nil
	s.currentIdx = -1
	return nil
}

func (r *Rec) LineCount(sublistID string) int {
	r.client.log("LineCount(%s)", sublistID)
	s, ok := r.st.sublists[sublistID]
	if !ok {
		return 0
	}
	return len(s.lines)
}

func (r *Rec) InsertLine(sublistID string, line int, ignoreRecalc bool) error {
	r.client.log("InsertLine(%s,%d,ignoreRecalc=%v)", sublistID, line, ignoreRecalc)
	s := r.st.sub(sublistID)
	if line < 0 || line > len(s.lines) {
		return fmt.Errorf("%w: %s line %d of %d", platform.ErrLineOutOfBounds, sublistID, line, len(s.lines))
	}
	s.lines = append(s.lines, nil)
	copy(s.lines[line+1:], s.lines[line:])
	s.lines[line] = newLineState()
	return nil
}

func (r *Rec) RemoveLine(sublistID string, line int, ignoreRecalc bool) error {
	r.client.log("RemoveLine(%s,%d,ignoreRecalc=%v)", sublistID, line, ignoreRecalc)
	s := r.st.sub(sublistID)
	if line < 0 || line >= len(s.lines) {
		return fmt.Errorf("%w: %s line %d of %d", platform.ErrLineOutOfBounds, sublistID, line, len(s.lines))
	}
	s.lines = append(s.lines[:line], s.lines[line+1:]...)
	return nil
}

// --- subrecords ---

func (r *Rec) GetSubrecord(fieldID string) (platform.Record, error) {
	r.client.log("GetSubrecord(%s)", fieldID)
	return &Rec{client: r.client, st: r.subState(r.st.subrecords, fieldID)}, nil
}

func (r *Rec) GetSublistSubrecord(sublistID, fieldID string, line int) (platform.Record, error) {
	r.client.log("GetSublistSubrecord(%s,%s,%d)", sublistID, fieldID, line)
	ln, err := r.lineAt(sublistID, line)
	if err != nil {
		return nil, err
	}
	return &Rec{client: r.client, st: r.subState(ln.subrecords, fieldID)}, nil
}

func (r *Rec) GetCurrentSublistSubrecord(sublistID, fieldID string) (platform.Record, error) {
	r.client.log("GetCurrentSublistSubrecord(%s,%s)", sublistID, fieldID)
	ln, err := r.currentLine(sublistID)
	if err != nil {
		return nil, err
	}
	return &Rec{client: r.client, st: r.subState(ln.subrecords, fieldID)}, nil
}

// --- metadata ---

func (r *Rec) GetField(fieldID string) (*platform.Field, error) {
	r.client.log("GetField(%s)", fieldID)
	if m, ok := r.client.fields[r.st.typ]; ok {
		if f, ok := m[fieldID]; ok {
			return &f, nil
		}
	}
	return &platform.Field{ID: fieldID, Type: "text"}, nil
}

func (r *Rec) GetSublistField(sublistID, fieldID string, line int) (*platform.Field, error) {
	r.client.log("GetSublistField(%s,%s,%d)", sublistID, fieldID, line)
	if m, ok := r.client.sublistFields[r.st.typ+"/"+sublistID]; ok {
		if f, ok := m[fieldID]; ok {
			return &f, nil
		}
	}
	return &platform.Field{ID: fieldID, Type: "text"}, nil
}

// Snapshot exports the record's committed state. The current-line buffer is
// deliberately excluded.
func (r *Rec) Snapshot() *platform.Snapshot {
	snap := &platform.Snapshot{
		Type:     r.st.typ,
		ID:       r.st.id,
		Dynamic:  r.st.dynamic,
		Fields:   make(map[string]any, len(r.st.values)),
		Texts:    make(map[string]string, len(r.st.texts)),
		Sublists: make(map[string][]platform.SnapshotLine),
	}
	for k, v := range r.st.values {
		snap.Fields[k] = v
	}
	for k, v := range r.st.texts {
		snap.Texts[k] = v
	}
	for id, s := range r.st.sublists {
		lines := make([]platform.SnapshotLine, 0, len(s.lines))
		for _, ln := range s.lines {
			sl := platform.SnapshotLine{
				Fields: make(map[string]any, len(ln.values)),
				Texts:  make(map[string]string, len(ln.texts)),
			}
			for k, v := range ln.values {
				sl.Fields[k] = v
			}
			for k, v := range ln.texts {
				sl.Texts[k] = v
			}
			lines = append(lines, sl)
		}
		snap.Sublists[id] = lines
	}
	return snap
}

// --- helpers ---

func (r *Rec) lineAt(sublistID string, line int) (*lineState, error) {
	s, ok := r.st.sublists[sublistID]
	if !ok || line < 0 || line >= len(s.lines) {
		n := 0
		if ok {
			n = len(s.lines)
		}
		return nil, fmt.Errorf("%w: %s line %d of %d", platform.ErrLineOutOfBounds, sublistID, line, n)
	}
	return s.lines[line], nil
}

func (r *Rec) currentLine(sublistID string) (*lineState, error) {
	if !r.st.dynamic {
		return nil, platform.ErrNotDynamic
	}
	s := r.st.sub(sublistID)
	if s.current == nil {
		return nil, platform.ErrNoCurrentLine
	}
	return s.current, nil
}

func (r *Rec) subState(m map[string]*state, fieldID string) *state {
	sr, ok := m[fieldID]
	if !ok {
		sr = newState(fieldID, r.st.dynamic, false)
		m[fieldID] = sr
	}
	return sr
}

func lineText(ln *lineState, fieldID string) string {
	if t, ok := ln.texts[fieldID]; ok {
		return t
	}
	if v, ok := ln.values[fieldID]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}
