// Package rec provides the sublist container with line virtualization.
package rec

import (
	"fmt"
	"reflect"

	"github.com/netlark/go-recdal/platform"
)

// Sublist virtualizes one repeating sublist of a record as an ordered
// sequence of typed line entities. The container rebuilds — wholesale
// replacement of every materialized line — after any structural mutation,
// keeping the materialized view consistent with the external line count.
//
// On a dynamic-mode record the container additionally holds one phantom
// entity at index Count(): the in-progress uncommitted row. The phantom is
// reachable through Line but never appears in Lines or in serialized views.
type Sublist struct {
	handle        platform.Record
	sublistID     string
	lineType      reflect.Type
	lineInfo      *TypeInfo
	useDynamicAPI bool

	committed []LineEntity
	pending   LineEntity
}

func newSublist(handle platform.Record, sublistID string, lineType reflect.Type, useDynamicAPI bool) (*Sublist, error) {
	lineInfo, err := infoForType(lineType)
	if err != nil {
		return nil, err
	}
	if lineInfo.Kind != TypeKindLine {
		return nil, fmt.Errorf("rec: sublist %q line type %s must embed BaseLine", sublistID, lineType.Name())
	}
	s := &Sublist{
		handle:        handle,
		sublistID:     sublistID,
		lineType:      lineType,
		lineInfo:      lineInfo,
		useDynamicAPI: useDynamicAPI,
	}
	s.rebuild()
	return s, nil
}

// ID returns the bound sublist identifier.
func (s *Sublist) ID() string { return s.sublistID }

// Count returns the live external line count. It is re-queried on every
// call rather than cached.
func (s *Sublist) Count() int {
	return s.handle.LineCount(s.sublistID)
}

// Len returns the number of lines materialized at the last rebuild.
func (s *Sublist) Len() int { return len(s.committed) }

// Lines returns the committed, enumerable view. The phantom uncommitted
// line is never included.
func (s *Sublist) Lines() []LineEntity { return s.committed }

// Line returns the entity at a line index. In dynamic mode the index equal
// to Count() addresses the phantom uncommitted line. Out-of-range indexes
// return nil.
func (s *Sublist) Line(index int) LineEntity {
	if index >= 0 && index < len(s.committed) {
		return s.committed[index]
	}
	if s.pending != nil && index == len(s.committed) {
		return s.pending
	}
	return nil
}

// AddLine appends a line, with recalculation suppressed, and returns its
// entity.
func (s *Sublist) AddLine() (LineEntity, error) {
	return s.InsertLine(s.Count(), true)
}

// InsertLine adds a line at the given index. In dynamic mode insertion is
// append-only: the call delegates to the platform's select-new-line and
// returns the phantom entity; the index is ignored beyond the bounds check.
// In standard mode the line is inserted at the index and the container
// rebuilds, returning the entity now at that index.
func (s *Sublist) InsertLine(at int, ignoreRecalc bool) (LineEntity, error) {
	count := s.Count()
	if at > count {
		return nil, &IndexOutOfRangeError{SublistID: s.sublistID, Index: at, Length: count}
	}

	if s.mode() == modeDynamic {
		if err := s.handle.SelectNewLine(s.sublistID); err != nil {
			return nil, err
		}
		return s.pending, nil
	}

	if err := s.handle.InsertLine(s.sublistID, at, ignoreRecalc); err != nil {
		return nil, err
	}
	s.rebuild()
	return s.committed[at], nil
}

// RemoveLine removes the line at the given index and rebuilds.
func (s *Sublist) RemoveLine(index int, ignoreRecalc bool) error {
	if err := s.handle.RemoveLine(s.sublistID, index, ignoreRecalc); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

// RemoveAllLines removes every line, highest index first so the remaining
// indices stay stable during the loop, then rebuilds once.
func (s *Sublist) RemoveAllLines() error {
	for count := s.Count(); count > 0; count = s.Count() {
		if err := s.handle.RemoveLine(s.sublistID, count-1, true); err != nil {
			return err
		}
	}
	s.rebuild()
	return nil
}

// CommitLine commits the current (uncommitted) line and rebuilds. It is
// only valid when the effective mode is dynamic.
func (s *Sublist) CommitLine() error {
	if s.mode() != modeDynamic {
		return &InvalidModeOperationError{Operation: "commit line", SublistID: s.sublistID}
	}
	if err := s.handle.CommitLine(s.sublistID); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

// SelectLine makes the line at the given index current. Bounds errors
// surface from the platform; no local validation is performed.
func (s *Sublist) SelectLine(index int) error {
	return s.handle.SelectLine(s.sublistID, index)
}

// GetField returns platform metadata for a line field, using line 0 as the
// representative row.
func (s *Sublist) GetField(fieldID string) (*platform.Field, error) {
	return s.handle.GetSublistField(s.sublistID, fieldID, 0)
}

// UseDynamicModeAPI reports whether dynamic-style platform calls may be
// issued for this container.
func (s *Sublist) UseDynamicModeAPI() bool { return s.useDynamicAPI }

// SetUseDynamicModeAPI toggles dynamic API usage and rebuilds so every
// materialized line carries the container's current flag.
func (s *Sublist) SetUseDynamicModeAPI(use bool) {
	s.useDynamicAPI = use
	s.rebuild()
}

func (s *Sublist) mode() accessMode {
	if s.useDynamicAPI && s.handle.IsDynamic() {
		return modeDynamic
	}
	return modeStandard
}

// rebuild re-materializes every line entity from the external line count.
// No entity survives a rebuild; on a dynamic record a fresh phantom entity
// is installed at the committed count.
func (s *Sublist) rebuild() {
	n := s.Count()
	s.committed = make([]LineEntity, n)
	for i := 0; i < n; i++ {
		s.committed[i] = s.newLine(i)
	}
	if s.handle.IsDynamic() {
		s.pending = s.newLine(n)
	} else {
		s.pending = nil
	}
}

func (s *Sublist) newLine(index int) LineEntity {
	v := reflect.New(s.lineType)
	base := baseLineOf(v.Elem())
	base.init(s.handle, s.lineInfo, s.sublistID, index, s.useDynamicAPI)
	return v.Interface().(LineEntity)
}

// LineAt returns the line entity at an index as the concrete line type L.
func LineAt[L any](s *Sublist, index int) (*L, error) {
	entity := s.Line(index)
	if entity == nil {
		return nil, &IndexOutOfRangeError{SublistID: s.sublistID, Index: index, Length: len(s.committed)}
	}
	line, ok := any(entity).(*L)
	if !ok {
		return nil, fmt.Errorf("rec: sublist %q holds %T, not %T", s.sublistID, entity, (*L)(nil))
	}
	return line, nil
}
