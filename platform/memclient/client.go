// Package memclient implements the platform boundary entirely in memory.
//
// It supports both standard and dynamic mode, sublist line editing with a
// current-line buffer, nested subrecords, field catalogs for metadata, and
// snapshot export/import. It is the reference implementation used by the
// package tests and by the fixture store; it is not safe for concurrent use.
package memclient

import (
	"fmt"

	"github.com/netlark/go-recdal/platform"
)

// Client is an in-memory platform.Client. Saved records live in a store
// keyed by record type and identifier, so a record saved through one handle
// can be loaded through another.
type Client struct {
	nextID        int64
	store         map[string]*state
	fields        map[string]map[string]platform.Field
	sublistFields map[string]map[string]platform.Field
	calls         []string
}

// New returns an empty in-memory client.
func New() *Client {
	return &Client{
		nextID:        1,
		store:         make(map[string]*state),
		fields:        make(map[string]map[string]platform.Field),
		sublistFields: make(map[string]map[string]platform.Field),
	}
}

// Create opens a handle to a brand-new record of the given type.
func (c *Client) Create(recordType string, opts platform.CreateOptions) (platform.Record, error) {
	c.log("Create(%s,dynamic=%v)", recordType, opts.Dynamic)
	st := newState(recordType, opts.Dynamic, true)
	for k, v := range opts.Defaults {
		st.values[k] = v
	}
	return &Rec{client: c, st: st}, nil
}

// Load opens a handle to a previously saved record. The caller's identifier
// value is matched against stored identifiers by their printed form, so a
// numeric string finds a record saved under a numeric id.
func (c *Client) Load(recordType string, id any, opts platform.LoadOptions) (platform.Record, error) {
	c.log("Load(%s,%v,dynamic=%v)", recordType, id, opts.Dynamic)
	stored, ok := c.store[storeKey(recordType, id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s %v", platform.ErrRecordNotFound, recordType, id)
	}
	st := stored.clone()
	st.dynamic = opts.Dynamic
	for k, v := range opts.Defaults {
		if _, exists := st.values[k]; !exists {
			st.values[k] = v
		}
	}
	return &Rec{client: c, st: st}, nil
}

// NewTransientRecord returns a handle shaped like the "current record" the
// host runtime hands to scripts: fully readable and writable but refusing
// Save.
func (c *Client) NewTransientRecord(recordType string, dynamic bool) *Rec {
	return &Rec{client: c, st: newState(recordType, dynamic, false)}
}

// Restore builds a handle from a snapshot. If the snapshot carries an
// identifier the record is also placed in the store so Load can find it.
func (c *Client) Restore(snap *platform.Snapshot) (platform.Record, error) {
	if snap == nil {
		return nil, fmt.Errorf("memclient: nil snapshot")
	}
	st := stateFromSnapshot(snap)
	if st.id != nil {
		c.store[storeKey(st.typ, st.id)] = st.clone()
	}
	return &Rec{client: c, st: st}, nil
}

// DefineField registers body-field metadata for a record type, answered by
// Record.GetField.
func (c *Client) DefineField(recordType string, f platform.Field) {
	m, ok := c.fields[recordType]
	if !ok {
		m = make(map[string]platform.Field)
		c.fields[recordType] = m
	}
	m[f.ID] = f
}

// DefineSublistField registers line-field metadata for a sublist of a record
// type, answered by Record.GetSublistField.
func (c *Client) DefineSublistField(recordType, sublistID string, f platform.Field) {
	key := recordType + "/" + sublistID
	m, ok := c.sublistFields[key]
	if !ok {
		m = make(map[string]platform.Field)
		c.sublistFields[key] = m
	}
	m[f.ID] = f
}

// Calls returns the log of every boundary call made through this client and
// its record handles, in order.
func (c *Client) Calls() []string {
	return c.calls
}

// CallCount returns how many logged calls start with the given prefix,
// e.g. CallCount("RemoveLine(").
func (c *Client) CallCount(prefix string) int {
	n := 0
	for _, call := range c.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (c *Client) ResetCalls() {
	c.calls = nil
}

func (c *Client) log(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func storeKey(recordType string, id any) string {
	return recordType + "#" + fmt.Sprint(id)
}

// --- internal record state ---

type state struct {
	typ         string
	id          any
	dynamic     bool
	persistable bool
	values      map[string]any
	texts       map[string]string
	sublists    map[string]*sublistState
	subrecords  map[string]*state
}

type sublistState struct {
	lines      []*lineState
	current    *lineState
	currentIdx int // -1 when current is a new uncommitted line
}

type lineState struct {
	values     map[string]any
	texts      map[string]string
	subrecords map[string]*state
}

func newState(recordType string, dynamic, persistable bool) *state {
	return &state{
		typ:         recordType,
		dynamic:     dynamic,
		persistable: persistable,
		values:      make(map[string]any),
		texts:       make(map[string]string),
		sublists:    make(map[string]*sublistState),
		subrecords:  make(map[string]*state),
	}
}

func newLineState() *lineState {
	return &lineState{
		values:     make(map[string]any),
		texts:      make(map[string]string),
		subrecords: make(map[string]*state),
	}
}

// sub returns the sublist, creating it on first touch.
func (st *state) sub(sublistID string) *sublistState {
	s, ok := st.sublists[sublistID]
	if !ok {
		s = &sublistState{currentIdx: -1}
		st.sublists[sublistID] = s
	}
	return s
}

func (st *state) clone() *state {
	out := newState(st.typ, st.dynamic, st.persistable)
	out.id = st.id
	for k, v := range st.values {
		out.values[k] = v
	}
	for k, v := range st.texts {
		out.texts[k] = v
	}
	for id, s := range st.sublists {
		copied := &sublistState{currentIdx: -1}
		for _, ln := range s.lines {
			copied.lines = append(copied.lines, ln.clone())
		}
		out.sublists[id] = copied
	}
	for id, sr := range st.subrecords {
		out.subrecords[id] = sr.clone()
	}
	return out
}

func (ln *lineState) clone() *lineState {
	out := newLineState()
	for k, v := range ln.values {
		out.values[k] = v
	}
	for k, v := range ln.texts {
		out.texts[k] = v
	}
	for id, sr := range ln.subrecords {
		out.subrecords[id] = sr.clone()
	}
	return out
}

func stateFromSnapshot(snap *platform.Snapshot) *state {
	st := newState(snap.Type, snap.Dynamic, true)
	st.id = snap.ID
	for k, v := range snap.Fields {
		st.values[k] = v
	}
	for k, v := range snap.Texts {
		st.texts[k] = v
	}
	for id, lines := range snap.Sublists {
		s := &sublistState{currentIdx: -1}
		for _, snapLine := range lines {
			ln := newLineState()
			for k, v := range snapLine.Fields {
				ln.values[k] = v
			}
			for k, v := range snapLine.Texts {
				ln.texts[k] = v
			}
			s.lines = append(s.lines, ln)
		}
		st.sublists[id] = s
	}
	return st
}
