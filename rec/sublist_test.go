package rec

import (
	"errors"
	"strings"
	"testing"

	"github.com/netlark/go-recdal/platform/memclient"
)

func newDynamicOrder(t *testing.T, c *memclient.Client) *testOrder {
	t.Helper()
	o, err := NewWithOptions[testOrder](c, nil, NewOptions{Dynamic: true})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	return o
}

func newStandardOrder(t *testing.T, c *memclient.Client) *testOrder {
	t.Helper()
	o, err := New[testOrder](c, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o
}

func TestSublist_IdentityStable(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)

	first, err := o.Sublist("item")
	if err != nil {
		t.Fatalf("Sublist: %v", err)
	}
	second, err := o.Sublist("item")
	if err != nil {
		t.Fatalf("Sublist: %v", err)
	}
	if first != second {
		t.Error("repeated Sublist access should return the identical container")
	}
}

func TestSublist_UnknownName(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)

	var unknown *UnknownSublistError
	if _, err := o.Sublist("expense"); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSublistError, got %v", err)
	}
	// Plain value bindings are not sublists either.
	if _, err := o.Sublist("memo"); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSublistError for value binding, got %v", err)
	}
}

func TestSublist_DynamicAddAndCommit(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	sub, _ := o.Sublist("item")

	line, err := sub.AddLine()
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if line.Index() != 0 {
		t.Errorf("Index: got %d, want 0", line.Index())
	}
	if err := line.SetValue("quantity", 3); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	// The uncommitted row is not part of the committed view.
	if sub.Count() != 0 {
		t.Errorf("Count: got %d, want 0 before commit", sub.Count())
	}
	if sub.Len() != 0 {
		t.Errorf("Len: got %d, want 0 before commit", sub.Len())
	}
	if len(sub.Lines()) != 0 {
		t.Errorf("Lines: got %d entries, want 0 before commit", len(sub.Lines()))
	}
	if sub.Line(0) == nil {
		t.Error("the uncommitted line should be reachable at index Count()")
	}

	if err := sub.CommitLine(); err != nil {
		t.Fatalf("CommitLine: %v", err)
	}
	if sub.Count() != 1 {
		t.Errorf("Count: got %d, want 1 after commit", sub.Count())
	}
	if sub.Len() != 1 {
		t.Errorf("Len: got %d, want 1 after commit", sub.Len())
	}
	v, err := sub.Line(0).GetValue("quantity")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != float64(3) {
		t.Errorf("quantity: got %v, want 3", v)
	}
	// A fresh uncommitted row sits behind the committed lines again.
	if sub.Line(1) == nil {
		t.Error("expected a fresh uncommitted line at the new count")
	}
	if sub.Line(2) != nil {
		t.Error("indexes past the uncommitted line should yield nil")
	}
}

func TestSublist_PhantomWriteSkipsSelect(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	sub, _ := o.Sublist("item")

	line, err := sub.AddLine()
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	c.ResetCalls()
	if err := line.SetValue("item", "widget"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	// The new row is already current; writing it must not re-select.
	if got := c.CallCount("SelectLine("); got != 0 {
		t.Errorf("SelectLine calls: got %d, want 0\ncalls: %v", got, c.Calls())
	}
	if got := c.CallCount("SetCurrentSublistValue("); got != 1 {
		t.Errorf("SetCurrentSublistValue calls: got %d, want 1", got)
	}
}

func TestSublist_DynamicCommittedLineSelectsFirst(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	sub, _ := o.Sublist("item")

	line, _ := sub.AddLine()
	_ = line.SetValue("item", "widget")
	if err := sub.CommitLine(); err != nil {
		t.Fatalf("CommitLine: %v", err)
	}

	c.ResetCalls()
	v, err := sub.Line(0).GetValue("item")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "widget" {
		t.Errorf("item: got %v, want %q", v, "widget")
	}
	if got := c.CallCount("SelectLine("); got != 1 {
		t.Errorf("SelectLine calls: got %d, want 1", got)
	}
	if got := c.CallCount("GetCurrentSublistValue("); got != 1 {
		t.Errorf("GetCurrentSublistValue calls: got %d, want 1", got)
	}
}

func TestSublist_CommitRequiresDynamicMode(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	var invalid *InvalidModeOperationError
	if err := sub.CommitLine(); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidModeOperationError, got %v", err)
	}
}

func TestSublist_StandardInsertAndWrite(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	line, err := sub.AddLine()
	if err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if sub.Count() != 1 {
		t.Errorf("Count: got %d, want 1", sub.Count())
	}
	c.ResetCalls()
	if err := line.SetValue("rate", 9.99); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	// Standard mode uses line-addressed calls, never the current-line API.
	if got := c.CallCount("SetSublistValue("); got != 1 {
		t.Errorf("SetSublistValue calls: got %d, want 1", got)
	}
	if got := c.CallCount("SetCurrentSublistValue("); got != 0 {
		t.Errorf("SetCurrentSublistValue calls: got %d, want 0", got)
	}
	v, _ := sub.Line(0).GetValue("rate")
	if v != 9.99 {
		t.Errorf("rate: got %v, want 9.99", v)
	}
}

func TestSublist_InsertAtIndex(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	for i := 0; i < 2; i++ {
		line, err := sub.AddLine()
		if err != nil {
			t.Fatalf("AddLine: %v", err)
		}
		if err := line.SetValue("item", []string{"a", "b"}[i]); err != nil {
			t.Fatalf("SetValue: %v", err)
		}
	}

	inserted, err := sub.InsertLine(1, false)
	if err != nil {
		t.Fatalf("InsertLine: %v", err)
	}
	if inserted.Index() != 1 {
		t.Errorf("Index: got %d, want 1", inserted.Index())
	}
	if err := inserted.SetValue("item", "between"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	want := []string{"a", "between", "b"}
	for i, w := range want {
		v, _ := sub.Line(i).GetValue("item")
		if v != w {
			t.Errorf("line %d item: got %v, want %q", i, v, w)
		}
	}
}

func TestSublist_InsertOutOfRange(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")
	c.ResetCalls()

	var oob *IndexOutOfRangeError
	if _, err := sub.InsertLine(5, true); !errors.As(err, &oob) {
		t.Fatalf("expected IndexOutOfRangeError, got %v", err)
	}
	// The bounds check fires before any mutating platform call.
	if got := c.CallCount("InsertLine("); got != 0 {
		t.Errorf("InsertLine calls: got %d, want 0", got)
	}
}

func TestSublist_RemoveLine(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	for _, item := range []string{"a", "b", "c"} {
		line, _ := sub.AddLine()
		_ = line.SetValue("item", item)
	}
	if err := sub.RemoveLine(1, true); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if sub.Count() != 2 {
		t.Errorf("Count: got %d, want 2", sub.Count())
	}
	want := []string{"a", "c"}
	for i, w := range want {
		v, _ := sub.Line(i).GetValue("item")
		if v != w {
			t.Errorf("line %d item: got %v, want %q", i, v, w)
		}
	}
}

func TestSublist_RemoveAllLines(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	for i := 0; i < 3; i++ {
		if _, err := sub.AddLine(); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
	c.ResetCalls()
	if err := sub.RemoveAllLines(); err != nil {
		t.Fatalf("RemoveAllLines: %v", err)
	}
	if sub.Count() != 0 {
		t.Errorf("Count: got %d, want 0", sub.Count())
	}

	// Exactly one remove per line, highest index first.
	var removes []string
	for _, call := range c.Calls() {
		if strings.HasPrefix(call, "RemoveLine(") {
			removes = append(removes, call)
		}
	}
	want := []string{
		"RemoveLine(item,2,ignoreRecalc=true)",
		"RemoveLine(item,1,ignoreRecalc=true)",
		"RemoveLine(item,0,ignoreRecalc=true)",
	}
	if len(removes) != len(want) {
		t.Fatalf("RemoveLine calls: got %v, want %v", removes, want)
	}
	for i := range want {
		if removes[i] != want[i] {
			t.Errorf("remove %d: got %q, want %q", i, removes[i], want[i])
		}
	}
}

func TestSublist_ModeToggleSwitchesAPI(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	sub, _ := o.Sublist("item")

	line, _ := sub.AddLine()
	_ = line.SetValue("item", "widget")
	if err := sub.CommitLine(); err != nil {
		t.Fatalf("CommitLine: %v", err)
	}

	// Disabling dynamic API usage on the record reaches the cached container.
	o.SetUseDynamicModeAPI(false)
	if sub.UseDynamicModeAPI() {
		t.Fatal("toggle should propagate to materialized sublists")
	}

	c.ResetCalls()
	if _, err := sub.Line(0).GetValue("item"); err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if got := c.CallCount("GetSublistValue("); got != 1 {
		t.Errorf("GetSublistValue calls: got %d, want 1", got)
	}
	if got := c.CallCount("GetCurrentSublistValue("); got != 0 {
		t.Errorf("GetCurrentSublistValue calls: got %d, want 0", got)
	}
}

func TestSublist_LiveCountNotCached(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	// Lines added behind the container's back still show up in Count.
	if err := o.Handle().InsertLine("item", 0, true); err != nil {
		t.Fatalf("InsertLine: %v", err)
	}
	if sub.Count() != 1 {
		t.Errorf("Count: got %d, want 1", sub.Count())
	}
	// The materialized view lags until the next rebuild.
	if sub.Len() != 0 {
		t.Errorf("Len: got %d, want 0", sub.Len())
	}
}

func TestLineAt_TypedAccess(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newStandardOrder(t, c)
	sub, _ := o.Sublist("item")

	line, _ := sub.AddLine()
	_ = line.SetValue("quantity", 7)

	typed, err := LineAt[testOrderLine](sub, 0)
	if err != nil {
		t.Fatalf("LineAt: %v", err)
	}
	if typed.SublistID() != "item" {
		t.Errorf("SublistID: got %q, want %q", typed.SublistID(), "item")
	}
	v, _ := typed.GetValue("quantity")
	if v != float64(7) {
		t.Errorf("quantity: got %v, want 7", v)
	}

	var oob *IndexOutOfRangeError
	if _, err := LineAt[testOrderLine](sub, 9); !errors.As(err, &oob) {
		t.Fatalf("expected IndexOutOfRangeError, got %v", err)
	}
}

func TestLine_ChangeFlagsForwarded(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	sub, _ := o.Sublist("item")

	line, err := LineAt[testOrderLine](sub, 0)
	if err != nil {
		t.Fatalf("LineAt: %v", err)
	}
	if _, err := sub.AddLine(); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	line.IgnoreFieldChange = true
	c.ResetCalls()
	if err := line.SetValue("item", "widget"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	found := false
	for _, call := range c.Calls() {
		if strings.Contains(call, "ignoreFieldChange=true") {
			found = true
		}
	}
	if !found {
		t.Errorf("change flags should reach the platform write, calls: %v", c.Calls())
	}
}
