package rec

import (
	"strings"
	"testing"

	"github.com/netlark/go-recdal/platform/memclient"
)

func TestToDict_UnsavedRecord(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)

	_ = o.SetValue("memo", "rush order")
	_ = o.SetValue("entityText", "ACME Corp")

	d, err := o.ToDict()
	if err != nil {
		t.Fatalf("ToDict: %v", err)
	}
	if d["id"] != nil {
		t.Errorf("id: got %v, want nil", d["id"])
	}
	if d["type"] != "salesorder" {
		t.Errorf("type: got %v, want %q", d["type"], "salesorder")
	}
	if d["memo"] != "rush order" {
		t.Errorf("memo: got %v, want %q", d["memo"], "rush order")
	}
	// Text bindings stay out of the view until the record is saved.
	if _, ok := d["entityText"]; ok {
		t.Error("entityText should be suppressed on an unsaved record")
	}
}

func TestToDict_SavedRecordIncludesText(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)

	_ = o.SetValue("entityText", "ACME Corp")
	if _, err := o.Save(true, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	d, err := o.ToDict()
	if err != nil {
		t.Fatalf("ToDict: %v", err)
	}
	if d["entityText"] != "ACME Corp" {
		t.Errorf("entityText: got %v, want %q", d["entityText"], "ACME Corp")
	}
	if d["id"] == nil {
		t.Error("id should carry the saved identifier")
	}
}

func TestToDict_PhantomLineExcluded(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	sub, _ := o.Sublist("item")

	line, _ := sub.AddLine()
	_ = line.SetValue("item", "widget")

	d, err := o.ToDict()
	if err != nil {
		t.Fatalf("ToDict: %v", err)
	}
	rows, ok := d["item"].([]map[string]any)
	if !ok {
		t.Fatalf("item: got %T, want []map[string]any", d["item"])
	}
	if len(rows) != 0 {
		t.Errorf("uncommitted line must not serialize, got %v", rows)
	}

	if err := sub.CommitLine(); err != nil {
		t.Fatalf("CommitLine: %v", err)
	}
	d, err = o.ToDict()
	if err != nil {
		t.Fatalf("ToDict: %v", err)
	}
	rows = d["item"].([]map[string]any)
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	if rows[0]["item"] != "widget" {
		t.Errorf("row item: got %v, want %q", rows[0]["item"], "widget")
	}
}

func TestToDict_SubrecordsExcluded(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)

	d, err := o.ToDict()
	if err != nil {
		t.Fatalf("ToDict: %v", err)
	}
	if _, ok := d["shipaddress"]; ok {
		t.Error("subrecord bindings should not appear in the serialized view")
	}
}

func TestToJSON(t *testing.T) {
	ClearRegistry()
	c := memclient.New()
	o := newDynamicOrder(t, c)
	_ = o.SetValue("memo", "rush order")

	data, err := ToJSON(o)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"memo":"rush order"`) {
		t.Errorf("missing memo in JSON output: %s", out)
	}
	if !strings.Contains(out, `"type":"salesorder"`) {
		t.Errorf("missing type in JSON output: %s", out)
	}
}
