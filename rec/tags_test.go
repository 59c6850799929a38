package rec

import "testing"

func TestParseTag_NameOnly(t *testing.T) {
	tag, err := ParseTag("memo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Name != "memo" {
		t.Errorf("Name: got %q, want %q", tag.Name, "memo")
	}
	if tag.Text || tag.Numeric || tag.Sublist || tag.Subrecord || tag.Skip {
		t.Errorf("no options expected, got %+v", tag)
	}
}

func TestParseTag_Options(t *testing.T) {
	tests := []struct {
		input string
		check func(FieldTag) bool
		desc  string
	}{
		{"entity,text", func(ft FieldTag) bool { return ft.Text }, "text option"},
		{"total,numeric", func(ft FieldTag) bool { return ft.Numeric }, "numeric option"},
		{"qty,value", func(ft FieldTag) bool { return ft.Value }, "value option"},
		{"item,sublist", func(ft FieldTag) bool { return ft.Sublist }, "sublist option"},
		{"shipaddress,subrecord", func(ft FieldTag) bool { return ft.Subrecord }, "subrecord option"},
		{"memo,field:custbody_memo", func(ft FieldTag) bool { return ft.FieldID == "custbody_memo" }, "field id override"},
		{"type:salesorder", func(ft FieldTag) bool { return ft.TypeName == "salesorder" }, "type override"},
		{"-", func(ft FieldTag) bool { return ft.Skip }, "skip marker"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			tag, err := ParseTag(tt.input)
			if err != nil {
				t.Fatalf("ParseTag(%q): %v", tt.input, err)
			}
			if !tt.check(tag) {
				t.Errorf("ParseTag(%q) = %+v, %s not applied", tt.input, tag, tt.desc)
			}
		})
	}
}

func TestParseTag_ConflictingOptions(t *testing.T) {
	for _, input := range []string{
		"entity,text,numeric",
		"item,sublist,subrecord",
	} {
		if _, err := ParseTag(input); err == nil {
			t.Errorf("ParseTag(%q): expected error for conflicting options", input)
		}
	}
}
