package recgen

import "testing"

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"salesorder", "Salesorder"},
		{"sales_order", "SalesOrder"},
		{"ship-address", "ShipAddress"},
		{"custbody_rush_flag", "CustbodyRushFlag"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ToPascalCase(tt.input)
			if got != tt.want {
				t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPascalCaseAcronyms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"entity_id", "EntityID"},
		{"po_number", "PONumber"},
		{"fx_rate", "FXRate"},
		{"vat_code", "VATCode"},
		{"sales_order", "SalesOrder"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ToPascalCaseAcronyms(tt.input)
			if got != tt.want {
				t.Errorf("ToPascalCaseAcronyms(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
