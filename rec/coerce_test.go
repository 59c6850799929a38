package rec

import "testing"

func TestToNumber(t *testing.T) {
	tests := []struct {
		input any
		want  float64
	}{
		{42, 42},
		{int64(7), 7},
		{uint8(255), 255},
		{float32(1.5), 1.5},
		{3.25, 3.25},
		{"12.5", 12.5},
		{"-4", -4},
	}
	for _, tt := range tests {
		got, err := toNumber(tt.input)
		if err != nil {
			t.Errorf("toNumber(%v): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("toNumber(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestToNumber_Rejects(t *testing.T) {
	for _, input := range []any{"twelve", true, nil, []int{1}} {
		if _, err := toNumber(input); err == nil {
			t.Errorf("toNumber(%v): expected error", input)
		}
	}
}

func TestIsNumericSource(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{42, true},
		{int64(1), true},
		{3.14, true},
		{"123", true},
		{"12.5", true},
		{"abc", false},
		{true, false},
		{[]int{1}, false},
	}
	for _, tt := range tests {
		if got := isNumericSource(tt.input); got != tt.want {
			t.Errorf("isNumericSource(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
