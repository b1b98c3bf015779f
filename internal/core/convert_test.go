package core

import (
	"testing"
)

func TestToNullDecimal(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		want      string
	}{
		{"", false, ""},
		{"   ", false, ""},
		{"12", true, "12"},
		{" 12.50 ", true, "12.5"},
		{"-3.25", true, "-3.25"},
		{"4.1e2", true, "410"},
		{"0", true, "0"},
		{"n/a", false, ""},
		{"$12", false, ""},
		{"1,234", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ToNullDecimal(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToNullDecimal(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.Valid && got.Decimal.String() != tt.want {
				t.Errorf("ToNullDecimal(%q) = %s, want %s", tt.input, got.Decimal.String(), tt.want)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"admin", "admin"},
		{"  admin  ", "admin"},
		{`="TCUV"`, "TCUV"},
		{"=TCUV", "TCUV"},
		{`"admin"`, "admin"},
		{"'admin'", "admin"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"Admin", " TCUV ", "admin"})

	if got := idx["admin"]; got != 0 {
		t.Errorf(`idx["admin"] = %d, want 0 (first wins)`, got)
	}
	if got, ok := idx["tcuv"]; !ok || got != 1 {
		t.Errorf(`idx["tcuv"] = %d, %v, want 1, true`, got, ok)
	}
	if len(idx) != 2 {
		t.Errorf("len(idx) = %d, want 2", len(idx))
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	if got := cell(row, 1); got != "b" {
		t.Errorf("cell(row, 1) = %q, want %q", got, "b")
	}
	if got := cell(row, 2); got != "" {
		t.Errorf("cell(row, 2) = %q, want empty", got)
	}
	if got := cell(row, -1); got != "" {
		t.Errorf("cell(row, -1) = %q, want empty", got)
	}
}
