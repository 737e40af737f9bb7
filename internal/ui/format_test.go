package ui

import "testing"

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		currency string
		total    float64
		want     string
	}{
		{"$", 0, "Total: $0.00"},
		{"$", 9.5, "Total: $9.50"},
		{"€", 1234.567, "Total: €1234.57"},
		{"", 3, "Total: 3.00"},
	}
	for _, tt := range tests {
		if got := FormatTotal(tt.currency, tt.total); got != tt.want {
			t.Fatalf("FormatTotal(%q, %v) = %q, want %q", tt.currency, tt.total, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"9.5", 9.5},
		{" $12 ", 12},
		{"3,25", 3.25},
		{"", 0},
		{"abc", 0},
		{"-4", -4},
	}
	for _, tt := range tests {
		if got := parsePrice(tt.in, "$"); got != tt.want {
			t.Fatalf("parsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Groceries", 6); got != "Gro..." {
		t.Fatalf("truncate = %q, want %q", got, "Gro...")
	}
	if got := truncate("Tâche", 10); got != "Tâche" {
		t.Fatalf("truncate = %q, want unchanged", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate(max=0) = %q, want empty", got)
	}
}

func TestScrollStart(t *testing.T) {
	tests := []struct {
		cursor, total, rows, want int
	}{
		{0, 5, 10, 0},
		{4, 20, 5, 0},
		{5, 20, 5, 1},
		{19, 20, 5, 15},
	}
	for _, tt := range tests {
		if got := scrollStart(tt.cursor, tt.total, tt.rows); got != tt.want {
			t.Fatalf("scrollStart(%d, %d, %d) = %d, want %d", tt.cursor, tt.total, tt.rows, got, tt.want)
		}
	}
}
