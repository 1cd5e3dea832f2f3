package services

import "testing"

func TestWeekdayOffset(t *testing.T) {
	tests := []struct {
		day      string
		expected int
	}{
		{"Mon", 0},
		{"Tue", 1},
		{"Wed", 2},
		{"Thu", 3},
		{"Fri", 4},
		{"Sat", 0},
		{"Sun", 0},
		{"", 0},
		{"monday", 0},
	}

	for _, tc := range tests {
		if got := WeekdayOffset(tc.day); got != tc.expected {
			t.Fatalf("WeekdayOffset(%q) = %d, expected %d", tc.day, got, tc.expected)
		}
	}
}

func TestKeyForDistinguishesSlotAndDate(t *testing.T) {
	a := keyFor(12, "2026-09-01")
	b := keyFor(12, "2026-09-02")
	c := keyFor(13, "2026-09-01")
	if a == b || a == c || b == c {
		t.Fatalf("keys collide: %q %q %q", a, b, c)
	}
}
