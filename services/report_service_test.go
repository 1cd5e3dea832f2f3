package services

import "testing"

func TestAttendancePercentage(t *testing.T) {
	tests := []struct {
		name     string
		attended int
		total    int
		expected float64
		ok       bool
	}{
		{
			name:     "exact percentage",
			attended: 8,
			total:    10,
			expected: 80.0,
			ok:       true,
		},
		{
			name:     "rounds to one decimal",
			attended: 2,
			total:    3,
			expected: 66.7,
			ok:       true,
		},
		{
			name:     "rounds half up",
			attended: 1,
			total:    16,
			expected: 6.3,
			ok:       true,
		},
		{
			name:     "full attendance",
			attended: 12,
			total:    12,
			expected: 100.0,
			ok:       true,
		},
		{
			name:     "zero attended",
			attended: 0,
			total:    5,
			expected: 0.0,
			ok:       true,
		},
		{
			name:     "zero total is undefined",
			attended: 0,
			total:    0,
			ok:       false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AttendancePercentage(tc.attended, tc.total)
			if ok != tc.ok {
				t.Fatalf("ok = %v, expected %v", ok, tc.ok)
			}
			if ok && got != tc.expected {
				t.Fatalf("percentage = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestShortageThresholdBoundary(t *testing.T) {
	// A student exactly at the threshold is not short.
	pct, ok := AttendancePercentage(75, 100)
	if !ok {
		t.Fatal("expected defined percentage")
	}
	if pct < 75.0 {
		t.Fatalf("75/100 computed as %v, below the default threshold", pct)
	}
}
