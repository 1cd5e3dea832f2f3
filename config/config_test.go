package config

import (
	"testing"
	"time"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
	}{
		{
			name:     "hours",
			input:    "24h",
			expected: 24 * time.Hour,
		},
		{
			name:     "minutes",
			input:    "90m",
			expected: 90 * time.Minute,
		},
		{
			name:     "days shorthand",
			input:    "7d",
			expected: 7 * 24 * time.Hour,
		},
		{
			name:     "weeks shorthand",
			input:    "2w",
			expected: 14 * 24 * time.Hour,
		},
		{
			name:     "shorthand is case insensitive",
			input:    "1D",
			expected: 24 * time.Hour,
		},
		{
			name:     "shorthand tolerates whitespace",
			input:    " 3d ",
			expected: 3 * 24 * time.Hour,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseExpiry(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Fatalf("parseExpiry(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParseExpiryInvalid(t *testing.T) {
	for _, input := range []string{"", "garbage", "d", "12x", "one-day"} {
		if _, err := parseExpiry(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
