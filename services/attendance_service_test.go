package services

import (
	"errors"
	"testing"

	"sas_go/models"

	"gorm.io/gorm"
)

func TestClassifySession(t *testing.T) {
	tests := []struct {
		name      string
		scheduled string
		selected  string
		isFree    bool
		expected  string
	}{
		{
			name:      "scheduled course taught",
			scheduled: "CS101",
			selected:  "CS101",
			expected:  models.SessionNormal,
		},
		{
			name:      "different course taught",
			scheduled: "CS101",
			selected:  "CS102",
			expected:  models.SessionSwap,
		},
		{
			name:      "free period",
			scheduled: "CS101",
			selected:  "",
			isFree:    true,
			expected:  models.SessionFree,
		},
		{
			name:      "free wins over matching selection",
			scheduled: "CS101",
			selected:  "CS101",
			isFree:    true,
			expected:  models.SessionFree,
		},
		{
			name:      "free wins over differing selection",
			scheduled: "CS101",
			selected:  "CS102",
			isFree:    true,
			expected:  models.SessionFree,
		},
		{
			name:      "empty selection without free flag is a swap",
			scheduled: "CS101",
			selected:  "",
			expected:  models.SessionSwap,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifySession(tc.scheduled, tc.selected, tc.isFree)
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Present", "present"},
		{"ABSENT", "absent"},
		{"  Late ", "late"},
		{"present", "present"},
	}

	for _, tc := range tests {
		if got := NormalizeStatus(tc.input); got != tc.expected {
			t.Fatalf("NormalizeStatus(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestResolveThroughChainOrder(t *testing.T) {
	id := func(v uint) *uint { return &v }

	noAnswer := func(_ *gorm.DB, _ RecordAttendanceInput, _ models.TimetableSlot) (*uint, error) {
		return nil, nil
	}
	first := func(_ *gorm.DB, _ RecordAttendanceInput, _ models.TimetableSlot) (*uint, error) {
		return id(11), nil
	}
	second := func(_ *gorm.DB, _ RecordAttendanceInput, _ models.TimetableSlot) (*uint, error) {
		return id(22), nil
	}
	failing := func(_ *gorm.DB, _ RecordAttendanceInput, _ models.TimetableSlot) (*uint, error) {
		return nil, errors.New("lookup failed")
	}

	var in RecordAttendanceInput
	var slot models.TimetableSlot

	// First strategy with an answer wins; later ones are not consulted.
	got, err := resolveThroughChain([]substituteResolver{first, second}, nil, in, slot)
	if err != nil || got == nil || *got != 11 {
		t.Fatalf("expected 11, got %v (err %v)", got, err)
	}

	// Strategies that yield nothing defer to the next one.
	got, err = resolveThroughChain([]substituteResolver{noAnswer, second}, nil, in, slot)
	if err != nil || got == nil || *got != 22 {
		t.Fatalf("expected 22, got %v (err %v)", got, err)
	}

	// No strategy answering means no substitute, not an error.
	got, err = resolveThroughChain([]substituteResolver{noAnswer, noAnswer}, nil, in, slot)
	if err != nil || got != nil {
		t.Fatalf("expected nil, got %v (err %v)", got, err)
	}

	// A strategy error aborts the chain.
	if _, err = resolveThroughChain([]substituteResolver{failing, first}, nil, in, slot); err == nil {
		t.Fatal("expected error from failing strategy")
	}
}

func TestSubstituteResolverChainComposition(t *testing.T) {
	if len(substituteResolvers) != 2 {
		t.Fatalf("resolver chain has %d strategies, expected 2", len(substituteResolvers))
	}
}

func TestSwapReason(t *testing.T) {
	if got := SwapReason(models.SessionFree, "CS101", ""); got != FreeClassReason {
		t.Fatalf("free reason = %q", got)
	}

	got := SwapReason(models.SessionSwap, "CS101", "CS102")
	expected := "Course changed from CS101 to CS102"
	if got != expected {
		t.Fatalf("swap reason = %q, expected %q", got, expected)
	}
}
