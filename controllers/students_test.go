package controllers

import "testing"

func TestSectionFilterClauses(t *testing.T) {
	tests := []struct {
		name       string
		sectionID  string
		batchID    string
		deptID     string
		expClauses []string
	}{
		{
			name:       "section only",
			sectionID:  "5",
			expClauses: []string{"sections.id = ?"},
		},
		{
			name:       "section and batch",
			sectionID:  "5",
			batchID:    "2",
			expClauses: []string{"sections.id = ?", "sections.batch_id = ?"},
		},
		{
			name:       "full hierarchy",
			sectionID:  "5",
			batchID:    "2",
			deptID:     "1",
			expClauses: []string{"sections.id = ?", "sections.batch_id = ?", "batches.dept_id = ?"},
		},
		{
			name:       "section and department without batch",
			sectionID:  "5",
			deptID:     "1",
			expClauses: []string{"sections.id = ?", "batches.dept_id = ?"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			clauses, args := sectionFilterClauses(tc.sectionID, tc.batchID, tc.deptID)
			if len(clauses) != len(tc.expClauses) {
				t.Fatalf("got %d clauses, expected %d", len(clauses), len(tc.expClauses))
			}
			if len(args) != len(clauses) {
				t.Fatalf("got %d args for %d clauses", len(args), len(clauses))
			}
			for i, clause := range clauses {
				if clause != tc.expClauses[i] {
					t.Fatalf("clause %d = %q, expected %q", i, clause, tc.expClauses[i])
				}
			}
			if args[0] != tc.sectionID {
				t.Fatalf("first arg = %v, expected section id %q", args[0], tc.sectionID)
			}
		})
	}
}
