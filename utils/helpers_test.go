package utils

import "testing"

func TestGenerateAuthKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := GenerateAuthKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(key) != 6 {
			t.Fatalf("key %q is not 6 digits", key)
		}
		for _, r := range key {
			if r < '0' || r > '9' {
				t.Fatalf("key %q contains non-digit %q", key, r)
			}
		}
		if key[0] == '0' {
			t.Fatalf("key %q has a leading zero", key)
		}
		seen[key] = true
	}
	if len(seen) < 2 {
		t.Fatal("keys do not vary")
	}
}

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role     string
		expected bool
	}{
		{"admin", true},
		{"faculty", true},
		{"cr", true},
		{"student", false},
		{"Admin", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsValidRole(tc.role); got != tc.expected {
			t.Fatalf("IsValidRole(%q) = %v, expected %v", tc.role, got, tc.expected)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if err := CheckPassword("s3cret-pass", hash); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong-pass", hash); err == nil {
		t.Fatal("wrong password accepted")
	}
}
