package middleware

import (
	"testing"
	"time"

	"sas_go/config"
	"sas_go/models"
)

func testConfig() {
	config.AppConfig = &config.Config{
		JWTSecret:    "test-secret-at-least-16-chars",
		JWTExpiresIn: time.Hour,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	testConfig()

	studentID := uint(42)
	user := &models.User{
		BaseModel: models.BaseModel{ID: 7},
		Email:     "cr@sas.local",
		Role:      "cr",
		StudentID: &studentID,
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("user id = %d, expected 7", claims.UserID)
	}
	if claims.Role != "cr" {
		t.Fatalf("role = %q, expected cr", claims.Role)
	}
	if claims.StudentID == nil || *claims.StudentID != 42 {
		t.Fatalf("student id = %v, expected 42", claims.StudentID)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("token carries no future expiry")
	}
}

func TestTokenRoundTripWithoutStudent(t *testing.T) {
	testConfig()

	user := &models.User{
		BaseModel: models.BaseModel{ID: 1},
		Email:     "admin@sas.local",
		Role:      "admin",
	}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.StudentID != nil {
		t.Fatalf("student id = %v, expected nil", claims.StudentID)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	testConfig()

	token, err := GenerateToken(&models.User{BaseModel: models.BaseModel{ID: 1}, Role: "admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}

	// A token signed under a different secret must not verify.
	config.AppConfig.JWTSecret = "another-secret-16-chars-long"
	if _, err := ParseToken(token); err == nil {
		t.Fatal("token verified under the wrong secret")
	}
}
