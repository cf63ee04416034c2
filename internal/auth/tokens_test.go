package auth

import (
	"testing"
	"time"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	userID, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("different-secret", time.Hour)

	token, err := tm.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Error("expected parse failure with wrong secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	token, err := tm.Generate("user-123")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := tm.Parse(token); err == nil {
		t.Error("expected parse failure for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.Parse("not-a-jwt"); err == nil {
		t.Error("expected parse failure for malformed token")
	}
}
