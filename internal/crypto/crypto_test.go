package crypto

import (
	"encoding/base64"
	"strings"
	"testing"
)

func testKey() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptor(testKey())
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}

	plaintext := "felt anxious before the meeting, used the breathing exercise"
	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ciphertext == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plaintext {
		t.Errorf("round trip mismatch: got %q", got)
	}
}

func TestEmptyStringPassesThrough(t *testing.T) {
	enc, _ := NewEncryptor(testKey())
	if out, err := enc.Encrypt(""); err != nil || out != "" {
		t.Errorf("Encrypt(\"\") = %q, %v", out, err)
	}
	if out, err := enc.Decrypt(""); err != nil || out != "" {
		t.Errorf("Decrypt(\"\") = %q, %v", out, err)
	}
}

func TestRejectsBadKeys(t *testing.T) {
	if _, err := NewEncryptor(""); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewEncryptor("not base64!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	short := base64.StdEncoding.EncodeToString([]byte("too short"))
	if _, err := NewEncryptor(short); err == nil {
		t.Error("expected error for short key")
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	enc, _ := NewEncryptor(testKey())
	ciphertext, err := enc.Encrypt("private note")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(ciphertext)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := enc.Decrypt(tampered); err == nil || !strings.Contains(err.Error(), "decrypt") {
		t.Errorf("expected decrypt failure, got %v", err)
	}
}
