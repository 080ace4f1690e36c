package jwt

import (
	"errors"
	"testing"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	signed, err := GenerateJWT(JWTParams{Role: "user", UserID: "42"}, secret, "1")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	token, err := ValidateJWT(signed, "1", secret)
	if err != nil {
		t.Fatalf("validating token: %v", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		t.Fatalf("reading subject: %v", err)
	}
	if sub != "42" {
		t.Errorf("expected subject 42, got %q", sub)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(JWTParams{Role: "user", UserID: "42"}, []byte("secret-a"), "1")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	if _, err := ValidateJWT(signed, "1", []byte("secret-b")); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateRejectsRotatedKeyVersion(t *testing.T) {
	secret := []byte("test-secret")

	signed, err := GenerateJWT(JWTParams{Role: "user", UserID: "42"}, secret, "1")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	_, err = ValidateJWT(signed, "2", secret)
	if !errors.Is(err, ErrKeyVersionMismatch) {
		t.Errorf("expected ErrKeyVersionMismatch, got %v", err)
	}
}
