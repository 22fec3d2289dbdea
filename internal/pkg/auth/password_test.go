package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("Secret123!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hashed == "Secret123!" {
		t.Fatalf("password stored in plain text")
	}

	if !CheckPassword(hashed, "Secret123!") {
		t.Fatalf("expected the original password to verify")
	}
	if CheckPassword(hashed, "wrong-password") {
		t.Fatalf("expected a wrong password to be rejected")
	}
}
