package utils

import "testing"

func TestValidateUsername(t *testing.T) {
	valid := []string{"admin", "owner", "franchise.owner", "user_42", "a-b-c"}
	for _, username := range valid {
		if !ValidateUsername(username) {
			t.Errorf("expected %q to be valid", username)
		}
	}

	invalid := []string{"", "ab", "has space", "semi;colon", "quote'name", "tab\tname"}
	for _, username := range invalid {
		if ValidateUsername(username) {
			t.Errorf("expected %q to be invalid", username)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, _ := ValidatePassword("longenough"); !ok {
		t.Error("expected 10-character password to pass")
	}
	ok, msg := ValidatePassword("short")
	if ok {
		t.Error("expected short password to fail")
	}
	if msg == "" {
		t.Error("expected a user-facing message for a short password")
	}
}

func TestValidateRating(t *testing.T) {
	for _, score := range []int{1, 3, 5} {
		if !ValidateRating(score) {
			t.Errorf("expected score %d to be valid", score)
		}
	}
	for _, score := range []int{0, -1, 6} {
		if ValidateRating(score) {
			t.Errorf("expected score %d to be invalid", score)
		}
	}
}
