package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	if err := ValidateUsername("alice77"); err != nil {
		t.Fatalf("valid username rejected: %v", err)
	}
	if err := ValidateUsername(""); err == nil {
		t.Fatal("empty username accepted")
	}
	if err := ValidateUsername("abcd"); err == nil {
		t.Fatal("4-char username accepted")
	}
	if err := ValidateUsername("abcde"); err != nil {
		t.Fatalf("5-char username rejected: %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("supersecret"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := ValidatePassword(""); err == nil {
		t.Fatal("empty password accepted")
	}
	if err := ValidatePassword("1234567"); err == nil {
		t.Fatal("7-char password accepted")
	}
	if err := ValidatePassword("12345678"); err != nil {
		t.Fatalf("8-char password rejected: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@b.co", "user.name+tag@example.com", "x@sub.domain.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("valid email %q rejected: %v", email, err)
		}
	}

	invalid := []string{"", "plain", "no@tld", "@missing.local", "spaces in@example.com", "two@@example.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("invalid email %q accepted", email)
		}
	}
}

func TestValidateRegisterData(t *testing.T) {
	t.Parallel()

	if err := ValidateRegisterData("alice77", "supersecret", "alice@example.com"); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if err := ValidateRegisterData("abc", "supersecret", "alice@example.com"); err == nil {
		t.Fatal("short username accepted")
	}
	if err := ValidateRegisterData("alice77", "short", "alice@example.com"); err == nil {
		t.Fatal("short password accepted")
	}
	if err := ValidateRegisterData("alice77", "supersecret", "nope"); err == nil {
		t.Fatal("bad email accepted")
	}
}
