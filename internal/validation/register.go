// Package validation contains input validation rules for user-supplied data.
package validation

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// MinUsernameLength is the minimum username length accepted at registration.
	MinUsernameLength = 5
	// MinPasswordLength is the minimum password length accepted at registration.
	MinPasswordLength = 8
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUsername checks the username meets the registration schema.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if len(username) < MinUsernameLength {
		return fmt.Errorf("username must be at least %d characters", MinUsernameLength)
	}
	return nil
}

// ValidatePassword checks the password meets the registration schema.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ValidateEmail checks the email has a plausible address format.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}
	return nil
}

// ValidateRegisterData checks the whole registration payload and returns the
// first violated rule.
func ValidateRegisterData(username, password, email string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	return ValidateEmail(email)
}
