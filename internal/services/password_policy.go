package services

import (
	"errors"
	"unicode"
)

// MinPasswordLength is counted in runes.
const MinPasswordLength = 8

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength requires MinPasswordLength runes with at least one
// upper case letter, one lower case letter and one digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
