package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrFullNameRequired       = errors.New("full name is required")
)

const maxFullNameLength = 120

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// NormalizeFullName collapses inner whitespace and rejects blank or overlong names.
func NormalizeFullName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || len([]rune(name)) > maxFullNameLength {
		return "", ErrFullNameRequired
	}
	return name, nil
}
