package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerAlphabet = "abcdefghijkmnopqrstuvwxyz"
	digitAlphabet = "23456789"

	// PasswordAlphabet leaves out characters that are easy to misread.
	PasswordAlphabet = upperAlphabet + lowerAlphabet + digitAlphabet

	MinTemporaryPasswordLength = 8
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns an unbiased string of length characters drawn from
// alphabet with crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	value := make([]byte, length)
	for index := range value {
		char, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		value[index] = char
	}
	return string(value), nil
}

// TemporaryPassword returns a password with at least one upper case letter,
// one lower case letter and one digit, so it passes the account password
// policy. Lengths below MinTemporaryPasswordLength are raised to it.
func TemporaryPassword(length int) (string, error) {
	if length < MinTemporaryPasswordLength {
		length = MinTemporaryPasswordLength
	}

	value := make([]byte, 0, length)
	for _, alphabet := range []string{upperAlphabet, lowerAlphabet, digitAlphabet} {
		char, err := randomChar(alphabet)
		if err != nil {
			return "", err
		}
		value = append(value, char)
	}
	rest, err := RandomString(length-len(value), PasswordAlphabet)
	if err != nil {
		return "", err
	}
	value = append(value, rest...)

	// Move the guaranteed classes away from the first positions.
	for index := len(value) - 1; index > 0; index-- {
		swap, err := rand.Int(rand.Reader, big.NewInt(int64(index+1)))
		if err != nil {
			return "", err
		}
		other := swap.Int64()
		value[index], value[other] = value[other], value[index]
	}
	return string(value), nil
}

func randomChar(alphabet string) (byte, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[position.Int64()], nil
}
