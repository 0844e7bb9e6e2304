package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/tailorhub/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// ResetPassword replaces the password of the account registered under email
// with a generated one and flags the account for a password change.
func (service *AuthService) ResetPassword(ctx context.Context, emailRaw string) (string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrAuthCredentialsInvalid
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), service.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}
	if err := service.users.UpdatePassword(ctx, user.ID, string(passwordHash), true); err != nil {
		return "", fmt.Errorf("update user password: %w", err)
	}
	return temporaryPassword, nil
}

// ChangePassword verifies currentPassword and stores nextPassword, clearing
// the forced change flag.
func (service *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword string, nextPassword string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrAuthCredentialsInvalid
	}
	if err := ValidatePasswordStrength(nextPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(nextPassword), service.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(ctx, user.ID, string(passwordHash), false); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}
