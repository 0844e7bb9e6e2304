// Package cli holds administrative commands that run against the database
// directly, outside the HTTP server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/tailorhub/internal/db"
	"github.com/terraincognita07/tailorhub/internal/services"
	"go.uber.org/zap"
)

// RunResetPasswordCommand gives the account registered under email a
// temporary password, prints it to out and flags the account so the user is
// asked to change it after signing in.
func RunResetPasswordCommand(ctx context.Context, dbPath string, email string, out io.Writer, logger *zap.Logger) error {
	if services.NormalizeAuthEmail(email) == "" {
		return errors.New("a valid email address is required")
	}

	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	repositories := db.NewRepositories(database)
	authService := services.NewAuthService(repositories.Users, repositories.TailorProfiles)

	temporaryPassword, err := authService.ResetPassword(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
		}
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
