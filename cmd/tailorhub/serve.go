package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/tailorhub/internal/api"
	"github.com/terraincognita07/tailorhub/internal/config"
	"github.com/terraincognita07/tailorhub/internal/db"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), options.logger)
		},
	}
}

func runServe(ctx context.Context, log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	location := loadLocation(cfg.Timezone, log)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, api.Options{
		SecretKey:    cfg.SecretKey,
		CookieSecure: cfg.CookieSecure,
		CallTimeout:  cfg.CallTimeout,
		FlowTTL:      cfg.FlowTTL,
		Logger:       log.Named("api"),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return handler.RunFlowSweeper(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		log.Info("tailorhub listening",
			zap.String("addr", "0.0.0.0:"+cfg.Port),
			zap.String("db", cfg.DBPath),
			zap.String("tz", location.String()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("server exited: %w", err)
		}
		return nil
	})
	return group.Wait()
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "TailorHub",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func loadLocation(name string, log *zap.Logger) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("invalid TZ, falling back to UTC", zap.String("tz", name))
		return time.UTC
	}
	return location
}
