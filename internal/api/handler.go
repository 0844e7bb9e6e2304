package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/tailorhub/internal/db"
	"github.com/terraincognita07/tailorhub/internal/registration"
	"github.com/terraincognita07/tailorhub/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
	flowSweepInterval   = time.Minute
)

type Options struct {
	SecretKey    string
	CookieSecure bool
	CallTimeout  time.Duration
	FlowTTL      time.Duration
	Logger       *zap.Logger
}

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	callTimeout  time.Duration
	logger       *zap.Logger

	authService *services.AuthService
	directory   *services.TailorDirectoryService
	catalog     registration.Catalog
	flows       *flowStore

	loginLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := registration.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		secretKey:    []byte(options.SecretKey),
		cookieSecure: options.CookieSecure,
		callTimeout:  options.CallTimeout,
		logger:       logger,
		authService:  services.NewAuthService(repositories.Users, repositories.TailorProfiles),
		directory:    services.NewTailorDirectoryService(repositories.TailorProfiles),
		catalog:      catalog,
		flows:        newFlowStore(options.FlowTTL),
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
	}, nil
}

// RunFlowSweeper abandons idle registration flows until ctx is done.
func (handler *Handler) RunFlowSweeper(ctx context.Context) error {
	return handler.flows.run(ctx, flowSweepInterval, func(id string) {
		handler.logger.Info("registration flow expired", zap.String("flow_id", id))
	})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		handler.logger.Error("health check failed", zap.Error(err))
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"ok": true})
}
