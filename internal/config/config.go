// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port         string        `env:"PORT"                      envDefault:"8080"`
	DBPath       string        `env:"DB_PATH"                   envDefault:"data/tailorhub.db"`
	SecretKey    string        `env:"SECRET_KEY"`
	Timezone     string        `env:"TZ"                        envDefault:"UTC"`
	CookieSecure bool          `env:"COOKIE_SECURE"             envDefault:"false"`
	CallTimeout  time.Duration `env:"REGISTRATION_CALL_TIMEOUT" envDefault:"10s"`
	FlowTTL      time.Duration `env:"REGISTRATION_FLOW_TTL"     envDefault:"30m"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	secret, err := ValidateSecretKey(cfg.SecretKey)
	if err != nil {
		return Config{}, err
	}
	cfg.SecretKey = secret

	if cfg.CallTimeout <= 0 {
		return Config{}, errors.New("REGISTRATION_CALL_TIMEOUT must be positive")
	}
	if cfg.FlowTTL <= 0 {
		return Config{}, errors.New("REGISTRATION_FLOW_TTL must be positive")
	}
	return cfg, nil
}

// LoadDatabasePath reads only DB_PATH, for commands that need no secret.
func LoadDatabasePath() (string, error) {
	var cfg struct {
		DBPath string `env:"DB_PATH" envDefault:"data/tailorhub.db"`
	}
	if err := env.Parse(&cfg); err != nil {
		return "", fmt.Errorf("parse env: %w", err)
	}
	return cfg.DBPath, nil
}

func ValidateSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}
