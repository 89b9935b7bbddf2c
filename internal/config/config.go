package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"edumate/internal/util"
)

// DevSecretKey is used when EDUMATE_SECRET_KEY is unset. Never deploy with it.
const DevSecretKey = "edumate-dev-secret"

// Config keeps runtime settings for the web application.
type Config struct {
	Addr         string
	DBPath       string
	StaticDir    string
	SecretKey    string
	SessionTTL   time.Duration
	SessionSweep string
	ResetTTL     time.Duration
	CookieSecure bool
	BcryptCost   int
	LogLevel     slog.Level
}

// Load reads .env (when present) and then the environment, applying defaults.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Addr:         util.EnvOrDefault("EDUMATE_ADDR", ":8080"),
		DBPath:       util.EnvOrDefault("EDUMATE_DB_PATH", "data/edumate.db"),
		StaticDir:    util.EnvOrDefault("EDUMATE_STATIC_DIR", "web/static"),
		SecretKey:    util.EnvOrDefault("EDUMATE_SECRET_KEY", DevSecretKey),
		SessionSweep: util.EnvOrDefault("EDUMATE_SESSION_SWEEP", "@every 10m"),
	}

	var err error
	if cfg.SessionTTL, err = util.EnvDuration("EDUMATE_SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ResetTTL, err = util.EnvDuration("EDUMATE_RESET_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = util.EnvBool("EDUMATE_COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = util.EnvInt("EDUMATE_BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("EDUMATE_BCRYPT_COST: must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.LogLevel, err = parseLevel(util.EnvOrDefault("EDUMATE_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// UsesDevSecret reports whether the built-in development secret is active.
func (c Config) UsesDevSecret() bool {
	return c.SecretKey == DevSecretKey
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(raw))); err != nil {
		return 0, fmt.Errorf("EDUMATE_LOG_LEVEL: invalid level %q", raw)
	}
	return level, nil
}
