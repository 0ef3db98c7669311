package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 int
	DatabaseURL          string
	AppEnv               string
	ImportMaxRows        int
	RequestTimeout       time.Duration
	CORSAllowedOrigins   []string
	MaxBodyBytes         int64
	DefaultAdminUsername string
	DefaultAdminPassword string
}

// Load reads .env when present, then the process environment. Values already
// set in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// LoadOffline is Load without the DATABASE_URL requirement, for tools that
// can run without a database.
func LoadOffline() (Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv, false)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	return fromEnv(getenv, true)
}

func fromEnv(getenv func(string) string, requireDatabase bool) (Config, error) {
	cfg := Config{
		AppEnv:               firstNonEmpty(getenv("APP_ENV"), "local"),
		DatabaseURL:          strings.TrimSpace(getenv("DATABASE_URL")),
		DefaultAdminUsername: strings.TrimSpace(getenv("DEFAULT_ADMIN_USERNAME")),
		DefaultAdminPassword: getenv("DEFAULT_ADMIN_PASSWORD"),
	}

	var err error
	if cfg.Port, err = positiveInt(getenv, "PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.ImportMaxRows, err = positiveInt(getenv, "IMPORT_MAX_ROWS", 70); err != nil {
		return Config{}, err
	}
	timeoutSec, err := positiveInt(getenv, "REQUEST_TIMEOUT_SEC", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second
	maxBody, err := positiveInt(getenv, "MAX_BODY_BYTES", 4<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	for _, origin := range strings.Split(firstNonEmpty(getenv("CORS_ALLOWED_ORIGINS"), "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if requireDatabase && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required (environment variable or .env)")
	}
	if cfg.DefaultAdminUsername != "" && cfg.DefaultAdminPassword == "" {
		return Config{}, fmt.Errorf("DEFAULT_ADMIN_PASSWORD is required when DEFAULT_ADMIN_USERNAME is set")
	}

	return cfg, nil
}

func positiveInt(getenv func(string) string, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if value := strings.TrimSpace(candidate); value != "" {
			return value
		}
	}
	return ""
}
