package config

import (
	"testing"
	"time"
)

func lookup(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{"DATABASE_URL": "postgres://localhost/backoffice"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.ImportMaxRows != 70 || cfg.AppEnv != "local" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxBodyBytes != 4<<20 {
		t.Fatalf("expected 4 MiB body limit, got %d", cfg.MaxBodyBytes)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"DATABASE_URL":         "postgres://db/backoffice",
		"PORT":                 "9090",
		"IMPORT_MAX_ROWS":      "10",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"APP_ENV":              "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.ImportMaxRows != 10 || cfg.AppEnv != "production" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database": {},
		"bad port":         {"DATABASE_URL": "x", "PORT": "abc"},
		"zero rows":        {"DATABASE_URL": "x", "IMPORT_MAX_ROWS": "0"},
		"bad body limit":   {"DATABASE_URL": "x", "MAX_BODY_BYTES": "-1"},
		"admin no pass":    {"DATABASE_URL": "x", "DEFAULT_ADMIN_USERNAME": "root"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromEnv(lookup(values)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFromEnvWithoutDatabase(t *testing.T) {
	cfg, err := fromEnv(lookup(map[string]string{"IMPORT_MAX_ROWS": "25"}), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != "" || cfg.ImportMaxRows != 25 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, err := fromEnv(lookup(map[string]string{"IMPORT_MAX_ROWS": "x"}), false); err == nil {
		t.Fatal("other settings are still validated")
	}
}
