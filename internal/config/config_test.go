package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("Port: got %q", cfg.Port)
	}
	if cfg.Host != "" {
		t.Fatalf("Host: got %q", cfg.Host)
	}
	if cfg.DataFile != "data/messages.json" {
		t.Fatalf("DataFile: got %q", cfg.DataFile)
	}
	if cfg.Env != "development" || !cfg.IsDevelopment() {
		t.Fatalf("Env: got %q", cfg.Env)
	}
	if cfg.DefaultAutoDeleteHrs != 24 {
		t.Fatalf("DefaultAutoDeleteHrs: got %v", cfg.DefaultAutoDeleteHrs)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.WriteTimeout != 20*time.Second {
		t.Fatalf("timeouts: %v %v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate: %v %v", cfg.RateRPS, cfg.RateBurst)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Fatalf("CORS: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATA_FILE", "/var/lib/board/messages.json")
	t.Setenv("DEFAULT_AUTO_DELETE_HOURS", "1.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOG_LEVEL", "WARNING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Host != "127.0.0.1" {
		t.Fatalf("server: %q %q", cfg.Port, cfg.Host)
	}
	if cfg.Env != "production" || cfg.IsDevelopment() {
		t.Fatalf("Env: %q", cfg.Env)
	}
	if cfg.DataFile != "/var/lib/board/messages.json" {
		t.Fatalf("DataFile: %q", cfg.DataFile)
	}
	if cfg.DefaultAutoDeleteHrs != 1.5 {
		t.Fatalf("DefaultAutoDeleteHrs: %v", cfg.DefaultAutoDeleteHrs)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORS: %v", cfg.CORS.AllowedOrigins)
	}
	// "warning" normalizes to "warn".
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel: %q", cfg.LogLevel)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero auto delete", "DEFAULT_AUTO_DELETE_HOURS", "0"},
		{"negative auto delete", "DEFAULT_AUTO_DELETE_HOURS", "-3"},
		{"negative rps", "RATE_RPS", "-1"},
		{"zero burst", "RATE_BURST", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s must fail validation", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UnknownModesNormalize(t *testing.T) {
	t.Setenv("GIN_MODE", "weird")
	t.Setenv("APP_ENV", "staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode: %q", cfg.GinMode)
	}
	if cfg.Env != "development" {
		t.Fatalf("Env: %q", cfg.Env)
	}
}
