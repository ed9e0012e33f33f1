package config

import (
	"os"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_NAME", "APP_ENVIRONMENT", "APP_DEBUG",
		"SERVER_HOST", "SERVER_PORT",
		"DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER", "DATABASE_PASSWORD", "DATABASE_DBNAME",
		"REDIS_HOST", "REDIS_PORT",
		"JWT_SECRET",
		"CACHE_TTL", "CACHE_STALE_AFTER",
		"GEOCODING_BASE_URL", "GEOCODING_ACCESS_TOKEN",
		"UPLOAD_DRIVER", "UPLOAD_MAX_SIZE_BYTES",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "farmflow" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "farmflow")
	}
	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %q, want %q", cfg.App.Environment, "development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want %d", cfg.Redis.Port, 6379)
	}
	if cfg.Cache.TTL.String() != "5m0s" {
		t.Errorf("Cache.TTL = %s, want 5m0s", cfg.Cache.TTL)
	}
	if cfg.Upload.MaxSizeBytes != 5*1024*1024 {
		t.Errorf("Upload.MaxSizeBytes = %d, want %d", cfg.Upload.MaxSizeBytes, 5*1024*1024)
	}
	if cfg.Geocoding.BaseURL != "https://api.mapbox.com" {
		t.Errorf("Geocoding.BaseURL = %q, want the Mapbox API", cfg.Geocoding.BaseURL)
	}
}

func TestLoad_WithEnvOverride(t *testing.T) {
	clearEnv(t)
	os.Setenv("APP_NAME", "test-app")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DATABASE_HOST", "db.example.com")
	os.Setenv("UPLOAD_DRIVER", "memory")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "test-app" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "test-app")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.example.com")
	}
	if cfg.Upload.Driver != "memory" {
		t.Errorf("Upload.Driver = %q, want %q", cfg.Upload.Driver, "memory")
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		DBName:   "farmflow",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	for _, part := range []string{"host=localhost", "port=5432", "user=postgres", "dbname=farmflow", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "localhost", Port: 6379}
	if got := r.Addr(); got != "localhost:6379" {
		t.Errorf("Addr() = %q, want %q", got, "localhost:6379")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Name: "farmflow", Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Host: "localhost", DBName: "farmflow"},
			JWT:      JWTConfig{Secret: "test-secret"},
			Upload:   UploadConfig{MaxSizeBytes: 1024},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("invalid server port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for port 0")
		}
	})

	t.Run("missing database name", func(t *testing.T) {
		cfg := valid()
		cfg.Database.DBName = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for a missing database name")
		}
	})

	t.Run("default secret rejected in production", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		cfg.JWT.Secret = "your-secret-key-change-in-production"
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for the default secret in production")
		}
	})

	t.Run("invalid upload size", func(t *testing.T) {
		cfg := valid()
		cfg.Upload.MaxSizeBytes = 0
		if err := cfg.Validate(); err == nil {
			t.Error("expected an error for a zero upload size")
		}
	})
}

func TestConfig_EnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected production environment")
	}

	cfg.App.Environment = "development"
	if cfg.IsProduction() || !cfg.IsDevelopment() {
		t.Error("expected development environment")
	}
}
