package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
env: prod
http:
  addr: ":9090"
storage:
  driver: postgres
  session_backend: redis
redis:
  addr: cache:6379
  db: 2
auth:
  api_key: key-from-file
  jwt_secret: secret-from-file
  jwt_access_ttl: 30m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Storage.SessionBackend != SessionBackendRedis {
		t.Fatalf("unexpected session backend: %s", cfg.Storage.SessionBackend)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Auth.JWTAccessTTL != 30*time.Minute {
		t.Fatalf("unexpected access ttl: %s", cfg.Auth.JWTAccessTTL)
	}
	if cfg.Auth.JWTRefreshTTL != 7*24*time.Hour {
		t.Fatalf("refresh ttl default should stay 7 days, got %s", cfg.Auth.JWTRefreshTTL)
	}
	if cfg.IsDev() {
		t.Fatalf("prod config must not report dev")
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("API_KEY", "env-key")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_REFRESH_TTL", "48h")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("POSTGRES_AUTO_MIGRATE", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Auth.APIKey != "env-key" || cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("unexpected auth secrets: %+v", cfg.Auth)
	}
	if cfg.Auth.JWTRefreshTTL != 48*time.Hour {
		t.Fatalf("unexpected refresh ttl: %s", cfg.Auth.JWTRefreshTTL)
	}
	if cfg.Storage.Driver != StorageDriverMemory {
		t.Fatalf("unexpected storage driver: %s", cfg.Storage.Driver)
	}
	if cfg.Postgres.AutoMigrate {
		t.Fatalf("auto migrate should be disabled by env")
	}
	if cfg.Auth.JWTAccessTTL != time.Hour {
		t.Fatalf("access ttl default should stay 1h, got %s", cfg.Auth.JWTAccessTTL)
	}
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	clearConfigEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error without api key and jwt secret")
	}
	if !strings.Contains(err.Error(), "auth.api_key") || !strings.Contains(err.Error(), "auth.jwt_secret") {
		t.Fatalf("error should name both missing secrets: %v", err)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected parse error for JWT_ACCESS_TTL")
	}
}

func TestValidateStorageCombinations(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		backend string
		wantErr bool
	}{
		{name: "postgres sessions", driver: StorageDriverPostgres, backend: SessionBackendPostgres},
		{name: "redis sessions over postgres", driver: StorageDriverPostgres, backend: SessionBackendRedis},
		{name: "redis sessions over memory", driver: StorageDriverMemory, backend: SessionBackendRedis},
		{name: "memory everything", driver: StorageDriverMemory, backend: SessionBackendMemory},
		{name: "postgres sessions without postgres", driver: StorageDriverMemory, backend: SessionBackendPostgres, wantErr: true},
		{name: "memory sessions over postgres", driver: StorageDriverPostgres, backend: SessionBackendMemory, wantErr: true},
		{name: "unknown driver", driver: "sqlite", backend: SessionBackendRedis, wantErr: true},
		{name: "unknown backend", driver: StorageDriverPostgres, backend: "memcached", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.APIKey = "key"
			cfg.Auth.JWTSecret = "secret"
			cfg.Storage.Driver = tc.driver
			cfg.Storage.SessionBackend = tc.backend

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"STORAGE_DRIVER",
		"SESSION_BACKEND",
		"POSTGRES_DSN",
		"POSTGRES_AUTO_MIGRATE",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"API_KEY",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"JWT_REFRESH_TTL",
	} {
		t.Setenv(key, "")
	}
}
