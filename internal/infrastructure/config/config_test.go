package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// unset clears keys for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, "PORT", "TOKEN_TTL", "HASH_ITERATIONS", "POSTGRES_PORT", "BOOKING_LOCK_TTL",
		"REDIS_POOL_SIZE", "REDIS_DIAL_TIMEOUT", "MONGO_APP_NAME", "MONGO_CONNECT_TIMEOUT")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.TokenTTL != 24*time.Hour || cfg.HashIterations != 350000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Postgres.Port != 5432 || cfg.Redis.BookingLockTTL != 10*time.Second {
		t.Fatalf("unexpected nested defaults: %+v %+v", cfg.Postgres, cfg.Redis)
	}
	if cfg.Redis.PoolSize != 10 || cfg.Redis.DialTimeout != 5*time.Second {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Mongo.AppName != "rushhour-api" || cfg.Mongo.ConnectTimeout != 10*time.Second {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	unset(t, "JWT_SECRET")

	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	unset(t, "JWT_SECRET", "AUDIT_WORKERS")
	t.Setenv("PORT", "9090")
	path := filepath.Join(t.TempDir(), "test.env")
	content := "JWT_SECRET=from-file\nPORT=7070\nAUDIT_WORKERS=2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret != "from-file" || cfg.AuditWorkers != 2 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Port != "9090" {
		t.Fatalf("environment should win over the file, got port %s", cfg.Port)
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	dsn := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable"}.DSN()
	for _, part := range []string{"host=db", "port=5433", "dbname=d", "TimeZone=UTC"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("expected %q in %q", part, dsn)
		}
	}
}
