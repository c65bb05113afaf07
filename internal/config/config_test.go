package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGIN", "STORE_BACKEND", "DATA_DIR", "DATABASE_URL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX", "MONGODB_URI",
		"MONGODB_DB_NAME", "TIMEZONE", "EXPORT_DIR", "DAILY_CLOSE_CRON", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreBackend != BackendFile || cfg.DataDir != "data" {
		t.Fatalf("expected file backend in ./data, got %s %s", cfg.StoreBackend, cfg.DataDir)
	}
	if cfg.Location().String() != "UTC" {
		t.Fatalf("expected UTC location, got %s", cfg.Location())
	}
	if cfg.DailyCloseCron != "55 23 * * *" {
		t.Fatalf("unexpected cron default %q", cfg.DailyCloseCron)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
}

func TestLoadRejectsBackendWithoutConnection(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected postgres backend without DATABASE_URL to fail")
	}
}

func TestLoadRejectsUnknownBackendAndTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "sqlite")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected unknown backend to fail")
	}

	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	if _, err := Load(missingEnvFile(t)); err == nil {
		t.Fatalf("expected unknown timezone to fail")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is present, even when empty.
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("DATA_DIR")

	path := filepath.Join(t.TempDir(), "salon.env")
	if err := os.WriteFile(path, []byte("STORE_BACKEND=memory\nDATA_DIR=/var/lib/salon\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreBackend != BackendMemory {
		t.Fatalf("expected memory backend from env file, got %s", cfg.StoreBackend)
	}
	if cfg.DataDir != "/var/lib/salon" {
		t.Fatalf("expected data dir from env file, got %s", cfg.DataDir)
	}
}
