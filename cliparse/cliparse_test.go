// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("IDENTITY_SALT", "test-salt")
}

func TestParseFlags_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.SessionDuration != 24*time.Hour {
		t.Errorf("expected 24h sessions, got %s", cfg.SessionDuration)
	}
	if cfg.SubscriberBuffer != DefaultSubscriberBuffer {
		t.Errorf("expected buffer %d, got %d", DefaultSubscriberBuffer, cfg.SubscriberBuffer)
	}
	if cfg.CatalogCacheSize != DefaultCatalogCacheSize {
		t.Errorf("expected cache size %d, got %d", DefaultCatalogCacheSize, cfg.CatalogCacheSize)
	}
	if cfg.TagsTTL != DefaultTagsTTL {
		t.Errorf("expected tags ttl %s, got %s", DefaultTagsTTL, cfg.TagsTTL)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_DURATION", "30m")
	t.Setenv("SUBSCRIBER_BUFFER", "4")
	t.Setenv("TAGS_TTL", "1h")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.SessionDuration != 30*time.Minute {
		t.Errorf("expected 30m, got %s", cfg.SessionDuration)
	}
	if cfg.SubscriberBuffer != 4 {
		t.Errorf("expected buffer 4, got %d", cfg.SubscriberBuffer)
	}
	if cfg.TagsTTL != time.Hour {
		t.Errorf("expected 1h, got %s", cfg.TagsTTL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_DURATION", "30m")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:other.db", "-identity-salt", "s1", "-session-duration", "2h"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:other.db" {
		t.Errorf("CLI should override env: got %s", cfg.DatabaseURL)
	}
	if cfg.IdentitySalt != "s1" {
		t.Errorf("CLI should override env: got %s", cfg.IdentitySalt)
	}
	if cfg.SessionDuration != 2*time.Hour {
		t.Errorf("CLI should override env: expected 2h, got %s", cfg.SessionDuration)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database", map[string]string{"IDENTITY_SALT": "s"}, nil},
		{"missing salt", map[string]string{"DATABASE_URL": "file:x.db"}, nil},
		{"bad port", map[string]string{"DATABASE_URL": "file:x.db", "IDENTITY_SALT": "s", "PORT": "abc"}, nil},
		{"bad duration", map[string]string{"DATABASE_URL": "file:x.db", "IDENTITY_SALT": "s", "SESSION_DURATION": "soon"}, nil},
		{"negative duration", map[string]string{"DATABASE_URL": "file:x.db", "IDENTITY_SALT": "s"}, []string{"-session-duration", "-1h"}},
		{"unknown database type", map[string]string{"DATABASE_URL": "file:x.db", "IDENTITY_SALT": "s", "DATABASE_TYPE": "mysql"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DATABASE_URL", "IDENTITY_SALT", "PORT", "SESSION_DURATION", "DATABASE_TYPE"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("QUICKLY_RATE_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUICKLY_RATE_TEST_VALUE", "")
	os.Unsetenv("QUICKLY_RATE_TEST_VALUE")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("QUICKLY_RATE_TEST_VALUE"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
}
