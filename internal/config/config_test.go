package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// unsetenv removes key for the duration of the test. A variable set to the
// empty string is not the same as an unset one for envconfig.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "ALLOWED_ORIGINS", "LOG_LEVEL"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Errorf("StoreDriver = %q, want sqlite", cfg.StoreDriver)
	}
	if d := cmp.Diff([]string{"localhost:5173", "localhost:3000"}, cfg.Origins()); d != "" {
		t.Error(d)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level = %v, want info", cfg.Level())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("ALLOWED_ORIGINS", " example.com , ,draw.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 || cfg.StoreDriver != "postgres" {
		t.Errorf("got %+v", cfg)
	}
	if d := cmp.Diff([]string{"example.com", "draw.example.com"}, cfg.Origins()); d != "" {
		t.Error(d)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level())
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected an error for a non-numeric port")
	}
}
