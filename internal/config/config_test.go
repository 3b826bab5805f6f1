package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_EXPIRES_IN", "AMQP_URL", "SESSION_COOKIE_SECURE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DBDriver)
	}
	if cfg.JWTExpirationDur != 5*time.Minute {
		t.Errorf("expected 5m session, got %s", cfg.JWTExpirationDur)
	}
	if cfg.AMQPURL != "" {
		t.Errorf("expected events disabled by default, got %q", cfg.AMQPURL)
	}
	if cfg.SessionCookieSecure {
		t.Error("expected insecure cookies by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("JWT_EXPIRES_IN", "1h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DBDriver != "sqlite" || cfg.SQLitePath != "/tmp/ledger.db" {
		t.Errorf("unexpected sqlite settings: %s %s", cfg.DBDriver, cfg.SQLitePath)
	}
	if cfg.JWTExpirationDur != time.Hour {
		t.Errorf("expected 1h session, got %s", cfg.JWTExpirationDur)
	}
	if !cfg.SessionCookieSecure {
		t.Error("expected secure cookies")
	}
}

func TestLoadInvalidExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTExpirationDur != 5*time.Minute {
		t.Errorf("expected fallback to 5m, got %s", cfg.JWTExpirationDur)
	}
}
