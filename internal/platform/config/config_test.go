package config

import "testing"

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "test")
	t.Setenv("AUTH_MODE", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("DATABASE_URL", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.LogLevel != "info" || cfg.MailProvider != "noop" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoad_JWTModeRequiresSecret(t *testing.T) {
	setBase(t)
	t.Setenv("AUTH_MODE", "jwt")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	setBase(t)
	t.Setenv("STORAGE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
