package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds all configuration for the API process.
type App struct {
	Environment string `envconfig:"GO_ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// AuthMode is "jwt" in real deployments; "dev" bypasses token
	// verification and reads X-Debug-Email instead.
	AuthMode  string `envconfig:"AUTH_MODE" default:"jwt"`
	JWTSecret string `envconfig:"JWT_SECRET"`
	DevEmail  string `envconfig:"DEV_EMAIL"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`

	MailProvider    string `envconfig:"MAIL_PROVIDER" default:"noop"`
	MailFromAddress string `envconfig:"MAIL_FROM_ADDRESS"`
	MailFromName    string `envconfig:"MAIL_FROM_NAME" default:"IGetBack"`

	SESRegion          string `envconfig:"SES_REGION" default:"us-east-1"`
	SESAccessKeyID     string `envconfig:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `envconfig:"SES_SECRET_ACCESS_KEY"`
}

// Load reads configuration from the environment. Outside production a .env
// file is loaded first if present, matching local Docker workflows.
func Load() (App, error) {
	if os.Getenv("GO_ENV") != "production" {
		// Missing .env is fine; system env vars still apply.
		_ = godotenv.Load()
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return App{}, fmt.Errorf("process env config: %w", err)
	}

	if cfg.AuthMode == "jwt" && cfg.JWTSecret == "" {
		return App{}, fmt.Errorf("JWT_SECRET is required when AUTH_MODE=jwt")
	}
	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return App{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
	}
	return cfg, nil
}
