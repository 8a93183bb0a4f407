package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultPort           = "8080"
	defaultDatabaseURL    = "recortes.db"
	defaultStorageBucket  = "recortes"
	defaultGoogleIssuer   = "https://accounts.google.com"
	defaultDevTokenSecret = "change-me-dev-token-secret"
)

// Config is the process configuration, loaded from the environment.
// GoogleClientID selects the auth mode: when set, bearer tokens are
// verified as Google ID tokens; when empty, the HS256 dev token service
// is used instead.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	GoogleClientID  string
	GoogleIssuerURL string
	DevTokenSecret  string

	StorageBucket        string
	StorageEndpoint      string
	StoragePublicBaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:               strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:                 getEnv("PORT", defaultPort),
		DatabaseURL:          getEnv("DATABASE_URL", defaultDatabaseURL),
		GoogleClientID:       strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleIssuerURL:      getEnv("GOOGLE_ISSUER_URL", defaultGoogleIssuer),
		DevTokenSecret:       getEnv("DEV_TOKEN_SECRET", defaultDevTokenSecret),
		StorageBucket:        getEnv("STORAGE_BUCKET", defaultStorageBucket),
		StorageEndpoint:      strings.TrimSpace(os.Getenv("STORAGE_ENDPOINT")),
		StoragePublicBaseURL: strings.TrimSpace(os.Getenv("STORAGE_PUBLIC_BASE_URL")),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.StorageBucket == "" {
		return fmt.Errorf("STORAGE_BUCKET must not be empty")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.GoogleClientID == "" {
			return fmt.Errorf("in prod/release GOOGLE_CLIENT_ID must be set")
		}
		if cfg.StoragePublicBaseURL == "" {
			return fmt.Errorf("in prod/release STORAGE_PUBLIC_BASE_URL must be set")
		}
		if cfg.DatabaseURL == defaultDatabaseURL {
			return fmt.Errorf("in prod/release DATABASE_URL must be set")
		}
	}
	return nil
}

// UseDevTokens reports whether the HS256 dev token service should be
// wired instead of the Google verifier.
func (c *Config) UseDevTokens() bool {
	return c.GoogleClientID == ""
}

// UseMemoryStorage reports whether the in-memory blob store should be
// wired instead of S3. No public base URL means no reachable object
// storage is configured.
func (c *Config) UseMemoryStorage() bool {
	return c.StoragePublicBaseURL == ""
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
