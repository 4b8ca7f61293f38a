// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort             = 3318
	DefaultDatabaseType     = "sqlite"
	DefaultSessionDuration  = 24 * time.Hour
	DefaultSubscriberBuffer = 16
	DefaultCatalogCacheSize = 1024
	DefaultTagsTTL          = 24 * time.Hour
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	IdentitySalt     string
	SessionDuration  time.Duration
	SubscriberBuffer int
	CatalogCacheSize int
	TagsTTL          time.Duration
}

// LoadDotEnv loads variables from the given files (default .env) without
// overriding ones already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-rate", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IdentitySalt, "identity-salt", "", "Salt for anonymous identities (prefer env)")

	// Voting sessions
	fs.DurationVar(&cfg.SessionDuration, "session-duration", 0, "Lifetime of a voting session")
	fs.IntVar(&cfg.SubscriberBuffer, "subscriber-buffer", 0, "Queued events per live subscriber")

	// Item catalogue
	fs.IntVar(&cfg.CatalogCacheSize, "catalog-cache", 0, "Items kept in the catalogue cache")
	fs.DurationVar(&cfg.TagsTTL, "tags-ttl", 0, "How long cached item tags stay fresh")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := intFromEnv("PORT", DefaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.IdentitySalt == "" {
		cfg.IdentitySalt = os.Getenv("IDENTITY_SALT")
	}
	if cfg.IdentitySalt == "" {
		return Config{}, errors.New("IDENTITY_SALT required")
	}

	var err error
	if cfg.SessionDuration == 0 {
		if cfg.SessionDuration, err = durationFromEnv("SESSION_DURATION", DefaultSessionDuration); err != nil {
			return Config{}, err
		}
	}
	if cfg.SessionDuration < 0 {
		return Config{}, errors.New("session duration must be positive")
	}

	if cfg.SubscriberBuffer == 0 {
		if cfg.SubscriberBuffer, err = intFromEnv("SUBSCRIBER_BUFFER", DefaultSubscriberBuffer); err != nil {
			return Config{}, err
		}
	}
	if cfg.CatalogCacheSize == 0 {
		if cfg.CatalogCacheSize, err = intFromEnv("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize); err != nil {
			return Config{}, err
		}
	}
	if cfg.TagsTTL == 0 {
		if cfg.TagsTTL, err = durationFromEnv("TAGS_TTL", DefaultTagsTTL); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func intFromEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
