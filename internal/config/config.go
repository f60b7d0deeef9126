package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	API struct {
		BaseURL        string `env:"URL" envDefault:"http://localhost:4000"`
		TimeoutSeconds int    `env:"TIMEOUT" envDefault:"10"`
	} `envPrefix:"API_"`
	Cache struct {
		// TTLMinutes is 0 by default: availability answers live for the
		// whole editor session.
		TTLMinutes int `env:"TTL_MIN" envDefault:"0"`
	} `envPrefix:"CACHE_"`
	Log struct {
		File  string `env:"FILE"`
		Level string `env:"LEVEL" envDefault:"info"`
	} `envPrefix:"LOG_"`
	Draft struct {
		Path    string `env:"DB"`
		Disable bool   `env:"DISABLE" envDefault:"false"`
	} `envPrefix:"DRAFT_"`
}

// Load reads SHIFTDECK_* variables, honoring a .env file when present.
// Missing optional paths are resolved lazily by LogFile/DraftPath.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SHIFTDECK_"}); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			// Only the first problem; the rest are usually noise.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}
	return cfg, nil
}

func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// LogFile resolves the log path, defaulting under the user cache dir. An
// empty return disables file logging.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shiftdeck", "shiftdeck.log")
}

// DraftPath resolves the draft database path; "" when drafts are disabled or
// no cache dir exists.
func (c *Config) DraftPath() string {
	if c.Draft.Disable {
		return ""
	}
	if c.Draft.Path != "" {
		return c.Draft.Path
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shiftdeck", "drafts.db")
}
