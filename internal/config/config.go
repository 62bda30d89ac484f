// Package config loads Math Forest settings from defaults, a TOML file, a
// .env file and MATHFOREST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all settings.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Auth   AuthConfig   `toml:"auth"`
	Email  EmailConfig  `toml:"email"`
	Game   GameConfig   `toml:"game"`
}

// StoreConfig selects the profile database.
type StoreConfig struct {
	Driver string `toml:"driver"` // sqlite or postgres
	Path   string `toml:"path"`   // sqlite file
	URL    string `toml:"url"`    // postgres DSN
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	Metrics        bool          `toml:"metrics"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// AuthConfig controls accounts and session tokens.
type AuthConfig struct {
	JWTSecret           string        `toml:"jwt_secret"`
	TokenTTL            time.Duration `toml:"token_ttl"`
	RequireConfirmation bool          `toml:"require_confirmation"`
	SessionFile         string        `toml:"session_file"`
}

// EmailConfig controls confirmation mail through Amazon SES. An empty From
// disables sending.
type EmailConfig struct {
	Region   string `toml:"region"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	BaseURL  string `toml:"base_url"`
}

// GameConfig tunes gameplay timings.
type GameConfig struct {
	Debounce           time.Duration `toml:"debounce"`
	SavedRevert        time.Duration `toml:"saved_revert"`
	FailedRevert       time.Duration `toml:"failed_revert"`
	SessionMinAnswers  int           `toml:"session_min_answers"`
	SessionMinDuration time.Duration `toml:"session_min_duration"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	home := Home()
	return Config{
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   filepath.Join(dataHome(), "mathforest", "mathforest.db"),
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8787",
			Metrics:        true,
			RequestTimeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:    30 * 24 * time.Hour,
			SessionFile: filepath.Join(home, "session.json"),
		},
		Email: EmailConfig{
			Region:   "us-east-1",
			FromName: "Math Forest",
			BaseURL:  "http://localhost:8787",
		},
		Game: GameConfig{
			Debounce:           500 * time.Millisecond,
			SavedRevert:        1500 * time.Millisecond,
			FailedRevert:       4 * time.Second,
			SessionMinAnswers:  10,
			SessionMinDuration: 8 * time.Minute,
		},
	}
}

// Load builds the configuration. path overrides the default config file
// location; a missing default file is not an error, a missing explicit one
// is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// .env only fills variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as TOML to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"MATHFOREST_STORE_DRIVER":  &cfg.Store.Driver,
		"MATHFOREST_DB":            &cfg.Store.Path,
		"MATHFOREST_DATABASE_URL":  &cfg.Store.URL,
		"MATHFOREST_ADDR":          &cfg.Server.Addr,
		"MATHFOREST_JWT_SECRET":    &cfg.Auth.JWTSecret,
		"MATHFOREST_SESSION_FILE":  &cfg.Auth.SessionFile,
		"MATHFOREST_SES_REGION":    &cfg.Email.Region,
		"MATHFOREST_SES_FROM":      &cfg.Email.From,
		"MATHFOREST_SES_FROM_NAME": &cfg.Email.FromName,
		"MATHFOREST_BASE_URL":      &cfg.Email.BaseURL,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"MATHFOREST_METRICS":              &cfg.Server.Metrics,
		"MATHFOREST_REQUIRE_CONFIRMATION": &cfg.Auth.RequireConfirmation,
	}
	for key, dst := range bools {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	durations := map[string]*time.Duration{
		"MATHFOREST_TOKEN_TTL": &cfg.Auth.TokenTTL,
		"MATHFOREST_DEBOUNCE":  &cfg.Game.Debounce,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/mathforest/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	return filepath.Join(Home(), "config.toml")
}

// Home returns the configuration directory.
func Home() string {
	if env := os.Getenv("MATHFOREST_HOME"); env != "" {
		return env
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "mathforest")
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}
