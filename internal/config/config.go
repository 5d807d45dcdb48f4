// Package config loads skillsearch settings. Sources are applied in order of
// increasing precedence: built-in defaults, the YAML file, a .env file in the
// working directory, and SKILLSEARCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SKILLSEARCH_"

type Config struct {
	APIBaseURL         string        `yaml:"api_base_url" validate:"required,url"`
	SearchPath         string        `yaml:"search_path" validate:"required"`
	ProfilePath        string        `yaml:"profile_path" validate:"required,contains=%d"`
	RequestTimeout     time.Duration `yaml:"request_timeout" validate:"gt=0"`
	SessionToken       string        `yaml:"session_token"`
	LogFile            string        `yaml:"log_file"`
	LogLevel           string        `yaml:"log_level" validate:"oneof=trace debug info warn warning error"`
	History            History       `yaml:"history"`
	Suggestions        Suggestions   `yaml:"suggestions"`
	Profiles           Profiles      `yaml:"profiles"`
	RefreshConcurrency int           `yaml:"refresh_concurrency" validate:"min=1,max=32"`
}

type History struct {
	Backend  string `yaml:"backend" validate:"oneof=file redis memory"`
	Path     string `yaml:"path" validate:"required_if=Backend file"`
	RedisURL string `yaml:"redis_url" validate:"required_if=Backend redis"`
	Key      string `yaml:"key" validate:"required_if=Backend redis"`
	Capacity int    `yaml:"capacity" validate:"min=1,max=1000"`
}

type Suggestions struct {
	PerPage int `yaml:"per_page" validate:"min=1"`
	Limit   int `yaml:"limit" validate:"min=1"`
}

type Profiles struct {
	TTL     time.Duration `yaml:"ttl" validate:"gt=0"`
	Cleanup time.Duration `yaml:"cleanup" validate:"gte=0"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:8000",
		SearchPath:     "/api/search/",
		ProfilePath:    "/api/profiles/%d/",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		History: History{
			Backend:  "file",
			Path:     defaultHistoryPath(),
			Key:      "skillsearch:history",
			Capacity: 20,
		},
		Suggestions: Suggestions{
			PerPage: 50,
			Limit:   10,
		},
		Profiles: Profiles{
			TTL:     5 * time.Minute,
			Cleanup: 10 * time.Minute,
		},
		RefreshConcurrency: 4,
	}
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".skillsearch-history.json"
	}
	return filepath.Join(dir, "skillsearch", "history.json")
}

// Load builds the configuration. An empty path skips the YAML file; a
// missing file is an error only when the path was given explicitly.
func Load(path string) (*Config, error) {
	return load(path, ".env")
}

func load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"API_BASE_URL":      &cfg.APIBaseURL,
		"SEARCH_PATH":       &cfg.SearchPath,
		"PROFILE_PATH":      &cfg.ProfilePath,
		"SESSION_TOKEN":     &cfg.SessionToken,
		"LOG_FILE":          &cfg.LogFile,
		"LOG_LEVEL":         &cfg.LogLevel,
		"HISTORY_BACKEND":   &cfg.History.Backend,
		"HISTORY_PATH":      &cfg.History.Path,
		"HISTORY_REDIS_URL": &cfg.History.RedisURL,
		"HISTORY_KEY":       &cfg.History.Key,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"HISTORY_CAPACITY":     &cfg.History.Capacity,
		"SUGGESTIONS_PER_PAGE": &cfg.Suggestions.PerPage,
		"SUGGESTIONS_LIMIT":    &cfg.Suggestions.Limit,
		"REFRESH_CONCURRENCY":  &cfg.RefreshConcurrency,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s must be an integer, got %q", envPrefix, name, v)
		}
		*dst = n
	}

	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT":  &cfg.RequestTimeout,
		"PROFILES_TTL":     &cfg.Profiles.TTL,
		"PROFILES_CLEANUP": &cfg.Profiles.Cleanup,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s must be a duration, got %q", envPrefix, name, v)
		}
		*dst = d
	}
	return nil
}
