// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig            `yaml:"server"`
	Storage  StorageConfig           `yaml:"storage"`
	Search   SearchConfig            `yaml:"search"`
	Playback PlaybackConfig          `yaml:"playback"`
	Filters  map[string]FilterConfig `yaml:"filters"`
	Messages MessagesConfig          `yaml:"messages"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr         string      `yaml:"addr" default:"127.0.0.1:7878" validate:"required"`
	ShareBaseURL string      `yaml:"share_base_url" default:"http://localhost:7878/" validate:"required,url"`
	MetricsPath  string      `yaml:"metrics_path" default:"/metrics" validate:"startswith=/"`
	Hooks        HooksConfig `yaml:"hooks"`
}

// HooksConfig holds shell commands run around the server lifetime.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// StorageConfig represents playlist persistence configuration.
type StorageConfig struct {
	Driver string `yaml:"driver" default:"file" validate:"oneof=file sqlite memory"`
	Path   string `yaml:"path"` // Empty uses a file under the user config directory
	Key    string `yaml:"key" default:"musicPlaylist" validate:"required"`
}

// SearchConfig represents search configuration.
type SearchConfig struct {
	MinQueryLength int              `yaml:"min_query_length" default:"2" validate:"gte=1"`
	TimeoutMs      int              `yaml:"timeout_ms" default:"10000" validate:"gt=0"`
	Providers      []ProviderConfig `yaml:"providers" validate:"dive"`
}

// ProviderConfig represents a single search provider configuration.
type ProviderConfig struct {
	Type        string         `yaml:"type" validate:"required,oneof=catalog library"`
	DisplayName string         `yaml:"display_name" validate:"required"`
	Settings    map[string]any `yaml:"settings"`
}

// PlaybackConfig represents the simulated player configuration.
type PlaybackConfig struct {
	TickIntervalMs    int `yaml:"tick_interval_ms" default:"250" validate:"gte=10,lte=5000"`
	DefaultTrackSec   int `yaml:"default_track_sec" default:"180" validate:"gte=1"`
	ProgressPerSecond int `yaml:"progress_per_second" default:"4" validate:"gte=1,lte=60"`
}

// FilterConfig represents a filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// MessagesConfig represents user-facing messages. Fields ending in a %s verb
// receive the track title.
type MessagesConfig struct {
	BannerMs              int    `yaml:"banner_ms" default:"3000" validate:"gte=0"`
	DefaultError          string `yaml:"default_error" default:"Something went wrong"`
	Added                 string `yaml:"added" default:"\"%s\" added to your playlist!"`
	Removed               string `yaml:"removed" default:"\"%s\" removed from your playlist!"`
	Updated               string `yaml:"updated" default:"\"%s\" updated"`
	NowPlaying            string `yaml:"now_playing" default:"Now playing: \"%s\""`
	DuplicateTrack        string `yaml:"duplicate_track" default:"This song is already in your playlist!"`
	DurationLimitExceeded string `yaml:"duration_limit_exceeded" default:"This song's length is outside the allowed range"`
	EmptyPlaylist         string `yaml:"empty_playlist" default:"Your playlist is empty! Add some songs first."`
	QueryTooShort         string `yaml:"query_too_short" default:"Please enter at least 2 characters to search"`
	NoResults             string `yaml:"no_results" default:"No songs found for \"%s\". Try another search term."`
	ShareLoaded           string `yaml:"share_loaded" default:"Shared playlist loaded successfully!"`
	ShareInvalid          string `yaml:"share_invalid" default:"That share link could not be read"`
	ShareNotEmpty         string `yaml:"share_not_empty" default:"Shared playlists can only be loaded into an empty playlist"`
	PlaybackFailed        string `yaml:"playback_failed" default:"This song could not be played"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	_ = cfg.finish()
	return &cfg
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) finish() error {
	// Override with environment variables
	c.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	if len(c.Search.Providers) == 0 {
		c.Search.Providers = []ProviderConfig{{Type: "catalog", DisplayName: "Catalog"}}
	}

	// Validate configuration
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("MIXTAPE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("MIXTAPE_SHARE_BASE_URL"); v != "" {
		c.Server.ShareBaseURL = v
	}
	if v := os.Getenv("MIXTAPE_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("MIXTAPE_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// StoragePath returns the configured storage path or the per-driver default.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" || c.Storage.Driver == "memory" {
		return c.Storage.Path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	name := "playlist.json"
	if c.Storage.Driver == "sqlite" {
		name = "mixtape.db"
	}
	return filepath.Join(dir, "mixtape", name)
}

// GetMessage returns the message for the given code.
func (c *Config) GetMessage(code string) string {
	switch code {
	case "added":
		return c.Messages.Added
	case "removed":
		return c.Messages.Removed
	case "updated":
		return c.Messages.Updated
	case "now_playing":
		return c.Messages.NowPlaying
	case "duplicate_track":
		return c.Messages.DuplicateTrack
	case "duration_limit_exceeded":
		return c.Messages.DurationLimitExceeded
	case "empty_playlist":
		return c.Messages.EmptyPlaylist
	case "query_too_short":
		return c.Messages.QueryTooShort
	case "no_results":
		return c.Messages.NoResults
	case "share_loaded":
		return c.Messages.ShareLoaded
	case "share_invalid":
		return c.Messages.ShareInvalid
	case "share_not_empty":
		return c.Messages.ShareNotEmpty
	case "playback_failed":
		return c.Messages.PlaybackFailed
	default:
		return c.Messages.DefaultError
	}
}

// BannerDuration returns how long transient messages stay visible.
func (c *Config) BannerDuration() time.Duration {
	return time.Duration(c.Messages.BannerMs) * time.Millisecond
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}

// GetFilterSettings returns the settings for a filter.
func (c *Config) GetFilterSettings(filterName string) map[string]any {
	if f, ok := c.Filters[filterName]; ok {
		return f.Settings
	}
	return nil
}
