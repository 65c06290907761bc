package search

import (
	"context"
	_ "embed"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
)

//go:embed catalog.toml
var defaultCatalog string

type CatalogProviderConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`                                            // TOML catalog file; empty uses the built-in catalog
	LatencyMS int    `yaml:"latency_ms" mapstructure:"latency_ms" default:"800" validate:"gte=0"` // Simulated response time
}

type catalogFile struct {
	Tracks []catalogEntry `toml:"track"`
}

type catalogEntry struct {
	Title    string `toml:"title"`
	Artist   string `toml:"artist"`
	Album    string `toml:"album"`
	Duration string `toml:"duration"`
	AudioURL string `toml:"audio_url"`
}

// CatalogProvider searches a fixed catalog after a simulated delay.
type CatalogProvider struct {
	tracks  []track.Track
	latency time.Duration
}

// NewCatalogProvider creates a catalog provider from map settings.
func NewCatalogProvider(settings map[string]any) (*CatalogProvider, error) {
	// Defaults first so an explicit zero latency survives decoding.
	var config CatalogProviderConfig
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	zlog.Debug().Msgf("catalog provider config: %+v", config)
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	var file catalogFile
	if config.Path != "" {
		if _, err := toml.DecodeFile(config.Path, &file); err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog %s", config.Path)
		}
	} else if _, err := toml.Decode(defaultCatalog, &file); err != nil {
		return nil, errors.Wrap(err, "failed to read built-in catalog")
	}

	tracks := make([]track.Track, 0, len(file.Tracks))
	for i, e := range file.Tracks {
		t := track.Track{
			Title:    e.Title,
			Artist:   e.Artist,
			Album:    e.Album,
			Duration: e.Duration,
			AudioURL: e.AudioURL,
		}.Normalize()
		if err := t.Validate(); err != nil {
			return nil, errors.Wrapf(err, "catalog entry %d (%s)", i+1, t)
		}
		tracks = append(tracks, t)
	}

	return NewCatalogProviderWithTracks(tracks, time.Duration(config.LatencyMS)*time.Millisecond), nil
}

// NewCatalogProviderWithTracks creates a catalog provider over the given tracks.
func NewCatalogProviderWithTracks(tracks []track.Track, latency time.Duration) *CatalogProvider {
	return &CatalogProvider{tracks: tracks, latency: latency}
}

// Search waits for the simulated latency and filters the catalog.
func (p *CatalogProvider) Search(ctx context.Context, query string) ([]track.Track, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return filter(p.tracks, query), nil
}

// Tracks returns the full catalog.
func (p *CatalogProvider) Tracks() []track.Track {
	result := make([]track.Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Name returns the provider name.
func (p *CatalogProvider) Name() string {
	return "catalog"
}
