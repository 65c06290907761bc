package search

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
	"github.com/osa030/mixtape/internal/infra/audiotag"
)

type LibraryProviderConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir" validate:"required"`
	MaxFiles int    `yaml:"max_files" mapstructure:"max_files" default:"5000" validate:"gt=0"`
}

// LibraryProvider searches audio files under a local directory.
// The directory is scanned on the first search and cached.
type LibraryProvider struct {
	config *LibraryProviderConfig

	mu      sync.Mutex
	scanned bool
	tracks  []track.Track
}

// NewLibraryProvider creates a library provider from map settings.
func NewLibraryProvider(settings map[string]any) (*LibraryProvider, error) {
	var config LibraryProviderConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	zlog.Debug().Msgf("library provider config: %+v", config)
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return &LibraryProvider{config: &config}, nil
}

// Search filters the scanned library.
func (p *LibraryProvider) Search(ctx context.Context, query string) ([]track.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.scanned {
		tracks, err := p.scan(ctx)
		if err != nil {
			return nil, err
		}
		p.tracks = tracks
		p.scanned = true
	}
	return filter(p.tracks, query), nil
}

// Name returns the provider name.
func (p *LibraryProvider) Name() string {
	return "library"
}

func (p *LibraryProvider) scan(ctx context.Context) ([]track.Track, error) {
	tracks := make([]track.Track, 0)
	err := filepath.WalkDir(p.config.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			zlog.Warn().Msgf("library: skipping %s: %v", path, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !audiotag.IsAudioFile(path) {
			return nil
		}
		if len(tracks) >= p.config.MaxFiles {
			return filepath.SkipAll
		}
		t, err := audiotag.Read(path)
		if err != nil {
			zlog.Warn().Msgf("library: skipping %s: %v", path, err)
			return nil
		}
		tracks = append(tracks, t)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", p.config.Dir)
	}
	zlog.Info().Msgf("library: scanned %d tracks in %s", len(tracks), p.config.Dir)
	return tracks, nil
}
