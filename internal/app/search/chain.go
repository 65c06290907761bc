package search

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
)

// ProviderWithMetadata wraps a provider with its display name.
type ProviderWithMetadata struct {
	Provider    Provider
	DisplayName string
}

// Chain queries every provider in order and merges their results.
// Tracks whose identity was already returned by an earlier provider are dropped.
type Chain struct {
	providers []ProviderWithMetadata
}

// NewChain creates a provider chain.
func NewChain(providers []ProviderWithMetadata) *Chain {
	return &Chain{providers: providers}
}

// Search returns the merged results. A failing provider is skipped unless all fail.
func (c *Chain) Search(ctx context.Context, query string) ([]track.Track, error) {
	result := make([]track.Track, 0)
	failures := 0

	for i, pm := range c.providers {
		tracks, err := pm.Provider.Search(ctx, query)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			zlog.Warn().Msgf("search: provider failed, trying next: index=%d provider=%s error=%v", i+1, pm.DisplayName, err)
			failures++
			continue
		}

		added := 0
		for _, t := range tracks {
			if containsSong(result, t) {
				continue
			}
			result = append(result, t)
			added++
		}
		zlog.Debug().Msgf("search: provider returned results: provider=%s count=%d added=%d", pm.DisplayName, len(tracks), added)
	}

	if len(c.providers) > 0 && failures == len(c.providers) {
		return nil, errors.New("all search providers failed")
	}
	return result, nil
}

// Name returns the chain name.
func (c *Chain) Name() string {
	return "provider_chain"
}

func containsSong(tracks []track.Track, t track.Track) bool {
	for _, existing := range tracks {
		if existing.SameSong(t) {
			return true
		}
	}
	return false
}
