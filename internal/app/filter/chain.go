package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
)

// SettingsSource reports which configurable filters are enabled.
type SettingsSource interface {
	IsFilterEnabled(name string) bool
	GetFilterSettings(name string) map[string]any
}

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain() *Chain {
	return &Chain{
		filters: make([]Filter, 0),
	}
}

// NewChainFromConfig builds the chain: the duplicate filter first, then every
// registered filter the configuration enables, in name order.
func NewChainFromConfig(src SettingsSource) (*Chain, error) {
	c := NewChain()
	c.Add(NewDuplicateTrackFilter())

	for _, name := range RegisteredNames() {
		if !src.IsFilterEnabled(name) {
			continue
		}
		f := registry[name]()
		if err := f.ValidateConfig(src.GetFilterSettings(name)); err != nil {
			return nil, errors.Wrapf(err, "invalid settings for filter %s", name)
		}
		c.Add(f)
		zlog.Info().Msgf("filter: enabled %s", name)
	}
	return c, nil
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence.
// Returns immediately if any filter rejects the candidate.
func (c *Chain) Execute(ctx context.Context, candidate track.Track, existing []track.Track) Result {
	for _, f := range c.filters {
		result := f.Check(ctx, candidate, existing)
		if !result.Accepted {
			zlog.Debug().Msgf("filter: %s rejected %s: code=%s", f.Name(), candidate, result.Code)
			return result
		}
	}
	return Accept()
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
