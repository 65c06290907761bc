package search

import (
	"context"
	"sync"

	"github.com/osa030/mixtape/internal/domain/track"
)

// Tracker numbers search requests so results of a superseded query are discarded.
type Tracker struct {
	mu     sync.Mutex
	latest uint64
}

// Begin starts a request and returns its ticket. Earlier tickets become stale.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	return t.latest
}

// IsLatest reports whether the ticket belongs to the most recent request.
func (t *Tracker) IsLatest(ticket uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ticket == t.latest
}

// Run searches with a fresh ticket and returns ErrSuperseded when a newer
// request began before this one finished.
func (t *Tracker) Run(ctx context.Context, p Provider, query string) ([]track.Track, error) {
	ticket := t.Begin()
	tracks, err := p.Search(ctx, query)
	if !t.IsLatest(ticket) {
		return nil, ErrSuperseded
	}
	return tracks, err
}
