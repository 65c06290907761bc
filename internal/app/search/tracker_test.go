package search

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/mixtape/internal/domain/track"
)

// gatedProvider blocks each search until released.
type gatedProvider struct {
	started chan string
	release chan struct{}
}

func (g *gatedProvider) Search(_ context.Context, query string) ([]track.Track, error) {
	g.started <- query
	<-g.release
	return []track.Track{song(query, "Artist")}, nil
}

func (g *gatedProvider) Name() string { return "gated" }

func TestTracker_Tickets(t *testing.T) {
	var tr Tracker
	first := tr.Begin()
	assert.True(t, tr.IsLatest(first))

	second := tr.Begin()
	assert.False(t, tr.IsLatest(first))
	assert.True(t, tr.IsLatest(second))
}

func TestTracker_Run_DiscardsSupersededResults(t *testing.T) {
	var tr Tracker
	p := &gatedProvider{started: make(chan string), release: make(chan struct{})}

	type outcome struct {
		tracks []track.Track
		err    error
	}
	firstDone := make(chan outcome, 1)
	go func() {
		tracks, err := tr.Run(context.Background(), p, "first")
		firstDone <- outcome{tracks, err}
	}()
	require.Equal(t, "first", <-p.started)

	secondDone := make(chan outcome, 1)
	go func() {
		tracks, err := tr.Run(context.Background(), p, "second")
		secondDone <- outcome{tracks, err}
	}()
	require.Equal(t, "second", <-p.started)

	p.release <- struct{}{}
	first := <-firstDone
	assert.True(t, errors.Is(first.err, ErrSuperseded))
	assert.Nil(t, first.tracks)

	p.release <- struct{}{}
	second := <-secondDone
	require.NoError(t, second.err)
	require.Len(t, second.tracks, 1)
	assert.Equal(t, "second", second.tracks[0].Title)
}
