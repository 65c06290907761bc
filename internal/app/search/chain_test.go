package search

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/mixtape/internal/domain/track"
)

type stubProvider struct {
	tracks []track.Track
	err    error
	calls  int
}

func (s *stubProvider) Search(context.Context, string) ([]track.Track, error) {
	s.calls++
	return s.tracks, s.err
}

func (s *stubProvider) Name() string { return "stub" }

func song(title, artist string) track.Track {
	return track.Track{Title: title, Artist: artist, Album: "Album", Duration: "3:00", AudioURL: "https://example.com/a.mp3"}
}

func TestChain_Search(t *testing.T) {
	tests := []struct {
		name      string
		providers []*stubProvider
		expected  []string
		wantErr   bool
	}{
		{
			name: "merges and drops repeated songs",
			providers: []*stubProvider{
				{tracks: []track.Track{song("A1", "X"), song("B1", "X")}},
				{tracks: []track.Track{song("a1", "x"), song("C1", "X")}},
			},
			expected: []string{"A1", "B1", "C1"},
		},
		{
			name: "skips failing provider",
			providers: []*stubProvider{
				{err: errors.New("boom")},
				{tracks: []track.Track{song("C1", "X")}},
			},
			expected: []string{"C1"},
		},
		{
			name: "all providers fail",
			providers: []*stubProvider{
				{err: errors.New("boom")},
				{err: errors.New("bang")},
			},
			wantErr: true,
		},
		{
			name:     "no providers",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pms := make([]ProviderWithMetadata, 0, len(tt.providers))
			for i, p := range tt.providers {
				pms = append(pms, ProviderWithMetadata{Provider: p, DisplayName: string(rune('A' + i))})
			}

			got, err := NewChain(pms).Search(context.Background(), "x")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, tr := range got {
				names = append(names, tr.Title)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestChain_Search_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	second := &stubProvider{tracks: []track.Track{song("A1", "X")}}
	chain := NewChain([]ProviderWithMetadata{
		{Provider: &stubProvider{err: context.Canceled}, DisplayName: "first"},
		{Provider: second, DisplayName: "second"},
	})

	_, err := chain.Search(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, second.calls)
}
