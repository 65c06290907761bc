package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogProvider_BuiltIn(t *testing.T) {
	p, err := NewCatalogProvider(map[string]any{"latency_ms": 0})
	require.NoError(t, err)

	assert.Equal(t, "catalog", p.Name())
	assert.Len(t, p.Tracks(), 6)
	for _, tr := range p.Tracks() {
		assert.NoError(t, tr.Validate(), tr.String())
	}
}

func TestCatalogProvider_Search(t *testing.T) {
	p, err := NewCatalogProvider(map[string]any{"latency_ms": 0})
	require.NoError(t, err)

	tests := []struct {
		query    string
		expected []string
	}{
		{query: "weeknd", expected: []string{"Blinding Lights", "Save Your Tears"}},
		{query: "after hours", expected: []string{"Blinding Lights", "Save Your Tears"}},
		{query: "MOOD", expected: []string{"Mood"}},
		{query: "dua", expected: []string{"Levitating"}},
		{query: "zzzz", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := p.Search(context.Background(), tt.query)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, tr := range got {
				names = append(names, tr.Title)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestCatalogProvider_LatencyHonorsContext(t *testing.T) {
	p, err := NewCatalogProvider(map[string]any{"latency_ms": 5000})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = p.Search(ctx, "mood")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewCatalogProvider_File(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.toml")
	require.NoError(t, os.WriteFile(valid, []byte(`
[[track]]
title = "Custom"
artist = "Band"
duration = "4:05"
audio_url = "https://example.com/custom.mp3"
`), 0o644))

	p, err := NewCatalogProvider(map[string]any{"path": valid, "latency_ms": 0})
	require.NoError(t, err)
	require.Len(t, p.Tracks(), 1)
	assert.Equal(t, "Unknown Album", p.Tracks()[0].Album)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte(`
[[track]]
title = "X"
artist = "Band"
duration = "4:05"
audio_url = "https://example.com/x.mp3"
`), 0o644))

	_, err = NewCatalogProvider(map[string]any{"path": invalid})
	assert.Error(t, err)

	_, err = NewCatalogProvider(map[string]any{"path": filepath.Join(dir, "missing.toml")})
	assert.Error(t, err)
}

func TestNewCatalogProvider_InvalidSettings(t *testing.T) {
	_, err := NewCatalogProvider(map[string]any{"latency_ms": -1})
	assert.Error(t, err)
}
