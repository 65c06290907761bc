package audiotag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_FallsBackToPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Dua Lipa", "Future Nostalgia")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "Levitating.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Levitating", got.Title)
	assert.Equal(t, "Dua Lipa", got.Artist)
	assert.Equal(t, "Future Nostalgia", got.Album)
	assert.Equal(t, UnknownDuration, got.Duration)
	assert.Equal(t, FileURL(path), got.AudioURL)
	assert.NoError(t, got.Validate())
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)

	_, err = Read(t.TempDir())
	assert.Error(t, err)
}

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{path: "a.mp3", expected: true},
		{path: "a.FLAC", expected: true},
		{path: "a.txt", expected: false},
		{path: "mp3", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAudioFile(tt.path))
		})
	}
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "file:///music/My%20Song.mp3", FileURL("/music/My Song.mp3"))
}
