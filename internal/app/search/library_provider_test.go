package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLibraryFile(t *testing.T, root string, parts ...string) {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
}

func TestLibraryProvider_Search(t *testing.T) {
	root := t.TempDir()
	writeLibraryFile(t, root, "Daft Punk", "Discovery", "One More Time.mp3")
	writeLibraryFile(t, root, "Daft Punk", "Discovery", "Aerodynamic.flac")
	writeLibraryFile(t, root, "Air", "Moon Safari", "La Femme d'Argent.ogg")
	writeLibraryFile(t, root, "Air", "Moon Safari", "cover.jpg")

	p, err := NewLibraryProvider(map[string]any{"dir": root})
	require.NoError(t, err)
	assert.Equal(t, "library", p.Name())

	got, err := p.Search(context.Background(), "daft")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tr := range got {
		assert.Equal(t, "Daft Punk", tr.Artist)
		assert.Equal(t, "Discovery", tr.Album)
		assert.Equal(t, "0:00", tr.Duration)
		assert.Contains(t, tr.AudioURL, "file://")
	}

	got, err = p.Search(context.Background(), "moon safari")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "La Femme d'Argent", got[0].Title)

	got, err = p.Search(context.Background(), "jpg")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLibraryProvider_MaxFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a1.mp3", "a2.mp3", "a3.mp3"} {
		writeLibraryFile(t, root, "Artist", "Album", name)
	}

	p, err := NewLibraryProvider(map[string]any{"dir": root, "max_files": 2})
	require.NoError(t, err)

	got, err := p.Search(context.Background(), "artist")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestNewLibraryProvider_RequiresDir(t *testing.T) {
	_, err := NewLibraryProvider(map[string]any{})
	assert.Error(t, err)
}
