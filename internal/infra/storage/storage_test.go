package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_Implementations(t *testing.T) {
	tests := []struct {
		name string
		open func(t *testing.T) KV
	}{
		{
			name: "memory",
			open: func(t *testing.T) KV { return NewMemoryKV() },
		},
		{
			name: "file",
			open: func(t *testing.T) KV {
				kv, err := NewFileKV(filepath.Join(t.TempDir(), "nested", "store.json"))
				require.NoError(t, err)
				return kv
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) KV {
				kv, err := NewSQLiteKV(":memory:")
				require.NoError(t, err)
				return kv
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := tt.open(t)
			defer kv.Close()

			_, err := kv.Get("musicPlaylist")
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, kv.Put("musicPlaylist", []byte(`[1]`)))
			got, err := kv.Get("musicPlaylist")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, kv.Put("musicPlaylist", []byte(`[1,2]`)))
			got, err = kv.Get("musicPlaylist")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			binary := []byte{0x00, 0xff, 0xfe, 'a', 0x80}
			require.NoError(t, kv.Put("raw", binary))
			got, err = kv.Get("raw")
			require.NoError(t, err)
			assert.Equal(t, binary, got)

			_, err = kv.Get("other")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestFileKV_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileKV(path)
	require.NoError(t, err)
	require.NoError(t, first.Put("k", []byte("v")))

	second, err := NewFileKV(path)
	require.NoError(t, err)
	got, err := second.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	kv, err := NewFileKV(path)
	require.NoError(t, err)

	_, err = kv.Get("k")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	require.NoError(t, kv.Put("k", []byte("v")))
	got, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestSQLiteKV_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixtape.db")

	first, err := NewSQLiteKV(path)
	require.NoError(t, err)
	require.NoError(t, first.Put("k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer second.Close()
	got, err := second.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestOpen(t *testing.T) {
	kv, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	_, err = Open("redis", "")
	assert.Error(t, err)
}
