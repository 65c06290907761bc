// Package persist mirrors the playlist to a key-value store and encodes
// playlists as shareable tokens.
package persist

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
	"github.com/osa030/mixtape/internal/infra/storage"
)

// DefaultKey is the storage key holding the playlist.
const DefaultKey = "musicPlaylist"

// Adapter loads and saves the track sequence under a single key.
type Adapter struct {
	kv  storage.KV
	key string
}

// NewAdapter creates an adapter. An empty key uses DefaultKey.
func NewAdapter(kv storage.KV, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key}
}

// Load returns the stored tracks. Missing, null or corrupt data gives an empty sequence.
func (a *Adapter) Load() []track.Track {
	data, err := a.kv.Get(a.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			zlog.Warn().Err(err).Msgf("persist: failed to read key %s", a.key)
		}
		return []track.Track{}
	}

	tracks, err := decodeTracks(data)
	if err != nil {
		zlog.Warn().Err(err).Msgf("persist: discarding unreadable playlist under key %s", a.key)
		return []track.Track{}
	}
	return tracks
}

// Save overwrites the stored sequence.
func (a *Adapter) Save(tracks []track.Track) error {
	if tracks == nil {
		tracks = []track.Track{}
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return errors.Wrap(err, "failed to encode playlist")
	}
	if err := a.kv.Put(a.key, data); err != nil {
		return errors.Wrap(err, "failed to store playlist")
	}
	zlog.Debug().Msgf("persist: saved %d tracks", len(tracks))
	return nil
}

// decodeTracks accepts a JSON array of tracks. "null" decodes to empty;
// share tokens reject it before getting here.
func decodeTracks(data []byte) ([]track.Track, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return []track.Track{}, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("playlist data is not a JSON array")
	}
	var tracks []track.Track
	if err := json.Unmarshal(trimmed, &tracks); err != nil {
		return nil, errors.Wrap(err, "failed to decode playlist")
	}
	if tracks == nil {
		tracks = []track.Track{}
	}
	return tracks, nil
}
