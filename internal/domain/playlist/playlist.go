// Package playlist provides the Playlist store: ordered tracks, the current
// selection pointer and the mirrored transport flag.
package playlist

import (
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
)

// NoSelection is the current index when no track is selected.
const NoSelection = -1

// Errors. An empty-playlist error also matches ErrIndexOutOfRange.
var (
	ErrDuplicate       = errors.New("song already in playlist")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyPlaylist   = errors.New("playlist is empty")
	ErrNotEmpty        = errors.New("playlist is not empty")
)

// Persister mirrors the track sequence to durable storage.
// Load never fails: missing or corrupt data yields an empty sequence.
type Persister interface {
	Load() []track.Track
	Save(tracks []track.Track) error
}

// Snapshot is a point-in-time copy of the store.
type Snapshot struct {
	Tracks       []track.Track
	CurrentIndex int
	IsPlaying    bool
}

// Current returns the selected track, if any.
func (s Snapshot) Current() (track.Track, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Tracks) {
		return track.Track{}, false
	}
	return s.Tracks[s.CurrentIndex], true
}

// Store holds the playlist and enforces its invariants:
// currentIndex is -1 or a valid index, and no two tracks share an identity.
type Store struct {
	mu sync.RWMutex

	tracks       []track.Track
	currentIndex int
	isPlaying    bool

	persister Persister
}

// NewStore creates a store seeded from the persister.
// A nil persister gives an in-memory store.
func NewStore(p Persister) *Store {
	s := &Store{
		tracks:       make([]track.Track, 0),
		currentIndex: NoSelection,
		persister:    p,
	}
	if p != nil {
		for _, t := range p.Load() {
			if s.indexOfLocked(t) >= 0 {
				zlog.Warn().Msgf("playlist: dropping duplicate from storage: %s", t)
				continue
			}
			s.tracks = append(s.tracks, t)
		}
	}
	zlog.Debug().Msgf("playlist: loaded %d tracks", len(s.tracks))
	return s
}

// Add appends a track unless one with the same identity exists.
func (s *Store) Add(t track.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t = t.Normalize()
	if s.indexOfLocked(t) >= 0 {
		return errors.Wrapf(ErrDuplicate, "%s", t)
	}
	s.tracks = append(s.tracks, t)
	s.syncLocked()
	return nil
}

// RemoveAt deletes the track at index and returns it.
// Removing the current track clears the selection and the playing flag;
// removing a track before it shifts the selection down by one.
func (s *Store) RemoveAt(index int) (track.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return track.Track{}, err
	}

	removed := s.tracks[index]
	switch {
	case index == s.currentIndex:
		s.currentIndex = NoSelection
		s.isPlaying = false
	case index < s.currentIndex:
		s.currentIndex--
	}
	s.tracks = append(s.tracks[:index], s.tracks[index+1:]...)
	s.syncLocked()
	return removed, nil
}

// UpdateAt replaces the fields of the track at index.
// The new fields are validated but not checked against other entries' identities.
func (s *Store) UpdateAt(index int, t track.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	if err := t.Validate(); err != nil {
		return err
	}
	s.tracks[index] = t.Normalize()
	s.syncLocked()
	return nil
}

// SetCurrent selects a track. Indexes past either end wrap: negative selects
// the last track and len or more selects the first. Fails only when empty.
func (s *Store) SetCurrent(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setCurrentLocked(index)
}

// Advance moves the selection forward, wrapping to the first track.
func (s *Store) Advance() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.setCurrentLocked(s.currentIndex + 1)
	return idx, err == nil
}

// Retreat moves the selection backward, wrapping to the last track.
func (s *Store) Retreat() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.setCurrentLocked(s.currentIndex - 1)
	return idx, err == nil
}

// ClearCurrent drops the selection and the playing flag.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentIndex = NoSelection
	s.isPlaying = false
}

// SetPlaying mirrors the player transport state.
func (s *Store) SetPlaying(playing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isPlaying = playing && s.currentIndex != NoSelection
}

// ReplaceIfEmpty loads tracks into an empty store. Repeated identities keep
// their first occurrence. It returns the number of tracks stored.
func (s *Store) ReplaceIfEmpty(tracks []track.Track) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tracks) > 0 {
		return 0, ErrNotEmpty
	}
	for _, t := range tracks {
		t = t.Normalize()
		if s.indexOfLocked(t) >= 0 {
			continue
		}
		s.tracks = append(s.tracks, t)
	}
	s.currentIndex = NoSelection
	s.isPlaying = false
	s.syncLocked()
	return len(s.tracks), nil
}

// Contains reports whether a track with the same identity is stored.
func (s *Store) Contains(t track.Track) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOfLocked(t.Normalize()) >= 0
}

// Track returns the track at index.
func (s *Store) Track(index int) (track.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkIndexLocked(index); err != nil {
		return track.Track{}, err
	}
	return s.tracks[index], nil
}

// Tracks returns a copy of all tracks.
func (s *Store) Tracks() []track.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]track.Track, len(s.tracks))
	copy(result, s.tracks)
	return result
}

// Len returns the number of tracks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}

// CurrentIndex returns the selected index or NoSelection.
func (s *Store) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndex
}

// IsPlaying returns the mirrored transport state.
func (s *Store) IsPlaying() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isPlaying
}

// Snapshot returns a copy of the whole store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tracks := make([]track.Track, len(s.tracks))
	copy(tracks, s.tracks)
	return Snapshot{
		Tracks:       tracks,
		CurrentIndex: s.currentIndex,
		IsPlaying:    s.isPlaying,
	}
}

func (s *Store) setCurrentLocked(index int) (int, error) {
	n := len(s.tracks)
	if n == 0 {
		return NoSelection, errors.Mark(ErrEmptyPlaylist, ErrIndexOutOfRange)
	}
	if index < 0 {
		index = n - 1
	} else if index >= n {
		index = 0
	}
	s.currentIndex = index
	return index, nil
}

func (s *Store) checkIndexLocked(index int) error {
	if len(s.tracks) == 0 {
		return errors.Mark(errors.Wrapf(ErrEmptyPlaylist, "index %d", index), ErrIndexOutOfRange)
	}
	if index < 0 || index >= len(s.tracks) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d (len %d)", index, len(s.tracks))
	}
	return nil
}

func (s *Store) indexOfLocked(t track.Track) int {
	for i, existing := range s.tracks {
		if existing.SameSong(t) {
			return i
		}
	}
	return -1
}

// syncLocked writes the sequence through the persister. Failures are logged only.
func (s *Store) syncLocked() {
	if s.persister == nil {
		return
	}
	snapshot := make([]track.Track, len(s.tracks))
	copy(snapshot, s.tracks)
	if err := s.persister.Save(snapshot); err != nil {
		zlog.Warn().Err(err).Msg("playlist: failed to persist playlist")
	}
}
