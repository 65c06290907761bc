// Package audiotag reads track metadata from local audio files.
package audiotag

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/track"
)

// UnknownDuration is used for local files; tags carry no length.
const UnknownDuration = "0:00"

var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".ogg":  true,
	".wav":  true,
}

// IsAudioFile reports whether the path has a known audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Read builds a track from the tags of the file at path. Missing tags fall
// back to the Artist/Album/Title.ext directory layout.
func Read(path string) (track.Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return track.Track{}, errors.Wrapf(err, "failed to resolve %s", path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return track.Track{}, errors.Wrapf(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return track.Track{}, errors.Newf("%s is a directory", path)
	}

	t := fromPath(abs)

	f, err := os.Open(abs)
	if err != nil {
		return track.Track{}, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		zlog.Debug().Msgf("audiotag: no readable tags in %s, using path: %v", abs, err)
	} else {
		if v := strings.TrimSpace(meta.Title()); v != "" {
			t.Title = v
		}
		if v := strings.TrimSpace(meta.Artist()); v != "" {
			t.Artist = v
		} else if v := strings.TrimSpace(meta.AlbumArtist()); v != "" {
			t.Artist = v
		}
		if v := strings.TrimSpace(meta.Album()); v != "" {
			t.Album = v
		}
	}

	return t.Normalize(), nil
}

// FileURL returns the file:// URL for an absolute path.
func FileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

func fromPath(abs string) track.Track {
	base := filepath.Base(abs)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	album := filepath.Base(filepath.Dir(abs))
	artist := filepath.Base(filepath.Dir(filepath.Dir(abs)))

	return track.Track{
		Title:    title,
		Artist:   artist,
		Album:    album,
		Duration: UnknownDuration,
		AudioURL: FileURL(abs),
	}
}
