package track

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrack() Track {
	return Track{
		Title:    "Blinding Lights",
		Artist:   "The Weeknd",
		Album:    "After Hours",
		Duration: "3:20",
		AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
	}
}

func TestTrack_SameSong(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Track
		expected bool
	}{
		{
			name:     "exact match",
			a:        Track{Title: "Mood", Artist: "24kGoldn"},
			b:        Track{Title: "Mood", Artist: "24kGoldn"},
			expected: true,
		},
		{
			name:     "case insensitive",
			a:        Track{Title: "MOOD", Artist: "24KGOLDN"},
			b:        Track{Title: "mood", Artist: "24kgoldn"},
			expected: true,
		},
		{
			name:     "album is ignored",
			a:        Track{Title: "Mood", Artist: "24kGoldn", Album: "El Dorado"},
			b:        Track{Title: "Mood", Artist: "24kGoldn", Album: "Other"},
			expected: true,
		},
		{
			name:     "different artist",
			a:        Track{Title: "Mood", Artist: "24kGoldn"},
			b:        Track{Title: "Mood", Artist: "Someone Else"},
			expected: false,
		},
		{
			name:     "different title",
			a:        Track{Title: "Mood", Artist: "24kGoldn"},
			b:        Track{Title: "Levitating", Artist: "24kGoldn"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.SameSong(tt.b))
		})
	}
}

func TestTrack_Normalize(t *testing.T) {
	tr := Track{
		Title:    "  Levitating ",
		Artist:   " Dua Lipa",
		Album:    "   ",
		Duration: " 3:23 ",
		AudioURL: " https://example.com/a.mp3 ",
	}

	n := tr.Normalize()
	assert.Equal(t, "Levitating", n.Title)
	assert.Equal(t, "Dua Lipa", n.Artist)
	assert.Equal(t, DefaultAlbum, n.Album)
	assert.Equal(t, "3:23", n.Duration)
	assert.Equal(t, "https://example.com/a.mp3", n.AudioURL)
}

func TestTrack_Validate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Track)
		wantFields []string
	}{
		{
			name:   "valid track",
			modify: func(*Track) {},
		},
		{
			name:   "blank album is allowed",
			modify: func(tr *Track) { tr.Album = "" },
		},
		{
			name:       "short title",
			modify:     func(tr *Track) { tr.Title = "A" },
			wantFields: []string{"title"},
		},
		{
			name:       "title padded with spaces is trimmed first",
			modify:     func(tr *Track) { tr.Title = "  A  " },
			wantFields: []string{"title"},
		},
		{
			name:       "short artist",
			modify:     func(tr *Track) { tr.Artist = "X" },
			wantFields: []string{"artist"},
		},
		{
			name:       "single digit seconds rejected",
			modify:     func(tr *Track) { tr.Duration = "5:7" },
			wantFields: []string{"duration"},
		},
		{
			name:   "two digit minutes accepted",
			modify: func(tr *Track) { tr.Duration = "12:07" },
		},
		{
			name:       "relative url rejected",
			modify:     func(tr *Track) { tr.AudioURL = "songs/a.mp3" },
			wantFields: []string{"audioUrl"},
		},
		{
			name:   "file url accepted",
			modify: func(tr *Track) { tr.AudioURL = "file:///music/a.mp3" },
		},
		{
			name: "every field invalid",
			modify: func(tr *Track) {
				tr.Title = ""
				tr.Artist = ""
				tr.Duration = "long"
				tr.AudioURL = "nope"
			},
			wantFields: []string{"title", "artist", "duration", "audioUrl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrack()
			tt.modify(&tr)

			err := tr.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, len(verr.Fields))
			for i, f := range verr.Fields {
				got[i] = f.Field
				assert.NotEmpty(t, f.Message)
			}
			assert.ElementsMatch(t, tt.wantFields, got)
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	tr := validTrack()
	tr.Duration = "5:7"

	var verr *ValidationError
	require.True(t, errors.As(tr.Validate(), &verr))
	assert.Equal(t, "Duration must be in MM:SS format", verr.Message("duration"))
	assert.Empty(t, verr.Message("title"))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{input: "3:20", expected: 3*time.Minute + 20*time.Second},
		{input: "0:00", expected: 0},
		{input: "12:05", expected: 12*time.Minute + 5*time.Second},
		{input: "5:7", wantErr: true},
		{input: "123:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{seconds: 0, expected: "0:00"},
		{seconds: 5.9, expected: "0:05"},
		{seconds: 65, expected: "1:05"},
		{seconds: 200, expected: "3:20"},
		{seconds: -3, expected: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTime(tt.seconds))
		})
	}
}
