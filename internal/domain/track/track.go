// Package track provides the Track domain entity.
package track

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// DefaultAlbum is used when a track has a blank album.
const DefaultAlbum = "Unknown Album"

// Track represents one song in the playlist.
// The JSON layout is the persisted and shared wire format.
type Track struct {
	Title    string `json:"title" validate:"min=2"`
	Artist   string `json:"artist" validate:"min=2"`
	Album    string `json:"album"`
	Duration string `json:"duration" validate:"mmss"` // Display duration, M:SS or MM:SS
	AudioURL string `json:"audioUrl" validate:"url"`
}

// SameSong reports whether two tracks share the (title, artist) identity.
// Comparison is case-insensitive.
func (t Track) SameSong(other Track) bool {
	return strings.EqualFold(t.Title, other.Title) && strings.EqualFold(t.Artist, other.Artist)
}

// Normalize returns a copy with surrounding whitespace removed and the album defaulted.
func (t Track) Normalize() Track {
	t.Title = strings.TrimSpace(t.Title)
	t.Artist = strings.TrimSpace(t.Artist)
	t.Album = strings.TrimSpace(t.Album)
	t.Duration = strings.TrimSpace(t.Duration)
	t.AudioURL = strings.TrimSpace(t.AudioURL)
	if t.Album == "" {
		t.Album = DefaultAlbum
	}
	return t
}

// Seconds returns the display duration in seconds.
func (t Track) Seconds() (int, error) {
	d, err := ParseDuration(t.Duration)
	if err != nil {
		return 0, err
	}
	return int(d / time.Second), nil
}

func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.Title, t.Artist)
}

// ErrValidation marks every *ValidationError.
var ErrValidation = errors.New("validation failed")

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the message for the given field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var fieldMessages = map[string]string{
	"title":    "Title must be at least 2 characters",
	"artist":   "Artist must be at least 2 characters",
	"duration": "Duration must be in MM:SS format",
	"audioUrl": "Enter a valid URL (must start with http:// or https://)",
}

var durationPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("mmss", func(fl validator.FieldLevel) bool {
			return durationPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks user-editable fields after normalization.
// It returns a *ValidationError listing every failing field.
func (t Track) Validate() error {
	t = t.Normalize()
	err := getValidator().Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "failed to validate track")
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// ParseDuration parses "M:SS" or "MM:SS" into a duration.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if !durationPattern.MatchString(s) {
		return 0, errors.Newf("invalid duration %q", s)
	}
	parts := strings.SplitN(s, ":", 2)
	m, _ := strconv.Atoi(parts[0])
	sec, _ := strconv.Atoi(parts[1])
	return time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatTime renders seconds as M:SS. Negative values render as 0:00.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration renders a duration as M:SS.
func FormatDuration(d time.Duration) string {
	return FormatTime(d.Seconds())
}
