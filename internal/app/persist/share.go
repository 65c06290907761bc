package persist

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/mixtape/internal/domain/track"
)

// ShareParam is the URL query parameter carrying a share token.
const ShareParam = "playlist"

// ErrDecode marks every share token decoding failure.
var ErrDecode = errors.New("invalid share token")

var tokenEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// EncodeShareToken encodes tracks as standard, padded base64 of their JSON array.
func EncodeShareToken(tracks []track.Track) (string, error) {
	if tracks == nil {
		tracks = []track.Track{}
	}
	data, err := json.Marshal(tracks)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode playlist")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeShareToken reverses EncodeShareToken. Tokens in the URL-safe
// alphabet and without padding are also accepted.
func DecodeShareToken(token string) ([]track.Track, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.Mark(errors.New("share token is empty"), ErrDecode)
	}

	var data []byte
	var err error
	for _, enc := range tokenEncodings {
		if data, err = enc.DecodeString(token); err == nil {
			break
		}
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "share token is not valid base64"), ErrDecode)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.Mark(errors.New("share token does not hold a JSON array"), ErrDecode)
	}
	tracks, err := decodeTracks(data)
	if err != nil {
		return nil, errors.Mark(err, ErrDecode)
	}
	return tracks, nil
}

// ShareURL returns base with the token set as the playlist query parameter.
func ShareURL(base string, tracks []track.Track) (string, error) {
	token, err := EncodeShareToken(tracks)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrapf(err, "invalid share base URL %q", base)
	}
	q := u.Query()
	q.Set(ShareParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// TokenFromInput extracts the token from a share URL, or returns the input
// unchanged when it is a bare token.
func TokenFromInput(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "://") && !strings.Contains(input, "?") {
		return input
	}
	u, err := url.Parse(input)
	if err != nil {
		return input
	}
	if token := u.Query().Get(ShareParam); token != "" {
		// Links built without query escaping turn '+' into ' '.
		return strings.ReplaceAll(token, " ", "+")
	}
	return input
}
