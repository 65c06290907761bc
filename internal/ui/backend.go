package ui

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/api/mixtapev1/mixtapev1connect"
)

// Backend is the daemon surface the player drives.
type Backend interface {
	Search(ctx context.Context, query string) (*mixtapev1.SearchResponse, error)
	Add(ctx context.Context, t mixtapev1.Track) error
	Remove(ctx context.Context, index int) error
	Update(ctx context.Context, index int, t mixtapev1.Track) error
	Share(ctx context.Context) (string, error)
	TogglePlay(ctx context.Context) error
	Select(ctx context.Context, index int) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(ctx context.Context, position float64) error
	// Subscribe delivers notifications until ctx ends or the stream fails.
	Subscribe(ctx context.Context, out chan<- *mixtapev1.Notification) error
}

// Remote is a Backend over the connect clients.
type Remote struct {
	playlist *mixtapev1connect.PlaylistServiceClient
	playback *mixtapev1connect.PlaybackServiceClient
}

// NewRemote creates a backend talking to the daemon at baseURL.
func NewRemote(httpClient connect.HTTPClient, baseURL string) *Remote {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Remote{
		playlist: mixtapev1connect.NewPlaylistServiceClient(httpClient, baseURL),
		playback: mixtapev1connect.NewPlaybackServiceClient(httpClient, baseURL),
	}
}

func (r *Remote) Search(ctx context.Context, query string) (*mixtapev1.SearchResponse, error) {
	resp, err := r.playlist.Search(ctx, connect.NewRequest(&mixtapev1.SearchRequest{Query: query}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func (r *Remote) Add(ctx context.Context, t mixtapev1.Track) error {
	_, err := r.playlist.AddTrack(ctx, connect.NewRequest(&mixtapev1.AddTrackRequest{Track: t}))
	return err
}

func (r *Remote) Remove(ctx context.Context, index int) error {
	_, err := r.playlist.RemoveTrack(ctx, connect.NewRequest(&mixtapev1.RemoveTrackRequest{Index: index}))
	return err
}

func (r *Remote) Update(ctx context.Context, index int, t mixtapev1.Track) error {
	_, err := r.playlist.UpdateTrack(ctx, connect.NewRequest(&mixtapev1.UpdateTrackRequest{Index: index, Track: t}))
	return err
}

func (r *Remote) Share(ctx context.Context) (string, error) {
	resp, err := r.playlist.Share(ctx, connect.NewRequest(&mixtapev1.ShareRequest{}))
	if err != nil {
		return "", err
	}
	return resp.Msg.URL, nil
}

func (r *Remote) TogglePlay(ctx context.Context) error {
	_, err := r.playback.TogglePlay(ctx, connect.NewRequest(&mixtapev1.TogglePlayRequest{}))
	return err
}

func (r *Remote) Select(ctx context.Context, index int) error {
	_, err := r.playback.Select(ctx, connect.NewRequest(&mixtapev1.SelectRequest{Index: index}))
	return err
}

func (r *Remote) Next(ctx context.Context) error {
	_, err := r.playback.Next(ctx, connect.NewRequest(&mixtapev1.NextRequest{}))
	return err
}

func (r *Remote) Previous(ctx context.Context) error {
	_, err := r.playback.Previous(ctx, connect.NewRequest(&mixtapev1.PreviousRequest{}))
	return err
}

func (r *Remote) Seek(ctx context.Context, position float64) error {
	_, err := r.playback.Seek(ctx, connect.NewRequest(&mixtapev1.SeekRequest{Position: position}))
	return err
}

func (r *Remote) Subscribe(ctx context.Context, out chan<- *mixtapev1.Notification) error {
	stream, err := r.playback.Subscribe(ctx, connect.NewRequest(&mixtapev1.SubscribeRequest{}))
	if err != nil {
		return err
	}
	defer stream.Close()

	for stream.Receive() {
		select {
		case out <- stream.Msg():
		case <-ctx.Done():
			return nil
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "notification stream failed")
	}
	return nil
}

// ErrorMessage returns the user-facing text of an RPC error.
func ErrorMessage(err error) string {
	var cerr *connect.Error
	if errors.As(err, &cerr) && cerr.Message() != "" {
		return cerr.Message()
	}
	return err.Error()
}
