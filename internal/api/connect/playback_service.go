package connect

import (
	"context"
	"sync"

	"connectrpc.com/connect"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/api/mixtapev1/mixtapev1connect"
	"github.com/osa030/mixtape/internal/app/session"
	"github.com/osa030/mixtape/internal/infra/config"
)

// PlaybackService implements the PlaybackService RPC.
type PlaybackService struct {
	session *session.Manager
	config  *config.Config
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(session *session.Manager, cfg *config.Config) *PlaybackService {
	return &PlaybackService{
		session: session,
		config:  cfg,
	}
}

// Ensure PlaybackService implements the interface.
var _ mixtapev1connect.PlaybackServiceHandler = (*PlaybackService)(nil)

// TogglePlay plays, pauses or resumes.
func (s *PlaybackService) TogglePlay(
	ctx context.Context,
	req *connect.Request[mixtapev1.TogglePlayRequest],
) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return s.respond(s.session.TogglePlay(ctx))
}

// Select plays the track at an index.
func (s *PlaybackService) Select(
	ctx context.Context,
	req *connect.Request[mixtapev1.SelectRequest],
) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return s.respond(s.session.Select(ctx, req.Msg.Index))
}

// Next plays the following track.
func (s *PlaybackService) Next(
	ctx context.Context,
	req *connect.Request[mixtapev1.NextRequest],
) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return s.respond(s.session.Next(ctx))
}

// Previous plays the preceding track.
func (s *PlaybackService) Previous(
	ctx context.Context,
	req *connect.Request[mixtapev1.PreviousRequest],
) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return s.respond(s.session.Previous(ctx))
}

// Seek moves within the loaded track.
func (s *PlaybackService) Seek(
	ctx context.Context,
	req *connect.Request[mixtapev1.SeekRequest],
) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return s.respond(s.session.Seek(ctx, req.Msg.Position))
}

// Status returns the playlist and transport state.
func (s *PlaybackService) Status(
	ctx context.Context,
	req *connect.Request[mixtapev1.StatusRequest],
) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return s.respond(s.session.Status(ctx))
}

// Subscribe streams notifications until the client goes away or the
// session shuts down. The initial state is always the first message.
func (s *PlaybackService) Subscribe(
	ctx context.Context,
	req *connect.Request[mixtapev1.SubscribeRequest],
	stream *connect.ServerStream[mixtapev1.Notification],
) error {
	adapter := &notificationStreamAdapter{stream: stream}
	subscriptionID, err := s.session.Subscribe(ctx, adapter)
	if err != nil {
		return toConnectError(s.session, err)
	}

	// Wait for context cancellation or session end
	select {
	case <-ctx.Done():
	case <-s.session.Done():
	}

	s.session.Unsubscribe(subscriptionID)
	return nil
}

func (s *PlaybackService) respond(st session.Status, err error) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	if err != nil {
		return nil, toConnectError(s.session, err)
	}
	return connect.NewResponse(&mixtapev1.PlaybackResponse{
		State:   session.WireState(st),
		Message: st.Message,
	}), nil
}

// notificationStreamAdapter adapts connect.ServerStream to notification.Stream.
// Sends are serialized: a timed-out send may still be running when the next
// broadcast starts.
type notificationStreamAdapter struct {
	mu     sync.Mutex
	stream *connect.ServerStream[mixtapev1.Notification]
}

func (a *notificationStreamAdapter) Send(notification *mixtapev1.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stream.Send(notification)
}
