// Package connect provides Connect RPC service implementations.
package connect

import (
	"context"

	"connectrpc.com/connect"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/api/mixtapev1/mixtapev1connect"
	"github.com/osa030/mixtape/internal/app/session"
	"github.com/osa030/mixtape/internal/infra/config"
)

// PlaylistService implements the PlaylistService RPC.
type PlaylistService struct {
	session *session.Manager
	config  *config.Config
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(session *session.Manager, cfg *config.Config) *PlaylistService {
	return &PlaylistService{
		session: session,
		config:  cfg,
	}
}

// Ensure PlaylistService implements the interface.
var _ mixtapev1connect.PlaylistServiceHandler = (*PlaylistService)(nil)

// Search queries the configured search providers.
func (s *PlaylistService) Search(
	ctx context.Context,
	req *connect.Request[mixtapev1.SearchRequest],
) (*connect.Response[mixtapev1.SearchResponse], error) {
	res, err := s.session.Search(ctx, req.Msg.Query)
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.SearchResponse{
		Tracks:  session.WireTracks(res.Tracks),
		Message: res.Message,
	}), nil
}

// AddTrack appends a track to the playlist.
func (s *PlaylistService) AddTrack(
	ctx context.Context,
	req *connect.Request[mixtapev1.AddTrackRequest],
) (*connect.Response[mixtapev1.AddTrackResponse], error) {
	res, err := s.session.Add(ctx, session.DomainTrack(req.Msg.Track))
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.AddTrackResponse{
		Index:   res.Index,
		Message: res.Message,
	}), nil
}

// AddFile appends a local audio file, read on the server host.
func (s *PlaylistService) AddFile(
	ctx context.Context,
	req *connect.Request[mixtapev1.AddFileRequest],
) (*connect.Response[mixtapev1.AddFileResponse], error) {
	res, err := s.session.AddFile(ctx, req.Msg.Path)
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.AddFileResponse{
		Track:   session.WireTrack(res.Track),
		Index:   res.Index,
		Message: res.Message,
	}), nil
}

// RemoveTrack deletes the track at an index.
func (s *PlaylistService) RemoveTrack(
	ctx context.Context,
	req *connect.Request[mixtapev1.RemoveTrackRequest],
) (*connect.Response[mixtapev1.RemoveTrackResponse], error) {
	res, err := s.session.Remove(ctx, req.Msg.Index)
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.RemoveTrackResponse{
		Track:   session.WireTrack(res.Track),
		Message: res.Message,
	}), nil
}

// UpdateTrack replaces the fields of the track at an index.
func (s *PlaylistService) UpdateTrack(
	ctx context.Context,
	req *connect.Request[mixtapev1.UpdateTrackRequest],
) (*connect.Response[mixtapev1.UpdateTrackResponse], error) {
	res, err := s.session.Update(ctx, req.Msg.Index, session.DomainTrack(req.Msg.Track))
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.UpdateTrackResponse{
		Track:   session.WireTrack(res.Track),
		Message: res.Message,
	}), nil
}

// List returns the playlist and transport state.
func (s *PlaylistService) List(
	ctx context.Context,
	req *connect.Request[mixtapev1.ListRequest],
) (*connect.Response[mixtapev1.ListResponse], error) {
	st, err := s.session.Status(ctx)
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.ListResponse{
		State: session.WireState(st),
	}), nil
}

// Share encodes the playlist into a share link.
func (s *PlaylistService) Share(
	ctx context.Context,
	req *connect.Request[mixtapev1.ShareRequest],
) (*connect.Response[mixtapev1.ShareResponse], error) {
	res, err := s.session.Share(ctx, req.Msg.BaseURL)
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.ShareResponse{
		Token: res.Token,
		URL:   res.URL,
	}), nil
}

// Import loads a shared playlist into an empty playlist.
func (s *PlaylistService) Import(
	ctx context.Context,
	req *connect.Request[mixtapev1.ImportRequest],
) (*connect.Response[mixtapev1.ImportResponse], error) {
	res, err := s.session.Import(ctx, req.Msg.Input)
	if err != nil {
		return nil, toConnectError(s.session, err)
	}

	return connect.NewResponse(&mixtapev1.ImportResponse{
		Count:   res.Count,
		Message: res.Message,
	}), nil
}
