// Package mixtapev1connect wires the mixtape.v1 services to connect handlers
// and clients using the JSON message codec.
package mixtapev1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
)

const (
	// PlaylistServiceName is the fully-qualified name of the PlaylistService service.
	PlaylistServiceName = "mixtape.v1.PlaylistService"
	// PlaybackServiceName is the fully-qualified name of the PlaybackService service.
	PlaybackServiceName = "mixtape.v1.PlaybackService"
)

// Fully-qualified procedure names, usable as HTTP routes.
const (
	PlaylistServiceSearchProcedure      = "/mixtape.v1.PlaylistService/Search"
	PlaylistServiceAddTrackProcedure    = "/mixtape.v1.PlaylistService/AddTrack"
	PlaylistServiceAddFileProcedure     = "/mixtape.v1.PlaylistService/AddFile"
	PlaylistServiceRemoveTrackProcedure = "/mixtape.v1.PlaylistService/RemoveTrack"
	PlaylistServiceUpdateTrackProcedure = "/mixtape.v1.PlaylistService/UpdateTrack"
	PlaylistServiceListProcedure        = "/mixtape.v1.PlaylistService/List"
	PlaylistServiceShareProcedure       = "/mixtape.v1.PlaylistService/Share"
	PlaylistServiceImportProcedure      = "/mixtape.v1.PlaylistService/Import"

	PlaybackServiceTogglePlayProcedure = "/mixtape.v1.PlaybackService/TogglePlay"
	PlaybackServiceSelectProcedure     = "/mixtape.v1.PlaybackService/Select"
	PlaybackServiceNextProcedure       = "/mixtape.v1.PlaybackService/Next"
	PlaybackServicePreviousProcedure   = "/mixtape.v1.PlaybackService/Previous"
	PlaybackServiceSeekProcedure       = "/mixtape.v1.PlaybackService/Seek"
	PlaybackServiceStatusProcedure     = "/mixtape.v1.PlaybackService/Status"
	PlaybackServiceSubscribeProcedure  = "/mixtape.v1.PlaybackService/Subscribe"
)

// PlaylistServiceHandler is an implementation of the mixtape.v1.PlaylistService service.
type PlaylistServiceHandler interface {
	Search(context.Context, *connect.Request[mixtapev1.SearchRequest]) (*connect.Response[mixtapev1.SearchResponse], error)
	AddTrack(context.Context, *connect.Request[mixtapev1.AddTrackRequest]) (*connect.Response[mixtapev1.AddTrackResponse], error)
	AddFile(context.Context, *connect.Request[mixtapev1.AddFileRequest]) (*connect.Response[mixtapev1.AddFileResponse], error)
	RemoveTrack(context.Context, *connect.Request[mixtapev1.RemoveTrackRequest]) (*connect.Response[mixtapev1.RemoveTrackResponse], error)
	UpdateTrack(context.Context, *connect.Request[mixtapev1.UpdateTrackRequest]) (*connect.Response[mixtapev1.UpdateTrackResponse], error)
	List(context.Context, *connect.Request[mixtapev1.ListRequest]) (*connect.Response[mixtapev1.ListResponse], error)
	Share(context.Context, *connect.Request[mixtapev1.ShareRequest]) (*connect.Response[mixtapev1.ShareResponse], error)
	Import(context.Context, *connect.Request[mixtapev1.ImportRequest]) (*connect.Response[mixtapev1.ImportResponse], error)
}

// PlaybackServiceHandler is an implementation of the mixtape.v1.PlaybackService service.
type PlaybackServiceHandler interface {
	TogglePlay(context.Context, *connect.Request[mixtapev1.TogglePlayRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error)
	Select(context.Context, *connect.Request[mixtapev1.SelectRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error)
	Next(context.Context, *connect.Request[mixtapev1.NextRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error)
	Previous(context.Context, *connect.Request[mixtapev1.PreviousRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error)
	Seek(context.Context, *connect.Request[mixtapev1.SeekRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error)
	Status(context.Context, *connect.Request[mixtapev1.StatusRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error)
	Subscribe(context.Context, *connect.Request[mixtapev1.SubscribeRequest], *connect.ServerStream[mixtapev1.Notification]) error
}

// NewPlaylistServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPlaylistServiceHandler(svc PlaylistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{mixtapev1.WithCodec()}, opts...)
	handlers := map[string]http.Handler{
		PlaylistServiceSearchProcedure:      connect.NewUnaryHandler(PlaylistServiceSearchProcedure, svc.Search, opts...),
		PlaylistServiceAddTrackProcedure:    connect.NewUnaryHandler(PlaylistServiceAddTrackProcedure, svc.AddTrack, opts...),
		PlaylistServiceAddFileProcedure:     connect.NewUnaryHandler(PlaylistServiceAddFileProcedure, svc.AddFile, opts...),
		PlaylistServiceRemoveTrackProcedure: connect.NewUnaryHandler(PlaylistServiceRemoveTrackProcedure, svc.RemoveTrack, opts...),
		PlaylistServiceUpdateTrackProcedure: connect.NewUnaryHandler(PlaylistServiceUpdateTrackProcedure, svc.UpdateTrack, opts...),
		PlaylistServiceListProcedure:        connect.NewUnaryHandler(PlaylistServiceListProcedure, svc.List, opts...),
		PlaylistServiceShareProcedure:       connect.NewUnaryHandler(PlaylistServiceShareProcedure, svc.Share, opts...),
		PlaylistServiceImportProcedure:      connect.NewUnaryHandler(PlaylistServiceImportProcedure, svc.Import, opts...),
	}
	return "/" + PlaylistServiceName + "/", route(handlers)
}

// NewPlaybackServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewPlaybackServiceHandler(svc PlaybackServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{mixtapev1.WithCodec()}, opts...)
	handlers := map[string]http.Handler{
		PlaybackServiceTogglePlayProcedure: connect.NewUnaryHandler(PlaybackServiceTogglePlayProcedure, svc.TogglePlay, opts...),
		PlaybackServiceSelectProcedure:     connect.NewUnaryHandler(PlaybackServiceSelectProcedure, svc.Select, opts...),
		PlaybackServiceNextProcedure:       connect.NewUnaryHandler(PlaybackServiceNextProcedure, svc.Next, opts...),
		PlaybackServicePreviousProcedure:   connect.NewUnaryHandler(PlaybackServicePreviousProcedure, svc.Previous, opts...),
		PlaybackServiceSeekProcedure:       connect.NewUnaryHandler(PlaybackServiceSeekProcedure, svc.Seek, opts...),
		PlaybackServiceStatusProcedure:     connect.NewUnaryHandler(PlaybackServiceStatusProcedure, svc.Status, opts...),
		PlaybackServiceSubscribeProcedure:  connect.NewServerStreamHandler(PlaybackServiceSubscribeProcedure, svc.Subscribe, opts...),
	}
	return "/" + PlaybackServiceName + "/", route(handlers)
}

func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// PlaylistServiceClient is a client for the mixtape.v1.PlaylistService service.
type PlaylistServiceClient struct {
	search      *connect.Client[mixtapev1.SearchRequest, mixtapev1.SearchResponse]
	addTrack    *connect.Client[mixtapev1.AddTrackRequest, mixtapev1.AddTrackResponse]
	addFile     *connect.Client[mixtapev1.AddFileRequest, mixtapev1.AddFileResponse]
	removeTrack *connect.Client[mixtapev1.RemoveTrackRequest, mixtapev1.RemoveTrackResponse]
	updateTrack *connect.Client[mixtapev1.UpdateTrackRequest, mixtapev1.UpdateTrackResponse]
	list        *connect.Client[mixtapev1.ListRequest, mixtapev1.ListResponse]
	share       *connect.Client[mixtapev1.ShareRequest, mixtapev1.ShareResponse]
	importer    *connect.Client[mixtapev1.ImportRequest, mixtapev1.ImportResponse]
}

// NewPlaylistServiceClient constructs a client for the mixtape.v1.PlaylistService service.
// baseURL is the server root, e.g. http://127.0.0.1:7878.
func NewPlaylistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlaylistServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{mixtapev1.WithCodec()}, opts...)
	return &PlaylistServiceClient{
		search:      connect.NewClient[mixtapev1.SearchRequest, mixtapev1.SearchResponse](httpClient, baseURL+PlaylistServiceSearchProcedure, opts...),
		addTrack:    connect.NewClient[mixtapev1.AddTrackRequest, mixtapev1.AddTrackResponse](httpClient, baseURL+PlaylistServiceAddTrackProcedure, opts...),
		addFile:     connect.NewClient[mixtapev1.AddFileRequest, mixtapev1.AddFileResponse](httpClient, baseURL+PlaylistServiceAddFileProcedure, opts...),
		removeTrack: connect.NewClient[mixtapev1.RemoveTrackRequest, mixtapev1.RemoveTrackResponse](httpClient, baseURL+PlaylistServiceRemoveTrackProcedure, opts...),
		updateTrack: connect.NewClient[mixtapev1.UpdateTrackRequest, mixtapev1.UpdateTrackResponse](httpClient, baseURL+PlaylistServiceUpdateTrackProcedure, opts...),
		list:        connect.NewClient[mixtapev1.ListRequest, mixtapev1.ListResponse](httpClient, baseURL+PlaylistServiceListProcedure, opts...),
		share:       connect.NewClient[mixtapev1.ShareRequest, mixtapev1.ShareResponse](httpClient, baseURL+PlaylistServiceShareProcedure, opts...),
		importer:    connect.NewClient[mixtapev1.ImportRequest, mixtapev1.ImportResponse](httpClient, baseURL+PlaylistServiceImportProcedure, opts...),
	}
}

// Search calls mixtape.v1.PlaylistService.Search.
func (c *PlaylistServiceClient) Search(ctx context.Context, req *connect.Request[mixtapev1.SearchRequest]) (*connect.Response[mixtapev1.SearchResponse], error) {
	return c.search.CallUnary(ctx, req)
}

// AddTrack calls mixtape.v1.PlaylistService.AddTrack.
func (c *PlaylistServiceClient) AddTrack(ctx context.Context, req *connect.Request[mixtapev1.AddTrackRequest]) (*connect.Response[mixtapev1.AddTrackResponse], error) {
	return c.addTrack.CallUnary(ctx, req)
}

// AddFile calls mixtape.v1.PlaylistService.AddFile.
func (c *PlaylistServiceClient) AddFile(ctx context.Context, req *connect.Request[mixtapev1.AddFileRequest]) (*connect.Response[mixtapev1.AddFileResponse], error) {
	return c.addFile.CallUnary(ctx, req)
}

// RemoveTrack calls mixtape.v1.PlaylistService.RemoveTrack.
func (c *PlaylistServiceClient) RemoveTrack(ctx context.Context, req *connect.Request[mixtapev1.RemoveTrackRequest]) (*connect.Response[mixtapev1.RemoveTrackResponse], error) {
	return c.removeTrack.CallUnary(ctx, req)
}

// UpdateTrack calls mixtape.v1.PlaylistService.UpdateTrack.
func (c *PlaylistServiceClient) UpdateTrack(ctx context.Context, req *connect.Request[mixtapev1.UpdateTrackRequest]) (*connect.Response[mixtapev1.UpdateTrackResponse], error) {
	return c.updateTrack.CallUnary(ctx, req)
}

// List calls mixtape.v1.PlaylistService.List.
func (c *PlaylistServiceClient) List(ctx context.Context, req *connect.Request[mixtapev1.ListRequest]) (*connect.Response[mixtapev1.ListResponse], error) {
	return c.list.CallUnary(ctx, req)
}

// Share calls mixtape.v1.PlaylistService.Share.
func (c *PlaylistServiceClient) Share(ctx context.Context, req *connect.Request[mixtapev1.ShareRequest]) (*connect.Response[mixtapev1.ShareResponse], error) {
	return c.share.CallUnary(ctx, req)
}

// Import calls mixtape.v1.PlaylistService.Import.
func (c *PlaylistServiceClient) Import(ctx context.Context, req *connect.Request[mixtapev1.ImportRequest]) (*connect.Response[mixtapev1.ImportResponse], error) {
	return c.importer.CallUnary(ctx, req)
}

// PlaybackServiceClient is a client for the mixtape.v1.PlaybackService service.
type PlaybackServiceClient struct {
	togglePlay *connect.Client[mixtapev1.TogglePlayRequest, mixtapev1.PlaybackResponse]
	selectOne  *connect.Client[mixtapev1.SelectRequest, mixtapev1.PlaybackResponse]
	next       *connect.Client[mixtapev1.NextRequest, mixtapev1.PlaybackResponse]
	previous   *connect.Client[mixtapev1.PreviousRequest, mixtapev1.PlaybackResponse]
	seek       *connect.Client[mixtapev1.SeekRequest, mixtapev1.PlaybackResponse]
	status     *connect.Client[mixtapev1.StatusRequest, mixtapev1.PlaybackResponse]
	subscribe  *connect.Client[mixtapev1.SubscribeRequest, mixtapev1.Notification]
}

// NewPlaybackServiceClient constructs a client for the mixtape.v1.PlaybackService service.
func NewPlaybackServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlaybackServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{mixtapev1.WithCodec()}, opts...)
	return &PlaybackServiceClient{
		togglePlay: connect.NewClient[mixtapev1.TogglePlayRequest, mixtapev1.PlaybackResponse](httpClient, baseURL+PlaybackServiceTogglePlayProcedure, opts...),
		selectOne:  connect.NewClient[mixtapev1.SelectRequest, mixtapev1.PlaybackResponse](httpClient, baseURL+PlaybackServiceSelectProcedure, opts...),
		next:       connect.NewClient[mixtapev1.NextRequest, mixtapev1.PlaybackResponse](httpClient, baseURL+PlaybackServiceNextProcedure, opts...),
		previous:   connect.NewClient[mixtapev1.PreviousRequest, mixtapev1.PlaybackResponse](httpClient, baseURL+PlaybackServicePreviousProcedure, opts...),
		seek:       connect.NewClient[mixtapev1.SeekRequest, mixtapev1.PlaybackResponse](httpClient, baseURL+PlaybackServiceSeekProcedure, opts...),
		status:     connect.NewClient[mixtapev1.StatusRequest, mixtapev1.PlaybackResponse](httpClient, baseURL+PlaybackServiceStatusProcedure, opts...),
		subscribe:  connect.NewClient[mixtapev1.SubscribeRequest, mixtapev1.Notification](httpClient, baseURL+PlaybackServiceSubscribeProcedure, opts...),
	}
}

// TogglePlay calls mixtape.v1.PlaybackService.TogglePlay.
func (c *PlaybackServiceClient) TogglePlay(ctx context.Context, req *connect.Request[mixtapev1.TogglePlayRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return c.togglePlay.CallUnary(ctx, req)
}

// Select calls mixtape.v1.PlaybackService.Select.
func (c *PlaybackServiceClient) Select(ctx context.Context, req *connect.Request[mixtapev1.SelectRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return c.selectOne.CallUnary(ctx, req)
}

// Next calls mixtape.v1.PlaybackService.Next.
func (c *PlaybackServiceClient) Next(ctx context.Context, req *connect.Request[mixtapev1.NextRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return c.next.CallUnary(ctx, req)
}

// Previous calls mixtape.v1.PlaybackService.Previous.
func (c *PlaybackServiceClient) Previous(ctx context.Context, req *connect.Request[mixtapev1.PreviousRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return c.previous.CallUnary(ctx, req)
}

// Seek calls mixtape.v1.PlaybackService.Seek.
func (c *PlaybackServiceClient) Seek(ctx context.Context, req *connect.Request[mixtapev1.SeekRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return c.seek.CallUnary(ctx, req)
}

// Status calls mixtape.v1.PlaybackService.Status.
func (c *PlaybackServiceClient) Status(ctx context.Context, req *connect.Request[mixtapev1.StatusRequest]) (*connect.Response[mixtapev1.PlaybackResponse], error) {
	return c.status.CallUnary(ctx, req)
}

// Subscribe calls mixtape.v1.PlaybackService.Subscribe.
func (c *PlaybackServiceClient) Subscribe(ctx context.Context, req *connect.Request[mixtapev1.SubscribeRequest]) (*connect.ServerStreamForClient[mixtapev1.Notification], error) {
	return c.subscribe.CallServerStream(ctx, req)
}
