// Package session provides the session manager: the single event loop that
// owns the playlist, the transport controller and the player.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/app/filter"
	"github.com/osa030/mixtape/internal/app/notification"
	"github.com/osa030/mixtape/internal/app/playback"
	"github.com/osa030/mixtape/internal/app/search"
	"github.com/osa030/mixtape/internal/domain/playlist"
	"github.com/osa030/mixtape/internal/infra/config"
	"github.com/osa030/mixtape/internal/infra/metrics"
)

var (
	ErrClosed = errors.New("session is closed")
)

// Player executes transport commands and reports back through Events.
type Player interface {
	Execute(cmd playback.Command) error
	Events() <-chan playback.Event
	Close()
}

// Option configures a Manager.
type Option func(*Manager)

// WithSearchProvider replaces the provider chain built from configuration.
func WithSearchProvider(p search.Provider) Option {
	return func(m *Manager) {
		m.searcher = p
	}
}

// Manager manages the playlist session. Every mutation runs on one goroutine,
// in submission order; player events are fed into the same loop.
type Manager struct {
	// Configuration
	config *config.Config

	// Components
	store        *playlist.Store
	controller   *playback.Controller
	player       Player
	filterChain  *filter.Chain
	searcher     search.Provider
	tracker      search.Tracker
	notification *notification.Manager

	// Last banner pushed; loop only
	banner *mixtapev1.Banner

	// Channels
	ops       chan func()
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewManager creates a new session manager. The store is expected to be
// backed by the persistence adapter.
func NewManager(cfg *config.Config, store *playlist.Store, player Player, opts ...Option) (*Manager, error) {
	filterChain, err := filter.NewChainFromConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create filter chain")
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		config:       cfg,
		store:        store,
		controller:   playback.NewController(store),
		player:       player,
		filterChain:  filterChain,
		notification: notification.NewManager(notification.WithProgressRate(cfg.Playback.ProgressPerSecond)),

		ops:    make(chan func()),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.searcher == nil {
		chain, err := search.NewChainFromConfig(cfg)
		if err != nil {
			cancel()
			return nil, errors.Wrap(err, "failed to create search provider chain")
		}
		m.searcher = chain
	}

	metrics.PlaylistTracks.Set(float64(store.Len()))
	metrics.SetPlaybackState(playback.StateStopped.String())
	return m, nil
}

// Start starts the event loop.
func (m *Manager) Start() {
	m.startOnce.Do(func() {
		zlog.Info().Msgf("session: started: tracks=%d", m.store.Len())
		go m.loop()
	})
}

// Close stops the event loop, drops subscribers and closes the player.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.cancel()
		// Never started: nothing will close done.
		m.startOnce.Do(func() { close(m.done) })
		<-m.done
		m.notification.Close()
		m.player.Close()
		zlog.Info().Msg("session: closed")
	})
}

// Done returns a channel that is closed when the event loop exits.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Unsubscribe removes a notification subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.notification.Unsubscribe(subscriptionID)
	metrics.NotificationSubscribers.Set(float64(m.notification.SubscriberCount()))
}

func (m *Manager) loop() {
	defer close(m.done)

	events := m.player.Events()
	for {
		select {
		case <-m.ctx.Done():
			return
		case op := <-m.ops:
			op()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			m.handlePlayerEvent(ev)
		}
	}
}

// do runs fn on the event loop and waits for it to finish. Once submitted,
// fn runs to completion even if ctx ends.
func (m *Manager) do(ctx context.Context, fn func() error) error {
	var err error
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		defer func() {
			if r := recover(); r != nil {
				zlog.Error().Msgf("session: operation panicked: %v", r)
				err = errors.Newf("operation panicked: %v", r)
			}
		}()
		err = fn()
	}

	select {
	case m.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-m.ctx.Done():
		return ErrClosed
	}

	// The loop took op and runs it before it can exit, so the result is
	// always the op's own, even when Close races with it.
	<-finished
	return err
}
