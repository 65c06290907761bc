// Package notification provides the notification manager for broadcasting
// playlist and playback events to subscribed clients.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
)

// DefaultSendTimeout bounds a single send to one subscriber.
const DefaultSendTimeout = 500 * time.Millisecond

// Stream represents a notification stream for a subscriber.
type Stream interface {
	Send(*mixtapev1.Notification) error
}

type subscription struct {
	id       string
	stream   Stream
	failures int
}

// maxFailures is how many consecutive failed sends drop a subscriber.
const maxFailures = 3

// Manager manages notification subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	sequenceNo    uint64
	sequenceNoMu  sync.Mutex

	sendTimeout time.Duration
	progress    *rate.Limiter
}

// Option configures a Manager.
type Option func(*Manager)

// WithProgressRate limits progress notifications to perSecond per second.
// Other notification types are never limited.
func WithProgressRate(perSecond int) Option {
	return func(m *Manager) {
		if perSecond > 0 {
			m.progress = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithSendTimeout overrides the per-subscriber send timeout.
func WithSendTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.sendTimeout = d
		}
	}
}

// NewManager creates a new notification manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		subscriptions: make(map[string]*subscription),
		sendTimeout:   DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe adds a new subscription and returns the subscription ID.
func (m *Manager) Subscribe(stream Stream) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{
		id:     id,
		stream: stream,
	}
	zlog.Debug().Msgf("notification: subscribed: id=%s total=%d", id, len(m.subscriptions))
	return id
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions, subscriptionID)
}

// NextSequenceNo returns the next sequence number and increments the counter.
func (m *Manager) NextSequenceNo() uint64 {
	m.sequenceNoMu.Lock()
	defer m.sequenceNoMu.Unlock()
	m.sequenceNo++
	return m.sequenceNo
}

// Broadcast stamps a sequence number on the notification and sends it to all
// subscribers in parallel. Progress notifications over the configured rate are
// dropped and reported as false.
func (m *Manager) Broadcast(notification *mixtapev1.Notification) bool {
	if notification.Type == mixtapev1.NotificationTypeProgress && m.progress != nil && !m.progress.Allow() {
		return false
	}

	notification.SequenceNo = m.NextSequenceNo()

	m.mu.RLock()
	// Copy subscriptions to avoid holding lock during sends
	subs := make([]*subscription, 0, len(m.subscriptions))
	for _, sub := range m.subscriptions {
		subs = append(subs, sub)
	}
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			m.record(s, m.sendWithTimeout(s, notification))
		}(sub)
	}

	wg.Wait()
	return true
}

// Send sends a notification to a specific subscriber without a sequence number.
// Unknown IDs are ignored.
func (m *Manager) Send(subscriptionID string, notification *mixtapev1.Notification) error {
	m.mu.RLock()
	sub, ok := m.subscriptions[subscriptionID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return sub.stream.Send(notification)
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*subscription)
}

func (m *Manager) sendWithTimeout(s *subscription, notification *mixtapev1.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.stream.Send(notification)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) record(s *subscription, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		s.failures = 0
		return
	}
	s.failures++
	if s.failures >= maxFailures {
		delete(m.subscriptions, s.id)
		zlog.Warn().Err(err).Msgf("notification: dropping subscriber after %d failed sends: id=%s", s.failures, s.id)
	}
}
