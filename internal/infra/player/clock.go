// Package player provides a simulated audio player driven by the wall clock.
package player

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/app/playback"
)

// ErrNoSource is returned when a transport command arrives before Load.
var ErrNoSource = errors.New("no source loaded")

// Config holds clock player configuration.
type Config struct {
	TickInterval  time.Duration // How often time updates are emitted while playing
	DefaultLength time.Duration // Media length when the load hint is unknown
}

// Clock pretends to play media. The media length is the load hint, and
// time advances with the wall clock while playing.
type Clock struct {
	mu sync.Mutex

	config Config

	token     uint64
	source    string
	length    time.Duration
	offset    time.Duration // Position accumulated before startedAt
	startedAt time.Time
	playing   bool

	tickerCancel func()

	eventCh chan playback.Event
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewClock creates a clock player.
func NewClock(config Config) *Clock {
	if config.TickInterval <= 0 {
		config.TickInterval = 250 * time.Millisecond
	}
	if config.DefaultLength <= 0 {
		config.DefaultLength = 3 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Clock{
		config:  config,
		eventCh: make(chan playback.Event, 64),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Events returns the player event channel.
func (c *Clock) Events() <-chan playback.Event {
	return c.eventCh
}

// Execute runs a controller command.
func (c *Clock) Execute(cmd playback.Command) error {
	switch cmd.Type {
	case playback.CommandLoad:
		c.Load(cmd.URL, cmd.Token, cmd.Hint)
		return nil
	case playback.CommandPlay:
		return c.Play()
	case playback.CommandPause:
		c.Pause()
		return nil
	case playback.CommandSeek:
		c.Seek(cmd.Position)
		return nil
	case playback.CommandStop:
		c.Stop()
		return nil
	default:
		return errors.Newf("unsupported command: %s", cmd.Type)
	}
}

// Load replaces the source and reports its length.
func (c *Clock) Load(source string, token uint64, hint time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickerLocked()
	c.token = token
	c.source = source
	c.length = hint
	if c.length <= 0 {
		c.length = c.config.DefaultLength
	}
	c.offset = 0
	c.playing = false

	zlog.Debug().Msgf("player: loaded source=%s token=%d length=%v", source, token, c.length)

	c.sendLocked(playback.Event{
		Type:     playback.EventMetadataLoaded,
		Token:    c.token,
		Duration: c.length,
	})
}

// Play starts or resumes the clock.
func (c *Clock) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source == "" {
		return ErrNoSource
	}
	if c.playing {
		return nil
	}
	if c.offset >= c.length {
		c.offset = 0
	}
	c.startedAt = toWallTime(time.Now())
	c.playing = true
	c.startTickerLocked()
	return nil
}

// Pause freezes the clock.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.playing {
		return
	}
	c.offset = c.positionLocked()
	c.playing = false
	c.stopTickerLocked()
	c.sendLocked(c.timeUpdateLocked())
}

// Seek moves the clock to an absolute position within the media.
func (c *Clock) Seek(position time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source == "" {
		return
	}
	if position < 0 {
		position = 0
	}
	if position > c.length {
		position = c.length
	}
	c.offset = position
	if c.playing {
		c.startedAt = toWallTime(time.Now())
	}
	c.sendLocked(c.timeUpdateLocked())
}

// Stop unloads the source.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickerLocked()
	c.source = ""
	c.length = 0
	c.offset = 0
	c.playing = false
}

// Position returns the current media position.
func (c *Clock) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

// Duration returns the media length, or zero when nothing is loaded.
func (c *Clock) Duration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.length
}

// Playing reports whether the clock is running.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Close stops the clock and closes the event channel.
func (c *Clock) Close() {
	c.mu.Lock()
	c.stopTickerLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	close(c.eventCh)
}

func (c *Clock) positionLocked() time.Duration {
	pos := c.offset
	if c.playing {
		pos += toWallTime(time.Now()).Sub(c.startedAt)
	}
	if pos > c.length {
		pos = c.length
	}
	return pos
}

func (c *Clock) timeUpdateLocked() playback.Event {
	return playback.Event{
		Type:     playback.EventTimeUpdate,
		Token:    c.token,
		Elapsed:  c.positionLocked(),
		Duration: c.length,
	}
}

// tick runs on the ticker goroutine.
func (c *Clock) tick(ctx context.Context) {
	c.mu.Lock()
	if ctx.Err() != nil || !c.playing {
		c.mu.Unlock()
		return
	}

	update := c.timeUpdateLocked()
	if update.Elapsed < c.length {
		c.sendLocked(update)
		c.mu.Unlock()
		return
	}

	c.offset = c.length
	c.playing = false
	c.stopTickerLocked()
	c.sendLocked(update)
	ended := playback.Event{Type: playback.EventTrackEnded, Token: c.token}
	c.mu.Unlock()

	zlog.Debug().Msgf("player: source ended token=%d", ended.Token)

	// Ended must not be dropped; block outside the lock until delivered.
	select {
	case c.eventCh <- ended:
	case <-c.ctx.Done():
	}
}

func (c *Clock) startTickerLocked() {
	c.stopTickerLocked()

	ctx, cancel := context.WithCancel(c.ctx)
	c.tickerCancel = cancel
	interval := c.config.TickInterval

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.tick(ctx)
			}
		}
	}()
}

func (c *Clock) stopTickerLocked() {
	if c.tickerCancel != nil {
		c.tickerCancel()
		c.tickerCancel = nil
	}
}

// sendLocked sends an event without blocking. Time updates may be dropped.
func (c *Clock) sendLocked(e playback.Event) {
	select {
	case c.eventCh <- e:
	case <-c.ctx.Done():
	default:
	}
}

// toWallTime returns the time with the monotonic clock reading stripped.
func toWallTime(t time.Time) time.Time {
	return time.Unix(t.Unix(), int64(t.Nanosecond()))
}
