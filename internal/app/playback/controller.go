package playback

import (
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/domain/playlist"
	"github.com/osa030/mixtape/internal/domain/track"
)

// Errors
var (
	ErrEmptyPlaylist = errors.New("playlist is empty")
	ErrUnknownEvent  = errors.New("unknown event")
)

// Queue is the part of the playlist store the controller drives.
type Queue interface {
	Len() int
	CurrentIndex() int
	Track(index int) (track.Track, error)
	SetCurrent(index int) (int, error)
	Advance() (int, bool)
	Retreat() (int, bool)
	SetPlaying(playing bool)
}

// Progress is the read-only position of the loaded track.
type Progress struct {
	Elapsed  time.Duration
	Duration time.Duration // Zero until the player reports it
}

// Fraction returns elapsed/duration in [0,1]. An unknown duration counts as one second.
func (p Progress) Fraction() float64 {
	d := p.Duration.Seconds()
	if d <= 0 {
		d = 1
	}
	f := p.Elapsed.Seconds() / d
	return math.Min(math.Max(f, 0), 1)
}

// Controller is the transport state machine. It never touches the player
// directly: Dispatch returns the commands the caller must execute.
type Controller struct {
	mu sync.RWMutex

	queue Queue
	state State

	// token identifies the most recent load; player events carrying an older
	// token describe a source that is no longer loaded.
	token    uint64
	elapsed  time.Duration
	duration time.Duration
}

// NewController creates a stopped controller over the queue.
func NewController(queue Queue) *Controller {
	return &Controller{
		queue: queue,
		state: StateStopped,
	}
}

// Dispatch applies one event and returns the resulting player commands.
// Stale player events return no commands and no error.
func (c *Controller) Dispatch(ev Event) ([]Command, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.IsPlayerEvent() && ev.Token != c.token {
		zlog.Debug().Msgf("playback: ignoring stale %s: token=%d current=%d", ev.Type, ev.Token, c.token)
		return nil, nil
	}

	switch ev.Type {
	case EventTogglePlay:
		return c.togglePlayLocked()
	case EventSelectTrack:
		return c.selectLocked(ev.Index)
	case EventNext:
		idx, ok := c.queue.Advance()
		if !ok {
			return nil, ErrEmptyPlaylist
		}
		return c.loadAndPlayLocked(idx)
	case EventPrevious:
		idx, ok := c.queue.Retreat()
		if !ok {
			return nil, ErrEmptyPlaylist
		}
		return c.loadAndPlayLocked(idx)
	case EventTrackEnded:
		return c.trackEndedLocked()
	case EventCurrentRemoved, EventPlayerFailed:
		return c.stopLocked(), nil
	case EventSeek:
		return c.seekLocked(ev.Position), nil
	case EventTimeUpdate:
		c.elapsed = ev.Elapsed
		if ev.Duration > 0 {
			c.duration = ev.Duration
		}
		return nil, nil
	case EventMetadataLoaded:
		c.duration = ev.Duration
		return nil, nil
	default:
		return nil, errors.Wrapf(ErrUnknownEvent, "type %d", ev.Type)
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Progress returns the position of the loaded track.
func (c *Controller) Progress() Progress {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Progress{Elapsed: c.elapsed, Duration: c.duration}
}

// Token returns the load token of the current source.
func (c *Controller) Token() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Controller) togglePlayLocked() ([]Command, error) {
	if c.queue.Len() == 0 {
		return nil, ErrEmptyPlaylist
	}

	switch c.state {
	case StatePlaying:
		c.state = StatePaused
		c.queue.SetPlaying(false)
		return []Command{{Type: CommandPause}}, nil
	case StatePaused:
		c.state = StatePlaying
		c.queue.SetPlaying(true)
		return []Command{{Type: CommandPlay}}, nil
	default:
		idx := c.queue.CurrentIndex()
		if idx == playlist.NoSelection {
			idx = 0
		}
		if _, err := c.queue.SetCurrent(idx); err != nil {
			return nil, err
		}
		return c.loadAndPlayLocked(idx)
	}
}

func (c *Controller) selectLocked(index int) ([]Command, error) {
	if _, err := c.queue.Track(index); err != nil {
		return nil, err
	}
	if _, err := c.queue.SetCurrent(index); err != nil {
		return nil, err
	}
	return c.loadAndPlayLocked(index)
}

func (c *Controller) trackEndedLocked() ([]Command, error) {
	idx, ok := c.queue.Advance()
	if !ok {
		zlog.Debug().Msg("playback: track ended with empty playlist, stopping")
		return c.stopLocked(), nil
	}
	return c.loadAndPlayLocked(idx)
}

func (c *Controller) loadAndPlayLocked(index int) ([]Command, error) {
	t, err := c.queue.Track(index)
	if err != nil {
		return nil, err
	}

	var hint time.Duration
	if d, err := track.ParseDuration(t.Duration); err == nil {
		hint = d
	}

	c.token++
	c.state = StatePlaying
	c.elapsed = 0
	c.duration = 0
	c.queue.SetPlaying(true)

	zlog.Debug().Msgf("playback: loading track: index=%d token=%d track=%s", index, c.token, t)

	return []Command{
		{Type: CommandLoad, URL: t.AudioURL, Token: c.token, Hint: hint},
		{Type: CommandPlay},
	}, nil
}

func (c *Controller) stopLocked() []Command {
	c.token++
	c.state = StateStopped
	c.elapsed = 0
	c.duration = 0
	c.queue.SetPlaying(false)
	return []Command{{Type: CommandStop}}
}

func (c *Controller) seekLocked(position float64) []Command {
	if c.state == StateStopped || c.duration <= 0 {
		return nil
	}
	if math.IsNaN(position) {
		position = 0
	}
	position = math.Min(math.Max(position, 0), 1)
	target := time.Duration(position * float64(c.duration))
	c.elapsed = target
	return []Command{{Type: CommandSeek, Position: target}}
}
