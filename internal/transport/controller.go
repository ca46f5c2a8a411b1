// ABOUTME: Transport controller for play/pause/rewind/step
// ABOUTME: Mediates user commands with an external clock and keeps the cursor in sync
package transport

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultInterval is the cursor refresh period while playing
	DefaultInterval = 35 * time.Millisecond

	// DefaultStepMs is how far StepForward/StepBackward move
	DefaultStepMs = 1000
)

// Option configures a Controller
type Option func(*Controller)

// WithInterval overrides the poll period
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithStep overrides the step size in milliseconds
func WithStep(ms int64) Option {
	return func(c *Controller) {
		if ms > 0 {
			c.stepMs = ms
		}
	}
}

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the playback intent for one loaded file.
//
// All commands are synchronous and never fail: without a clock they do
// nothing. Engine errors are the clock's business.
type Controller struct {
	mu sync.Mutex

	clock      Clock
	cursor     Cursor
	durationMs int64
	status     Status
	interval   time.Duration
	stepMs     int64
	poll       *poller
	logger     *zap.Logger
}

// New creates a controller in the Stopped state.
// durationMs bounds seeks; a value <= 0 leaves the upper bound open.
func New(clock Clock, cursor Cursor, durationMs int64, opts ...Option) *Controller {
	c := &Controller{
		clock:      clock,
		cursor:     cursor,
		durationMs: durationMs,
		status:     Stopped,
		interval:   DefaultInterval,
		stepMs:     DefaultStepMs,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cursor == nil {
		c.cursor = CursorFunc(func(float64) {})
	}
	c.poll = newPoller(c.interval, c.sample)
	return c
}

// Play starts or resumes playback
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock == nil || c.status == Playing {
		return
	}
	c.playLocked()
}

// Pause halts playback and the cursor poller
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock == nil || c.status != Playing {
		return
	}
	c.pauseLocked()
}

// Rewind seeks to 0 and plays, whatever the previous state
func (c *Controller) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock == nil {
		return
	}

	c.poll.stop()
	c.clock.SetPosition(0)
	c.clock.Play()
	c.status = Playing
	c.cursor.SetCursor(0)
	c.poll.start()

	c.logger.Debug("Rewind")
}

// StepForward moves one step ahead, resuming only if playback was active
func (c *Controller) StepForward() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock == nil {
		return
	}

	wasPlaying := c.status == Playing
	if wasPlaying {
		c.pauseLocked()
	}

	c.seekLocked(c.clock.Position() + c.stepMs)

	if wasPlaying {
		c.playLocked()
	}
}

// StepBackward moves one step back (never below 0). Unlike StepForward
// it also starts playback when the controller was stopped.
func (c *Controller) StepBackward() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock == nil {
		return
	}

	wasPlaying := c.status == Playing
	resume := wasPlaying || c.status == Stopped
	if wasPlaying {
		c.pauseLocked()
	}

	c.seekLocked(c.clock.Position() - c.stepMs)

	if resume {
		c.playLocked()
	}
}

// Stop halts playback and returns the cursor to 0
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clock == nil {
		return
	}

	c.poll.stop()
	c.clock.Stop()
	c.status = Stopped
	c.cursor.SetCursor(0)

	c.logger.Debug("Stop")
}

// State returns the current status and clock position
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{Status: c.status, DurationMs: c.durationMs}
	if c.clock != nil {
		st.PositionMs = c.clamp(c.clock.Position())
	}
	return st
}

// Close stops the poller. Further commands still work.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.poll.stop()
}

func (c *Controller) playLocked() {
	c.clock.Play()
	c.status = Playing
	c.poll.start()

	c.logger.Debug("Play", zap.Int64("position_ms", c.clock.Position()))
}

func (c *Controller) pauseLocked() {
	c.clock.Pause()
	c.status = Paused
	c.poll.stop()

	c.logger.Debug("Pause", zap.Int64("position_ms", c.clock.Position()))
}

func (c *Controller) seekLocked(ms int64) {
	ms = c.clamp(ms)
	c.clock.SetPosition(ms)
	c.cursor.SetCursor(float64(ms) / 1000.0)

	c.logger.Debug("Seek", zap.Int64("position_ms", ms))
}

func (c *Controller) clamp(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	if c.durationMs > 0 && ms > c.durationMs {
		return c.durationMs
	}
	return ms
}

// sample runs on the poller goroutine. It must not take c.mu: stop
// waits for it while the lock is held.
func (c *Controller) sample() {
	if c.clock.State() != Playing {
		return
	}
	c.cursor.SetCursor(float64(c.clock.Position()) / 1000.0)
}
