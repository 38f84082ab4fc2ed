package playback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/trace"
)

// State is the transport state of a playback session.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	// DefaultBaseDelay is the inter-step delay at speed 1.
	DefaultBaseDelay = time.Second
	// DefaultSpeed matches a delay of 20ms per step.
	DefaultSpeed = 50.0
)

// Controller replays a trace one snapshot per tick. All transitions and
// ticks are serialized by mu; at most one timer is outstanding and each
// schedule is tagged with a generation so a tick that lost a race with
// Pause or Stop is dropped.
type Controller struct {
	mu sync.Mutex

	clock     Clock
	renderer  Renderer
	logger    *slog.Logger
	baseDelay time.Duration
	speed     float64

	state State
	tr    *trace.Trace
	index int
	timer Timer
	gen   uint64
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(c Clock) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.clock = c
		}
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.baseDelay = d
		}
	}
}

// WithSpeed sets the initial speed; non-positive values are ignored.
func WithSpeed(speed float64) Option {
	return func(ctl *Controller) {
		if speed > 0 {
			ctl.speed = speed
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// New returns an Idle controller. A nil renderer discards output.
func New(r Renderer, opts ...Option) *Controller {
	if r == nil {
		r = nopRenderer{}
	}
	c := &Controller{
		clock:     SystemClock,
		renderer:  r,
		logger:    slog.Default(),
		baseDelay: DefaultBaseDelay,
		speed:     DefaultSpeed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins playback of tr from index 0. The first snapshot is delivered
// before Start returns.
func (c *Controller) Start(tr *trace.Trace) error {
	if tr.Len() == 0 {
		return fmt.Errorf("%w: empty trace", trace.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Idle && c.state != Completed {
		return &TransitionError{Op: "start", From: c.state}
	}

	c.cancelLocked()
	c.tr = tr
	c.index = 0
	c.state = Running
	c.logger.Debug("playback started", "algorithm", tr.Algorithm, "snapshots", tr.Len(), "speed", c.speed)

	c.renderer.OnStep(0, tr.At(0))
	c.scheduleLocked()
	return nil
}

func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running {
		return &TransitionError{Op: "pause", From: c.state}
	}
	c.cancelLocked()
	c.state = Paused
	c.logger.Debug("playback paused", "index", c.index)
	return nil
}

func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Paused {
		return &TransitionError{Op: "resume", From: c.state}
	}
	c.state = Running
	c.logger.Debug("playback resumed", "index", c.index)
	c.scheduleLocked()
	return nil
}

// Stop returns to Idle from any state and drops the trace.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	if c.state != Idle {
		c.logger.Debug("playback stopped", "state", c.state, "index", c.index)
	}
	c.state = Idle
	c.tr = nil
	c.index = 0
}

// SetSpeed changes the speed factor. A pending tick keeps its delay; the
// new speed applies from the next schedule.
func (c *Controller) SetSpeed(speed float64) error {
	if speed <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSpeed, speed)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
	return nil
}

// StepForward moves one snapshot ahead while Paused. At the last snapshot
// it is a no-op.
func (c *Controller) StepForward() error {
	return c.step(1, "step forward")
}

// StepBackward moves one snapshot back while Paused. At index 0 it is a
// no-op.
func (c *Controller) StepBackward() error {
	return c.step(-1, "step backward")
}

func (c *Controller) step(delta int, op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Paused {
		return &TransitionError{Op: op, From: c.state}
	}
	next := c.index + delta
	if next < 0 || next >= c.tr.Len() {
		return nil
	}
	c.index = next
	c.renderer.OnStep(c.index, c.tr.At(c.index))
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Delay is the interval the next tick will be scheduled with.
func (c *Controller) Delay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delayLocked()
}

// Current returns the snapshot at the current index, if a trace is loaded.
func (c *Controller) Current() (trace.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tr == nil {
		return trace.Snapshot{}, false
	}
	return c.tr.At(c.index), true
}

// Trace returns the loaded trace or nil when Idle.
func (c *Controller) Trace() *trace.Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr
}

func (c *Controller) delayLocked() time.Duration {
	return time.Duration(float64(c.baseDelay) / c.speed)
}

func (c *Controller) scheduleLocked() {
	c.gen++
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.delayLocked(), func() { c.tick(gen) })
}

func (c *Controller) cancelLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.state != Running {
		return
	}
	c.timer = nil

	if c.index >= c.tr.Len()-1 {
		c.state = Completed
		c.logger.Debug("playback completed", "algorithm", c.tr.Algorithm, "snapshots", c.tr.Len())
		c.renderer.OnFinished()
		return
	}

	c.index++
	c.renderer.OnStep(c.index, c.tr.At(c.index))
	c.scheduleLocked()
}
