package clock

import "time"

// Clock is the transport clock behind playback. Elapsed time only advances
// inside Update, so a caller ticking once per frame sees one consistent value
// for the whole frame.
type Clock struct {
	now     func() time.Time
	running bool
	elapsed time.Duration
	last    time.Time // wall time of the previous Update/Start/resume
}

// Option configures a Clock
type Option func(*Clock)

// WithNow replaces the wall-clock source (tests drive time by hand)
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// New creates a stopped clock at zero
func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins advancing from the current elapsed value. No-op when running.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.last = c.now()
}

// PauseResume toggles the running state. Elapsed is frozen at the value of
// the last Update; resuming continues from there without a jump.
func (c *Clock) PauseResume() {
	if c.running {
		c.running = false
		return
	}
	c.Start()
}

// SetTime jumps elapsed to d. Running state is unchanged.
func (c *Clock) SetTime(d time.Duration) {
	c.elapsed = d
	if c.running {
		c.last = c.now()
	}
}

// Update folds the wall time since the previous call into elapsed
func (c *Clock) Update() {
	if !c.running {
		return
	}
	now := c.now()
	// a wall clock stepping backwards must not rewind playback
	if delta := now.Sub(c.last); delta > 0 {
		c.elapsed += delta
	}
	c.last = now
}

// Elapsed returns the current elapsed time
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Running reports whether the clock is advancing
func (c *Clock) Running() bool {
	return c.running
}
