package playback

import (
	"fmt"
	"math"
	"time"
)

// Clock pulls frames from a FrameSource no faster than its frame rate.
type Clock struct {
	src      FrameSource
	sink     func(*Frame)
	interval float64 // seconds

	last   time.Time
	paused bool
	frames int

	now   func() time.Time
	sleep func(time.Duration)
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithTimeSource replaces the wall clock used for pacing.
func WithTimeSource(now func() time.Time, sleep func(time.Duration)) ClockOption {
	return func(c *Clock) {
		c.now = now
		c.sleep = sleep
	}
}

// NewClock creates a Clock forwarding every pulled frame to sink.
func NewClock(src FrameSource, sink func(*Frame), opts ...ClockOption) (*Clock, error) {
	rate := src.FrameRate()
	if !(rate > 0) || math.IsInf(rate, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrameRate, rate)
	}
	c := &Clock{
		src:      src,
		sink:     sink,
		interval: 1 / rate,
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Advance is called once per scheduler tick.
// If a frame interval has elapsed since the last frame, exactly one frame
// is pulled and forwarded to the sink. Otherwise it blocks for the rest of
// the interval. A paused clock does neither.
func (c *Clock) Advance() error {
	if c.paused {
		return nil
	}
	now := c.now()
	elapsed := now.Sub(c.last).Seconds()
	if c.last.IsZero() || elapsed >= c.interval {
		f, err := c.src.Next()
		if err != nil {
			return err
		}
		c.sink(f)
		c.frames++
		c.last = now
		return nil
	}
	c.sleep(time.Duration((c.interval - elapsed) * float64(time.Second)))
	return nil
}

func (c *Clock) Pause() {
	c.paused = true
}

func (c *Clock) Resume() {
	c.paused = false
}

func (c *Clock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

func (c *Clock) Paused() bool {
	return c.paused
}

func (c *Clock) FrameRate() float64 {
	return 1 / c.interval
}

// Frames returns the number of frames forwarded so far.
func (c *Clock) Frames() int {
	return c.frames
}
