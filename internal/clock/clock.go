// Package clock paces the game loop.
package clock

import "time"

type Clock interface {
	// Start begins the first frame interval
	Start()
	// Wait blocks until the current frame interval has elapsed
	Wait()
}

// FrameClock throttles to a fixed period. A frame that overruns its deadline
// does not make the following frames shorter.
type FrameClock struct {
	Period time.Duration

	now      func() time.Time
	sleep    func(time.Duration)
	deadline time.Time
}

func NewFrameClock(period time.Duration) *FrameClock {
	return &FrameClock{Period: period, now: time.Now, sleep: time.Sleep}
}

func (c *FrameClock) Start() {
	c.deadline = c.now().Add(c.Period)
}

func (c *FrameClock) Wait() {
	if c.deadline.IsZero() {
		c.Start()
	}
	now := c.now()
	if remaining := c.deadline.Sub(now); remaining > 0 {
		c.sleep(remaining)
		c.deadline = c.deadline.Add(c.Period)
		return
	}
	c.deadline = now.Add(c.Period)
}

// ManualClock never blocks. It counts the frames it was asked to wait for.
type ManualClock struct {
	Started bool
	Ticks   int
}

func (c *ManualClock) Start() {
	c.Started = true
}

func (c *ManualClock) Wait() {
	c.Ticks++
}
