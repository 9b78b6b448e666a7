package sim

import (
	"sync"
	"time"
)

// Clock is a virtual monotonic clock. Nothing moves it except Sleep and
// Advance, so a simulated transmit takes no wall time.
type Clock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewClock returns a clock reading start.
func NewClock(start time.Duration) *Clock {
	return &Clock{now: start}
}

// Micros implements irtag.Clock. The reading wraps like a 32-bit hardware counter.
func (c *Clock) Micros() uint32 {
	return uint32(c.Now() / time.Microsecond)
}

func (c *Clock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d. It has the signature of time.Sleep so it can
// stand in for a TxDevice's Delay.
func (c *Clock) Sleep(d time.Duration) {
	c.Advance(d)
}

func (c *Clock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}
