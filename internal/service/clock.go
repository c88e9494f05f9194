package service

import (
	"sync"
	"time"
)

// thinkClock accumulates the thinking time of one side. It counts up;
// there are no time controls, the value is purely informational for the
// client.
type thinkClock struct {
	mu          sync.Mutex
	elapsed     time.Duration
	lastStarted time.Time
	running     bool
}

func (c *thinkClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		c.lastStarted = time.Now()
		c.running = true
	}
}

func (c *thinkClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.elapsed += time.Since(c.lastStarted)
		c.running = false
	}
}

func (c *thinkClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.elapsed + time.Since(c.lastStarted)
	}
	return c.elapsed
}
