package store

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator mints time-based job IDs of the form job-<unix-millis>. IDs
// minted within the same millisecond get an incrementing suffix so a batch
// never collides with itself.
type IDGenerator struct {
	mu      sync.Mutex
	lastMS  int64
	counter int
	now     func() time.Time
}

// NewIDGenerator creates a generator backed by the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh unique ID.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms == g.lastMS {
		g.counter++
		return fmt.Sprintf("job-%d-%d", ms, g.counter)
	}
	g.lastMS = ms
	g.counter = 0
	return fmt.Sprintf("job-%d", ms)
}
