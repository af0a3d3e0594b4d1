package workouts

import (
	"sync"
	"time"
)

// IDGenerator hands out set ids: a millisecond timestamp base plus the index
// within the batch. The base never goes below the last issued id + 1, nor
// below the floor passed in (the highest id already stored), so ids stay
// unique within a batch, across batches and across restarts.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) NextBatch(n int, floor int64) []int64 {
	if n <= 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.now().UnixMilli()
	if base <= floor {
		base = floor + 1
	}
	if base <= g.last {
		base = g.last + 1
	}

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = base + int64(i)
	}
	g.last = ids[n-1]
	return ids
}
