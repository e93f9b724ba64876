package viewguard

import (
	"context"
	"sync"
	"time"
)

const janitorInterval = time.Minute

// MemoryGuard is the in-process fallback used when Redis is disabled. It
// holds per-pair expiry times behind a mutex and sweeps expired entries on a
// janitor loop. Only suitable for single-instance deployments.
type MemoryGuard struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	g := &MemoryGuard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go g.janitor()
	return g
}

func (g *MemoryGuard) FirstView(_ context.Context, sessionKey, postID string) (bool, error) {
	key := guardKey(sessionKey, postID)
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if expiry, ok := g.seen[key]; ok && now.Before(expiry) {
		return false, nil
	}
	g.seen[key] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, sessionKey, postID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, guardKey(sessionKey, postID))
}

// Close stops the janitor loop.
func (g *MemoryGuard) Close() {
	g.stopped.Do(func() { close(g.stop) })
}

func (g *MemoryGuard) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case now := <-ticker.C:
			g.mu.Lock()
			for key, expiry := range g.seen {
				if now.After(expiry) {
					delete(g.seen, key)
				}
			}
			g.mu.Unlock()
		}
	}
}
