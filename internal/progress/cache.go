package progress

import (
	"sync"
	"time"

	"github.com/daehyun/goalcoach-api/internal/models"
	"github.com/google/uuid"
)

// statsCache is a read-through cache of dashboard stats keyed by user id.
// It belongs to the Stats service that owns it, never to package state.
type statsCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]statsEntry
}

type statsEntry struct {
	stats   models.DashboardStats
	expires time.Time
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]statsEntry),
	}
}

func (c *statsCache) get(userID uuid.UUID) (*models.DashboardStats, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[userID]
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	stats := entry.stats
	return &stats, true
}

func (c *statsCache) put(userID uuid.UUID, stats *models.DashboardStats) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = statsEntry{stats: *stats, expires: c.now().Add(c.ttl)}
}

func (c *statsCache) invalidate(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
