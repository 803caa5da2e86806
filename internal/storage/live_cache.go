package storage

import (
	"sort"
	"sync"

	"github.com/KaavyaOfficial/momentum-fc/internal/models/domain"
)

// LiveEntry is one live match together with its latest pressure reading.
type LiveEntry struct {
	Match    *domain.MatchState
	Pressure float64
}

// LiveCache is the in-memory view of the matches currently in play,
// replaced wholesale by the poll engine each cycle and read concurrently by
// the web layer and the WebSocket broadcaster.
type LiveCache struct {
	mu      sync.RWMutex
	entries map[int64]*LiveEntry
}

func NewLiveCache() *LiveCache {
	return &LiveCache{entries: make(map[int64]*LiveEntry, 64)}
}

// Replace swaps in the current cycle's live set.
func (c *LiveCache) Replace(entries []*LiveEntry) {
	next := make(map[int64]*LiveEntry, len(entries))
	for _, e := range entries {
		if e == nil || e.Match == nil {
			continue
		}
		next[e.Match.ID] = e
	}

	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()
}

// Get returns the cached entry for a match, or nil.
func (c *LiveCache) Get(matchID int64) *LiveEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[matchID]
}

// All returns the live set ordered by most recent update first.
func (c *LiveCache) All() []*LiveEntry {
	c.mu.RLock()
	out := make([]*LiveEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Match.LastUpdated.After(out[j].Match.LastUpdated)
	})
	return out
}

// Len reports the number of live matches.
func (c *LiveCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
