package dedup

import (
	"container/list"
	"sync"
	"time"
)

type cooldownEntry struct {
	id     string
	seenAt time.Time
}

// CooldownCache is the streaming policy: an identifier counts as seen only
// within the cooldown window after it was marked. Entries expire lazily on
// lookup; when the cache overflows maxSize the least-recently-touched
// entry is evicted. MarkSeen on a live entry refreshes its recency.
type CooldownCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	recency  *list.List // front = most recently touched
	maxSize  int
	cooldown time.Duration
	now      func() time.Time
}

var _ Tracker = (*CooldownCache)(nil)

// NewCooldownCache builds the cooldown-bounded LRU tracker.
func NewCooldownCache(maxSize int, cooldown time.Duration) *CooldownCache {
	return &CooldownCache{
		entries:  map[string]*list.Element{},
		recency:  list.New(),
		maxSize:  maxSize,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// IsSeen reports whether id was marked within the cooldown window. An
// expired entry is removed and reported unseen.
func (c *CooldownCache) IsSeen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSeen(id)
}

// MarkSeen records id with the current timestamp, refreshing recency when
// the id is already live.
func (c *CooldownCache) MarkSeen(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markSeen(id)
}

// Check atomically marks id and reports whether it was already live.
func (c *CooldownCache) Check(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := c.isSeen(id)
	c.markSeen(id)
	return seen
}

// Count returns the number of cached identifiers, including any that have
// expired but not yet been looked up.
func (c *CooldownCache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *CooldownCache) isSeen(id string) bool {
	elem, ok := c.entries[id]
	if !ok {
		return false
	}

	entry := elem.Value.(*cooldownEntry)
	if c.now().Sub(entry.seenAt) > c.cooldown {
		c.recency.Remove(elem)
		delete(c.entries, id)
		return false
	}
	return true
}

func (c *CooldownCache) markSeen(id string) {
	if elem, ok := c.entries[id]; ok {
		elem.Value.(*cooldownEntry).seenAt = c.now()
		c.recency.MoveToFront(elem)
		return
	}

	c.entries[id] = c.recency.PushFront(&cooldownEntry{id: id, seenAt: c.now()})

	for c.maxSize > 0 && len(c.entries) > c.maxSize {
		oldest := c.recency.Back()
		if oldest == nil {
			break
		}
		c.recency.Remove(oldest)
		delete(c.entries, oldest.Value.(*cooldownEntry).id)
	}
}
