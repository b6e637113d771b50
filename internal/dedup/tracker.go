// Package dedup tracks already-processed item identifiers so the poller
// never hands the same item to the pipeline twice. Two policies exist:
// SeenSet keeps a capacity-bounded permanent memory, CooldownCache keeps a
// cooldown-bounded LRU memory.
package dedup

import "context"

// Tracker is the interface the poller consumes.
type Tracker interface {
	// IsSeen reports whether id was previously marked.
	IsSeen(id string) bool

	// MarkSeen records id. Marking an already-seen id is a no-op beyond
	// refreshing recency where the policy tracks it.
	MarkSeen(id string)

	// Check atomically performs IsSeen-then-MarkSeen and reports whether
	// the id had already been seen.
	Check(id string) bool

	// Count returns the number of tracked identifiers.
	Count() int
}

// PersistentTracker is a Tracker whose state survives restarts.
type PersistentTracker interface {
	Tracker

	// Persist writes the current state to the backing store.
	Persist(ctx context.Context) error
}
