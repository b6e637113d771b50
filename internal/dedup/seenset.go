package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"painradar/internal/ports"
)

// SeenSet is the capacity-bounded permanent policy: once an identifier is
// marked it stays marked until evicted. Eviction is deterministic
// oldest-first, tracked by an explicit insertion-order queue rather than
// map iteration order. State is loaded at construction and persisted at
// the caller's checkpoints.
type SeenSet struct {
	mu      sync.Mutex
	ids     map[string]struct{}
	order   []string
	maxSize int
	store   ports.SeenStore
	logger  *slog.Logger
}

var _ PersistentTracker = (*SeenSet)(nil)

// NewSeenSet builds a tracker backed by store. A load failure starts the
// tracker empty (fail-open: reprocessing beats losing the run).
func NewSeenSet(ctx context.Context, store ports.SeenStore, maxSize int, logger *slog.Logger) *SeenSet {
	if logger == nil {
		logger = slog.Default()
	}

	s := &SeenSet{
		ids:     map[string]struct{}{},
		maxSize: maxSize,
		store:   store,
		logger:  logger,
	}

	if store != nil {
		ids, err := store.Load(ctx)
		if err != nil {
			logger.Warn("failed to load seen set, starting empty", "error", err)
		} else {
			for _, id := range ids {
				s.insert(id)
			}
			logger.Info("loaded seen set", "count", len(s.order))
		}
	}

	return s
}

// IsSeen reports whether id was previously marked.
func (s *SeenSet) IsSeen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// MarkSeen records id, evicting the oldest entries past capacity.
// Marking an existing id is a no-op.
func (s *SeenSet) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(id)
}

// Check atomically marks id and reports whether it was already present.
func (s *SeenSet) Check(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return true
	}
	s.insert(id)
	return false
}

// Count returns the number of tracked identifiers.
func (s *SeenSet) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Persist saves the identifiers in insertion order. Failures are returned
// for logging; the next checkpoint retries with current state.
func (s *SeenSet) Persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	snapshot := make([]string, len(s.order))
	copy(snapshot, s.order)
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save seen set: %w", err)
	}
	return nil
}

// insert assumes the lock is held.
func (s *SeenSet) insert(id string) {
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)

	for s.maxSize > 0 && len(s.order) > s.maxSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.ids, oldest)
	}
}
