package dedup

import (
	"testing"
	"time"
)

func newTestCooldown(maxSize int, cooldown time.Duration) (*CooldownCache, *time.Time) {
	c := NewCooldownCache(maxSize, cooldown)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCooldownCacheSeenWithinWindow(t *testing.T) {
	t.Parallel()

	c, now := newTestCooldown(10, time.Hour)

	c.MarkSeen("x")
	if !c.IsSeen("x") {
		t.Fatal("freshly marked id should be seen")
	}

	*now = now.Add(59 * time.Minute)
	if !c.IsSeen("x") {
		t.Fatal("id should still be seen inside the cooldown")
	}
}

func TestCooldownCacheExpiresLazily(t *testing.T) {
	t.Parallel()

	c, now := newTestCooldown(10, time.Hour)

	c.MarkSeen("x")
	*now = now.Add(61 * time.Minute)

	if c.IsSeen("x") {
		t.Fatal("id should expire after the cooldown")
	}
	if c.Count() != 0 {
		t.Fatalf("expired entry should be removed on lookup, count %d", c.Count())
	}
}

func TestCooldownCacheMarkRefreshesWindow(t *testing.T) {
	t.Parallel()

	c, now := newTestCooldown(10, time.Hour)

	c.MarkSeen("x")
	*now = now.Add(45 * time.Minute)
	c.MarkSeen("x")
	*now = now.Add(45 * time.Minute)

	if !c.IsSeen("x") {
		t.Fatal("re-marking should restart the cooldown window")
	}
}

func TestCooldownCacheCheckMarksAtomically(t *testing.T) {
	t.Parallel()

	c, _ := newTestCooldown(10, time.Hour)

	if c.Check("x") {
		t.Fatal("first check should report unseen")
	}
	if !c.Check("x") {
		t.Fatal("second check should report seen")
	}
}

func TestCooldownCacheEvictsLeastRecentlyTouched(t *testing.T) {
	t.Parallel()

	c, _ := newTestCooldown(2, time.Hour)

	c.MarkSeen("a")
	c.MarkSeen("b")
	c.MarkSeen("a") // refresh: b is now least recently touched
	c.MarkSeen("c")

	if c.IsSeen("b") {
		t.Fatal("least recently touched entry should be evicted")
	}
	if !c.IsSeen("a") || !c.IsSeen("c") {
		t.Fatal("recently touched entries should survive")
	}
	if c.Count() != 2 {
		t.Fatalf("expected count 2, got %d", c.Count())
	}
}
