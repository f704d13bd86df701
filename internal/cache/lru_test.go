package cache

import (
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit with 1, got %d ok=%v", v, ok)
	}
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("expected overwrite to 2, got %d", v)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a so b is the eviction candidate
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a retained")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("expected c retained")
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRUCache[string](4, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry expired")
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRUCache[int](8, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge, got %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected miss after purge")
	}
	c.Set("a", 3)
	if v, ok := c.Get("a"); !ok || v != 3 {
		t.Fatalf("cache should be usable after purge")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](8, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)
	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("expected 2 expired entries cleaned, got %d", n)
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("fresh entry should survive cleanup")
	}
}
