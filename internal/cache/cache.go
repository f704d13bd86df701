// Package cache provides the in-memory memoization used by the record
// store: a generic LRU with TTL expiry plus a manager that runs the
// periodic cleanup of every registered cache.
package cache

import "time"

// Cache is the generic cache contract.
type Cache[T any] interface {
	// Get retrieves a value from the cache.
	Get(key string) (T, bool)

	// Set stores a value in the cache.
	Set(key string, data T)

	// Delete removes a key from the cache.
	Delete(key string)

	// Purge removes every entry. Used when the underlying dataset is
	// known to have changed out from under the memoized results.
	Purge()

	// Len returns the current number of cached entries.
	Len() int
}

// Cleaner is implemented by caches that support expiry cleanup.
type Cleaner interface {
	CleanExpired() int
}

// Manager owns the cleanup lifecycle for a set of caches.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
}

// NewManager creates an empty cache manager.
func NewManager() *Manager {
	return &Manager{
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the manager for periodic cleanup. Must be
// called before StartCleanup.
func (m *Manager) Register(c Cleaner) {
	m.caches = append(m.caches, c)
}

// StartCleanup begins periodic cleanup of all registered caches.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range m.caches {
				c.CleanExpired()
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop shuts down the cleanup goroutine and waits for it to exit.
func (m *Manager) Stop() {
	if m.stopCleanup != nil {
		close(m.stopCleanup)
		<-m.cleanupDone
	}
}
