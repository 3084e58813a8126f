package studio

import (
	"context"
	"sync"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
)

// UsageTracker caches the latest quota snapshot from the server. It is a
// display cache only: it never blocks a generation, since the server is
// the source of truth for quota enforcement.
type UsageTracker struct {
	backend Backend

	mu       sync.RWMutex
	snapshot api.UsageSnapshot
	loaded   bool
}

func NewUsageTracker(backend Backend) *UsageTracker {
	return &UsageTracker{backend: backend}
}

// Refresh replaces the cached snapshot wholesale. On error the previous
// snapshot is kept.
func (u *UsageTracker) Refresh(ctx context.Context) error {
	snap, err := u.backend.Usage(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.snapshot = snap
	u.loaded = true
	u.mu.Unlock()
	return nil
}

// Apply updates the cached counters from a generation result, which
// carries the server's post-generation remaining count.
func (u *UsageTracker) Apply(result api.GenerationResult) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.loaded {
		return
	}
	if u.snapshot.Limit > 0 {
		u.snapshot.Remaining = result.Remaining
		u.snapshot.Used = u.snapshot.Limit - result.Remaining
	}
}

// Snapshot returns the cached usage and whether one has been loaded.
func (u *UsageTracker) Snapshot() (api.UsageSnapshot, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.snapshot, u.loaded
}

// NearLimit reports whether the cached usage is at or past 80% of the
// limit. Unknown usage is never near the limit.
func (u *UsageTracker) NearLimit() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.loaded && u.snapshot.NearLimit()
}
