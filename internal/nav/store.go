package nav

import (
	"context"
	"sync"
	"time"
)

const defaultIdleTTL = 30 * time.Minute

// Store keeps one Shell per session in memory. Nothing is persisted; idle
// shells are dropped by Sweep.
type Store struct {
	factory func() *Shell
	ttl     time.Duration
	now     func() time.Time

	mu     sync.Mutex
	shells map[string]*storeEntry
}

type storeEntry struct {
	shell    *Shell
	lastSeen time.Time
}

// NewStore builds a store creating shells with factory. A non-positive ttl
// falls back to 30 minutes.
func NewStore(factory func() *Shell, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}
	return &Store{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		shells:  map[string]*storeEntry{},
	}
}

// Shell returns the shell of sessionID, creating it on first use.
func (st *Store) Shell(sessionID string) *Shell {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	if e, ok := st.shells[sessionID]; ok {
		e.lastSeen = now
		return e.shell
	}
	sh := st.factory()
	st.shells[sessionID] = &storeEntry{shell: sh, lastSeen: now}
	return sh
}

// Len returns the number of live shells.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.shells)
}

// Sweep drops shells idle for longer than the ttl and returns how many went.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for id, e := range st.shells {
		if e.lastSeen.Before(cutoff) {
			delete(st.shells, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = st.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
