package nav

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creotizant/HCM-Landing/internal/catalog"
)

func TestStoreReusesShellPerSession(t *testing.T) {
	t.Parallel()

	created := 0
	st := NewStore(func() *Shell {
		created++
		return NewShell(catalog.Default(), newGatedLoader())
	}, time.Minute)

	a := st.Shell("a")
	assert.Same(t, a, st.Shell("a"))
	assert.NotSame(t, a, st.Shell("b"))
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, st.Len())
}

func TestStoreSweepDropsIdleShells(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewStore(func() *Shell { return NewShell(nil, nil) }, 10*time.Minute)
	st.now = func() time.Time { return now }

	st.Shell("idle")
	now = now.Add(6 * time.Minute)
	st.Shell("active")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 1, st.Len())

	// Touching a session keeps it alive.
	st.Shell("active")
	now = now.Add(9 * time.Minute)
	assert.Equal(t, 0, st.Sweep())
}

func TestStoreRunStopsWithContext(t *testing.T) {
	t.Parallel()

	st := NewStore(func() *Shell { return NewShell(nil, nil) }, 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
