package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creotizant/HCM-Landing/internal/catalog"
)

type stubView struct{ name string }

func (v stubView) Name() string { return v.name }

func (v stubView) Render(w io.Writer, _ any, _ bool) error {
	_, err := io.WriteString(w, v.name)
	return err
}

// gatedLoader blocks loads of the named views until released.
type gatedLoader struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	fail  map[string]error
	calls atomic.Int32
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{gates: map[string]chan struct{}{}, fail: map[string]error{}}
}

func (g *gatedLoader) hold(view string) {
	g.mu.Lock()
	g.gates[view] = make(chan struct{})
	g.mu.Unlock()
}

func (g *gatedLoader) release(view string) {
	g.mu.Lock()
	ch := g.gates[view]
	g.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

func (g *gatedLoader) Load(ctx context.Context, view string) (View, error) {
	g.calls.Add(1)
	g.mu.Lock()
	gate := g.gates[view]
	err := g.fail[view]
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return stubView{name: view}, nil
}

type scrollCounter struct{ n atomic.Int32 }

func (c *scrollCounter) ScrollToOrigin() { c.n.Add(1) }

func waitDone(t *testing.T, tk Ticket) {
	t.Helper()
	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("load of %q did not finish", tk.PageID)
	}
}

func TestShellStartsOnHome(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	assert.Equal(t, "home", sh.Current())
	_, ok := sh.Displayed()
	assert.False(t, ok)
	assert.False(t, sh.Overlays().AnyOpen())
}

func TestShellNavigateMountsView(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	var sc scrollCounter

	tk := sh.Navigate("hirely-ai", &sc)
	assert.Equal(t, "hirely-ai", sh.Current())
	assert.Equal(t, int32(1), sc.n.Load())

	m, err := sh.Await(context.Background(), tk)
	require.NoError(t, err)
	assert.Equal(t, ViewProductDetail, m.View.Name())
	require.True(t, m.Selection.IsProduct())
	assert.Equal(t, "HirelyAI", m.Selection.Product.Name)

	shown, ok := sh.Displayed()
	require.True(t, ok)
	assert.Equal(t, "hirely-ai", shown.PageID)
}

func TestShellNavigateSameIDTwice(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	var sc scrollCounter

	first := sh.Navigate("pricing", &sc)
	_, err := sh.Await(context.Background(), first)
	require.NoError(t, err)
	second := sh.Navigate("pricing", &sc)
	m, err := sh.Await(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, "pricing", sh.Current())
	assert.Equal(t, "pricing", m.View.Name())
	assert.Equal(t, int32(2), sc.n.Load(), "every navigation resets scroll")
}

func TestShellLastNavigationWins(t *testing.T) {
	t.Parallel()

	loader := newGatedLoader()
	loader.hold("products")
	sh := NewShell(catalog.Default(), loader)

	slow := sh.Navigate("products", nil)
	fast := sh.Navigate("pricing", nil)

	m, err := sh.Await(context.Background(), fast)
	require.NoError(t, err)
	assert.Equal(t, "pricing", m.View.Name())

	_, err = sh.Await(context.Background(), slow)
	assert.ErrorIs(t, err, ErrSuperseded)

	// The stale load completes after the newer one and must not mount.
	loader.release("products")
	waitDone(t, slow)

	shown, ok := sh.Displayed()
	require.True(t, ok)
	assert.Equal(t, "pricing", shown.View.Name())
	assert.Equal(t, fast.Generation, shown.Generation)
	assert.Equal(t, "pricing", sh.Current())
}

func TestShellSupersededLoadFinishingFirstNeverMounts(t *testing.T) {
	t.Parallel()

	loader := newGatedLoader()
	loader.hold("products")
	loader.hold("pricing")
	sh := NewShell(catalog.Default(), loader)

	a := sh.Navigate("products", nil)
	b := sh.Navigate("pricing", nil)

	loader.release("products")
	waitDone(t, a)
	_, ok := sh.Displayed()
	assert.False(t, ok, "superseded view mounted")

	loader.release("pricing")
	m, err := sh.Await(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "pricing", m.View.Name())
}

func TestShellLoadFailureKeepsPreviousView(t *testing.T) {
	t.Parallel()

	loader := newGatedLoader()
	loader.fail["demo"] = errors.New("template missing")
	sh := NewShell(catalog.Default(), loader)

	_, err := sh.Await(context.Background(), sh.Navigate("pricing", nil))
	require.NoError(t, err)

	_, err = sh.Await(context.Background(), sh.Navigate("demo", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template missing")

	shown, ok := sh.Displayed()
	require.True(t, ok)
	assert.Equal(t, "pricing", shown.View.Name())
	assert.Equal(t, "demo", sh.Current())
}

func TestShellAwaitHonoursContext(t *testing.T) {
	t.Parallel()

	loader := newGatedLoader()
	loader.hold("platform")
	sh := NewShell(catalog.Default(), loader)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := sh.Await(ctx, sh.Navigate("platform", nil))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	loader.release("platform")
}

func TestShellNavigateClosesOverlays(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	sh.ToggleMobileMenu()
	sh.OpenDropdown("products")
	require.True(t, sh.Overlays().AnyOpen())

	sh.Navigate("why", nil)
	assert.Equal(t, Overlays{}, sh.Overlays())
}

func TestShellToggleMobileMenuClosesDropdown(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	sh.OpenDropdown("products")
	ov := sh.ToggleMobileMenu()
	assert.True(t, ov.MobileMenuOpen)
	assert.Empty(t, ov.Dropdown)

	ov = sh.ToggleMobileMenu()
	assert.False(t, ov.MobileMenuOpen)

	sh.OpenDropdown("products")
	sh.CloseOverlays()
	assert.False(t, sh.Overlays().AnyOpen())
}

func TestShellUnknownIDLoadsHome(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	tk := sh.Navigate("xyz-nonexistent", nil)
	assert.Equal(t, "xyz-nonexistent", sh.Current())

	m, err := sh.Await(context.Background(), tk)
	require.NoError(t, err)
	assert.Equal(t, "home", m.View.Name())
}

func TestShellConcurrentNavigationsSettleOnLatest(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), newGatedLoader())
	ids := []string{"home", "pricing", "why", "hirely-ai", "contact"}

	var wg sync.WaitGroup
	tickets := make(chan Ticket, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tickets <- sh.Navigate(ids[i%len(ids)], nil)
		}(i)
	}
	wg.Wait()
	close(tickets)
	for tk := range tickets {
		waitDone(t, tk)
	}

	state := sh.Snapshot()
	assert.Equal(t, uint64(50), state.Generation)
	shown, ok := sh.Displayed()
	require.True(t, ok)
	assert.Equal(t, state.Generation, shown.Generation, fmt.Sprintf("mounted %q", shown.PageID))
	assert.Equal(t, state.Current, shown.PageID)
}

func TestShellWithoutLoaderFails(t *testing.T) {
	t.Parallel()

	sh := NewShell(catalog.Default(), nil)
	_, err := sh.Await(context.Background(), sh.Navigate("home", nil))
	require.Error(t, err)

	_, err = sh.Await(context.Background(), Ticket{})
	assert.Error(t, err)
}

func TestLoaderFuncAndScrollerFunc(t *testing.T) {
	t.Parallel()

	var scrolled bool
	sh := NewShell(catalog.Default(), LoaderFunc(func(_ context.Context, view string) (View, error) {
		return stubView{name: "fn:" + view}, nil
	}))
	m, err := sh.Await(context.Background(), sh.Navigate("resources", ScrollerFunc(func() { scrolled = true })))
	require.NoError(t, err)
	assert.True(t, scrolled)
	assert.Equal(t, "fn:resources", m.View.Name())
}
