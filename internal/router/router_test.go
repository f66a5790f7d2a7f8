package router

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNavigateEmitsBeforeCommit(t *testing.T) {
	t.Parallel()

	r := New("/introduction")
	var seen []string
	var pathDuring string
	unsubscribe := r.OnNavigationStart(func(target string) {
		seen = append(seen, target)
		pathDuring = r.Path()
	})
	defer unsubscribe()

	require.True(t, r.Navigate("installation"))
	require.Equal(t, []string{"/installation"}, seen)
	require.Equal(t, "/introduction", pathDuring, "handlers observe the old path")
	require.Equal(t, "/installation", r.Path())
}

func TestNavigateSamePathIsNotATransition(t *testing.T) {
	t.Parallel()

	r := New("/api")
	calls := 0
	defer r.OnNavigationStart(func(string) { calls++ })()

	require.False(t, r.Navigate("/api/"))
	require.Zero(t, calls)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	r := New("/")
	a := r.OnNavigationStart(func(string) {})
	b := r.OnNavigationStart(func(string) {})
	require.Equal(t, 2, r.Subscribers())

	a()
	a()
	require.Equal(t, 1, r.Subscribers(), "second call must not remove another handler")

	b()
	require.Zero(t, r.Subscribers())
}

func TestUnsubscribedHandlerIsNotCalled(t *testing.T) {
	t.Parallel()

	r := New("/")
	calls := 0
	unsubscribe := r.OnNavigationStart(func(string) { calls++ })
	r.Navigate("/a")
	unsubscribe()
	r.Navigate("/b")
	require.Equal(t, 1, calls)
}

func TestHandlerMayUnsubscribeDuringNavigation(t *testing.T) {
	t.Parallel()

	r := New("/")
	var unsubscribe func()
	unsubscribe = r.OnNavigationStart(func(string) { unsubscribe() })
	require.True(t, r.Navigate("/a"))
	require.Zero(t, r.Subscribers())
}

func TestConcurrentNavigation(t *testing.T) {
	t.Parallel()

	r := New("/")
	var mu sync.Mutex
	calls := 0
	defer r.OnNavigationStart(func(string) {
		mu.Lock()
		calls++
		mu.Unlock()
	})()

	var wg sync.WaitGroup
	for _, target := range []string{"/a", "/b", "/c", "/d"} {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			r.Navigate(target)
		}(target)
	}
	wg.Wait()

	require.GreaterOrEqual(t, calls, 1)
	require.LessOrEqual(t, calls, 4)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":              "/",
		"/":             "/",
		"stitches":      "/stitches",
		"/api/":         "/api",
		"//docs//theme": "/docs/theme",
		"  variants  ":  "/variants",
	}
	for in, want := range cases {
		require.Equal(t, want, Normalize(in), "input %q", in)
	}
}
