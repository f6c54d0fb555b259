package cascade

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ---- fake fetcher ----

// gatedFetcher resolves each parent's fetch only after its gate is released,
// so tests control the order in which concurrent fetches finish.
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[int64]chan struct{}
	results map[int64]Result
	errs    map[int64]error
	calls   []int64
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates:   make(map[int64]chan struct{}),
		results: make(map[int64]Result),
		errs:    make(map[int64]error),
	}
}

func (f *gatedFetcher) gate(parentID int64) func() {
	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[parentID] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *gatedFetcher) respond(parentID int64, items ...Option) {
	f.mu.Lock()
	f.results[parentID] = Result{Success: true, Items: items}
	f.mu.Unlock()
}

func (f *gatedFetcher) FetchChildren(ctx context.Context, parentID int64) (Result, error) {
	f.mu.Lock()
	gate := f.gates[parentID]
	res := f.results[parentID]
	err := f.errs[parentID]
	f.calls = append(f.calls, parentID)
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return res, err
}

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitSettled(t *testing.T, c *Controller) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return !c.Snapshot().Loading
	}, 2*time.Second, 2*time.Millisecond)
	return c.Snapshot()
}

// ---- TESTS ----

func TestSetParent_FetchesAndAppliesOptions(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.respond(7, Option{ID: 70, Name: "North"}, Option{ID: 71, Name: "South"})

	c := NewController(f, nil)
	c.SetParent(context.Background(), 7)

	snap := waitSettled(t, c)
	require.NotNil(t, snap.ParentID)
	require.EqualValues(t, 7, *snap.ParentID)
	require.Equal(t, []Option{{ID: 70, Name: "North"}, {ID: 71, Name: "South"}}, snap.Options)
	require.Nil(t, snap.ChildID)
	require.Empty(t, snap.FetchError)
}

func TestSetParent_ClearsChildBeforeFetchResolves(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.respond(1, Option{ID: 10, Name: "a"})
	f.respond(2, Option{ID: 20, Name: "b"})
	release := f.gate(2)

	c := NewController(f, nil)
	c.SetParent(context.Background(), 1)
	waitSettled(t, c)
	c.SetChild(10)

	c.SetParent(context.Background(), 2)

	// Before parent 2's fetch resolves, child and options are already gone.
	snap := c.Snapshot()
	require.Nil(t, snap.ChildID)
	require.Nil(t, snap.Options)
	require.True(t, snap.Loading)

	release()
	snap = waitSettled(t, c)
	require.Equal(t, []Option{{ID: 20, Name: "b"}}, snap.Options)
}

func TestSetParent_LastParentWins(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.respond(1, Option{ID: 10, Name: "a"})
	f.respond(2, Option{ID: 20, Name: "b"})
	releaseA := f.gate(1)
	releaseB := f.gate(2)

	c := NewController(f, nil)
	ctx := context.Background()

	c.SetParent(ctx, 1)
	c.SetParent(ctx, 2)

	// Let the superseded fetch resolve late. Its result must be discarded.
	releaseA()
	time.Sleep(20 * time.Millisecond)

	snap := c.Snapshot()
	require.Nil(t, snap.Options, "a superseded fetch must never repopulate options")
	require.True(t, snap.Loading)

	releaseB()
	snap = waitSettled(t, c)
	require.Equal(t, []Option{{ID: 20, Name: "b"}}, snap.Options)
}

func TestSetParent_AbsentIDClearsWithoutFetching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
	}{
		{name: "nil", value: nil},
		{name: "zero", value: 0},
		{name: "negative", value: -3},
		{name: "empty string", value: ""},
		{name: "zero string", value: "0"},
		{name: "NaN", value: math.NaN()},
		{name: "unparsable string", value: "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newGatedFetcher()
			f.respond(1, Option{ID: 10, Name: "a"})

			c := NewController(f, nil)
			c.SetParent(context.Background(), 1)
			waitSettled(t, c)
			c.SetChild(10)

			c.SetParent(context.Background(), tc.value)

			snap := c.Snapshot()
			require.Nil(t, snap.ParentID)
			require.Nil(t, snap.ChildID)
			require.Nil(t, snap.Options)
			require.False(t, snap.Loading)

			// No new fetch may have been issued for the absent id.
			require.Equal(t, 1, f.callCount())
		})
	}
}

func TestSetParent_StringAndNumericFormsEquivalent(t *testing.T) {
	t.Parallel()

	run := func(v any) Snapshot {
		f := newGatedFetcher()
		f.respond(7, Option{ID: 70, Name: "North"})
		c := NewController(f, nil)
		c.SetParent(context.Background(), v)
		return waitSettled(t, c)
	}

	fromString := run("7")
	fromInt := run(7)

	require.Equal(t, fromInt, fromString)
	require.NotNil(t, fromString.ParentID)
	require.EqualValues(t, 7, *fromString.ParentID)
}

func TestFetchFailure_TransportError(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.errs[3] = errors.New("connection refused")

	c := NewController(f, nil)
	c.SetParent(context.Background(), 3)

	snap := waitSettled(t, c)
	require.Nil(t, snap.Options)
	require.Contains(t, snap.FetchError, "connection refused")

	// The form stays usable: re-selecting the parent retries.
	f.mu.Lock()
	delete(f.errs, 3)
	f.mu.Unlock()
	f.respond(3, Option{ID: 30, Name: "x"})

	c.SetParent(context.Background(), 3)
	snap = waitSettled(t, c)
	require.Equal(t, []Option{{ID: 30, Name: "x"}}, snap.Options)
	require.Empty(t, snap.FetchError)
}

func TestFetchFailure_UnsuccessfulEnvelope(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.mu.Lock()
	f.results[3] = Result{Success: false, Message: "districts unavailable"}
	f.mu.Unlock()

	c := NewController(f, nil)
	c.SetParent(context.Background(), 3)

	snap := waitSettled(t, c)
	require.Nil(t, snap.Options)
	require.Equal(t, "districts unavailable", snap.FetchError)
}

func TestPrepopulate_AppliesChildWhenPresent(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.respond(5, Option{ID: 1, Name: "a"}, Option{ID: 2, Name: "b"})

	c := NewController(f, nil)
	c.Prepopulate(context.Background(), 5, 2)

	snap := waitSettled(t, c)
	require.NotNil(t, snap.ChildID)
	require.EqualValues(t, 2, *snap.ChildID)
	require.False(t, snap.StaleRef)
}

func TestPrepopulate_StaleChildLeftUnset(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.respond(5, Option{ID: 1, Name: "a"}, Option{ID: 2, Name: "b"})

	c := NewController(f, nil)
	c.Prepopulate(context.Background(), 5, 99)

	snap := waitSettled(t, c)
	require.Nil(t, snap.ChildID, "stale child must stay unset")
	require.True(t, snap.StaleRef)
	require.Equal(t, []Option{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, snap.Options)
}

func TestSetChild_AcceptedUnconditionally(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	c := NewController(f, nil)

	c.SetChild("42")
	snap := c.Snapshot()
	require.NotNil(t, snap.ChildID)
	require.EqualValues(t, 42, *snap.ChildID)

	c.SetChild(nil)
	snap = c.Snapshot()
	require.Nil(t, snap.ChildID)
}

func TestOnChange_FiresWithFreshSnapshots(t *testing.T) {
	t.Parallel()

	f := newGatedFetcher()
	f.respond(7, Option{ID: 70, Name: "North"})

	c := NewController(f, nil)

	var mu sync.Mutex
	var snaps []Snapshot
	c.OnChange(func(s Snapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})

	c.SetParent(context.Background(), 7)
	waitSettled(t, c)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snaps)
	require.True(t, snaps[0].Loading, "first notification covers the cleared, loading state")
	last := snaps[len(snaps)-1]
	require.False(t, last.Loading)
	require.Equal(t, []Option{{ID: 70, Name: "North"}}, last.Options)
}
