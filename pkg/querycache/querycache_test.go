package querycache

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// fastOptions keeps retry delays out of test runtime.
func fastOptions() *Options {
	opts := DefaultOptions()
	opts.QueryRetryWaitMin = time.Millisecond
	opts.QueryRetryWaitMax = 2 * time.Millisecond
	opts.MutationRetryDelay = time.Millisecond

	return opts
}

func TestFetch_ServesFreshFromCache(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	key := mediseek.ClinicsDomain.List(nil)

	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)

		return "clinic-list", nil
	}

	ctx := context.Background()

	first, err := Fetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "clinic-list", first)

	second, err := Fetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "clinic-list", second)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_RefetchesWhenStale(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	key := mediseek.ClinicsDomain.List(nil)

	current := time.Now()
	cache.now = func() time.Time { return current }

	var calls int32

	fetch := func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	ctx := context.Background()

	_, err := Fetch(ctx, cache, key, fetch)
	require.NoError(t, err)

	// Inside the stale window the cached value is served.
	current = current.Add(cache.options.StaleTime - time.Second)
	value, err := Fetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	// Past the stale window the fetch runs again.
	current = current.Add(2 * time.Second)
	value, err = Fetch(ctx, cache, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestFetch_GCEvictsUnusedEntries(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())

	current := time.Now()
	cache.now = func() time.Time { return current }

	ctx := context.Background()

	_, err := Fetch(ctx, cache, mediseek.ClinicsDomain.List(nil), func(ctx context.Context) (string, error) {
		return "a", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	current = current.Add(cache.options.GCTime + time.Second)

	// Any lookup runs the lazy GC pass.
	_, err = Fetch(ctx, cache, mediseek.BookingsDomain.List(nil), func(ctx context.Context) (string, error) {
		return "b", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestFetch_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	key := mediseek.ClinicsDomain.Detail("c1")

	var calls int32

	gate := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-gate

		return "clinic", nil
	}

	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]string, 5)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			value, err := Fetch(ctx, cache, key, fetch)
			assert.NoError(t, err)
			results[i] = value
		}(i)
	}

	// Give the goroutines time to pile onto the same in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	for _, value := range results {
		assert.Equal(t, "clinic", value)
	}
}

func TestFetch_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())

	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", &mediseek.NetworkError{Err: errors.New("connection reset")}
		}

		return "recovered", nil
	}

	value, err := Fetch(context.Background(), cache, mediseek.ClinicsDomain.List(nil), fetch)
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_DoesNotRetryValidationOrClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"validation failure", mediseek.NewValidationError(map[string]string{"id": "is required"})},
		{"superseded request", &mediseek.CancelledError{}},
		{"not found", &mediseek.StatusError{StatusCode: http.StatusNotFound}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache := New(fastOptions())

			var calls int32

			_, err := Fetch(context.Background(), cache, mediseek.ClinicsDomain.Detail("x"),
				func(ctx context.Context) (string, error) {
					atomic.AddInt32(&calls, 1)

					return "", tt.err
				})
			require.Error(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestInvalidate_PrefixHierarchy(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	ctx := context.Background()

	seed := func(key mediseek.Key, value string) {
		_, err := Fetch(ctx, cache, key, func(ctx context.Context) (string, error) {
			return value, nil
		})
		require.NoError(t, err)
	}

	seed(mediseek.ClinicsDomain.List(nil), "list")
	seed(mediseek.ClinicsDomain.List(map[string]string{"page": "2"}), "list-p2")
	seed(mediseek.ClinicsDomain.Detail("c1"), "detail")
	seed(mediseek.BookingsDomain.List(nil), "bookings")

	// Invalidating the lists prefix removes both list entries and nothing else.
	removed := cache.Invalidate(mediseek.ClinicsDomain.Lists())
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, cache.Len())

	// Invalidating the whole domain removes the detail too.
	removed = cache.Invalidate(mediseek.ClinicsDomain.All())
	assert.Equal(t, 1, removed)

	// The bookings entry stays cached throughout.
	var calls int32

	_, err := Fetch(ctx, cache, mediseek.BookingsDomain.List(nil), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)

		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestMutate_InvalidatesOnSuccess(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	ctx := context.Background()

	_, err := Fetch(ctx, cache, mediseek.BookingsDomain.List(nil), func(ctx context.Context) (string, error) {
		return "stale-list", nil
	})
	require.NoError(t, err)

	value, err := Mutate(ctx, cache, func(ctx context.Context) (string, error) {
		return "created", nil
	}, mediseek.BookingsDomain.Lists())
	require.NoError(t, err)
	assert.Equal(t, "created", value)

	// The list refetches after the mutation.
	var calls int32

	_, err = Fetch(ctx, cache, mediseek.BookingsDomain.List(nil), func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)

		return "fresh-list", nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestMutate_RetriesOnceThenFails(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())

	var calls int32

	_, err := Mutate(context.Background(), cache, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)

		return "", &mediseek.NetworkError{Err: errors.New("connection reset")}
	})
	require.Error(t, err)
	assert.True(t, mediseek.IsNetwork(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMutate_FailureDoesNotInvalidate(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	ctx := context.Background()

	_, err := Fetch(ctx, cache, mediseek.BookingsDomain.List(nil), func(ctx context.Context) (string, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	_, err = Mutate(ctx, cache, func(ctx context.Context) (string, error) {
		return "", &mediseek.StatusError{StatusCode: http.StatusConflict}
	}, mediseek.BookingsDomain.Lists())
	require.Error(t, err)

	assert.Equal(t, 1, cache.Len())
}

func TestOnReconnect_MarksEverythingStale(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	ctx := context.Background()

	var calls int32

	fetch := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)

		return "value", nil
	}

	_, err := Fetch(ctx, cache, mediseek.ClinicsDomain.List(nil), fetch)
	require.NoError(t, err)

	cache.OnReconnect()

	_, err = Fetch(ctx, cache, mediseek.ClinicsDomain.List(nil), fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPrefetch_WarmsCache(t *testing.T) {
	t.Parallel()

	cache := New(fastOptions())
	ctx := context.Background()

	cache.Prefetch(ctx, []PrefetchQuery{
		{
			Key: mediseek.ClinicsDomain.List(nil),
			Fetch: func(ctx context.Context) (interface{}, error) {
				return "clinics", nil
			},
		},
		{
			Key: mediseek.BookingsDomain.List(nil),
			Fetch: func(ctx context.Context) (interface{}, error) {
				return "bookings", nil
			},
		},
		{
			Key: mediseek.ChatDomain.Lists(),
			Fetch: func(ctx context.Context) (interface{}, error) {
				return nil, errors.New("prefetch failures are dropped")
			},
		},
	})

	assert.Equal(t, 2, cache.Len())

	// A warmed key serves without refetching.
	var calls int32

	value, err := Fetch(ctx, cache, mediseek.ClinicsDomain.List(nil), func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)

		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "clinics", value)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
