// Package querycache binds resource access functions into a reactive cache:
// query results are served fresh for a stale window, identical in-flight
// queries are de-duplicated, failed queries retry with capped exponential
// backoff, and mutations invalidate cache-key prefixes on success.
package querycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/mediseek-io/mediseek-client/internal/constants"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// Static errors.
var (
	ErrWrongCachedType = errors.New("cached value has unexpected type")
)

// Options tunes cache freshness and retry policy.
type Options struct {
	// StaleTime is how long a fetched result is served without refetching.
	StaleTime time.Duration

	// GCTime is how long an unused entry survives before eviction.
	GCTime time.Duration

	// QueryRetryMax is the retry budget for failed queries.
	QueryRetryMax uint64

	// QueryRetryWaitMin is the first backoff delay between query retries.
	QueryRetryWaitMin time.Duration

	// QueryRetryWaitMax caps the exponential backoff between query retries.
	QueryRetryWaitMax time.Duration

	// MutationRetryMax is the retry budget for failed mutations.
	MutationRetryMax uint64

	// MutationRetryDelay is the fixed delay before a mutation retry.
	MutationRetryDelay time.Duration

	// PrefetchConcurrency limits concurrent Prefetch workers.
	PrefetchConcurrency int
}

// DefaultOptions returns the standard cache policy: fresh for 5 minutes,
// evicted after 10 minutes unused, 3 query retries with backoff capped at
// 30 s, 1 mutation retry after a fixed 1 s delay.
func DefaultOptions() *Options {
	return &Options{
		StaleTime:           constants.DefaultStaleTime,
		GCTime:              constants.DefaultGCTime,
		QueryRetryMax:       constants.QueryRetryMax,
		QueryRetryWaitMin:   constants.QueryRetryWaitMin,
		QueryRetryWaitMax:   constants.QueryRetryWaitMax,
		MutationRetryMax:    constants.MutationRetryMax,
		MutationRetryDelay:  constants.MutationRetryDelay,
		PrefetchConcurrency: constants.DefaultPrefetchConcurrency,
	}
}

type entry struct {
	key        mediseek.Key
	value      interface{}
	fetchedAt  time.Time
	lastAccess time.Time
}

// Client is the query/mutation cache. All methods are safe for concurrent
// use.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	options *Options

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a query cache. A nil options uses DefaultOptions.
func New(options *Options) *Client {
	if options == nil {
		options = DefaultOptions()
	}

	return &Client{
		entries: make(map[string]*entry),
		options: options,
		now:     time.Now,
	}
}

// lookup returns the cached value for key when it is still fresh. It also
// runs the lazy GC pass evicting entries unused past GCTime.
func (c *Client) lookup(key mediseek.Key) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	for id, e := range c.entries {
		if now.Sub(e.lastAccess) > c.options.GCTime {
			delete(c.entries, id)
		}
	}

	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}

	e.lastAccess = now

	if now.Sub(e.fetchedAt) >= c.options.StaleTime {
		return nil, false
	}

	return e.value, true
}

func (c *Client) store(key mediseek.Key, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key.String()] = &entry{
		key:        key,
		value:      value,
		fetchedAt:  now,
		lastAccess: now,
	}
}

// Invalidate removes every entry whose key extends any of the given
// prefixes and returns the number removed. A subsequent Fetch under a
// removed key refetches instead of serving stale data.
func (c *Client) Invalidate(prefixes ...mediseek.Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0

	for id, e := range c.entries {
		for _, prefix := range prefixes {
			if e.key.HasPrefix(prefix) {
				delete(c.entries, id)

				removed++

				break
			}
		}
	}

	return removed
}

// MarkStale keeps matching entries but forces the next Fetch to refetch.
// With no prefixes, every entry is marked.
func (c *Client) MarkStale(prefixes ...mediseek.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if len(prefixes) == 0 {
			e.fetchedAt = time.Time{}

			continue
		}

		for _, prefix := range prefixes {
			if e.key.HasPrefix(prefix) {
				e.fetchedAt = time.Time{}

				break
			}
		}
	}
}

// OnReconnect marks the whole cache stale so queries refetch after network
// connectivity returns. Refocus events deliberately have no counterpart.
func (c *Client) OnReconnect() {
	c.MarkStale()
}

// Len returns the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// retryable reports whether a query failure is worth retrying. Validation
// failures are contract violations and superseded requests already lost the
// slot; retrying either would be wasted work.
func retryable(err error) bool {
	if mediseek.IsValidation(err) || mediseek.IsCancelled(err) {
		return false
	}

	serr := &mediseek.StatusError{}
	if errors.As(err, &serr) {
		return serr.StatusCode >= 500 || serr.StatusCode == 429
	}

	return true
}

// fetchWithRetry runs fn under the query retry policy.
func (c *Client) fetchWithRetry(ctx context.Context, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	policy := backoff.NewExponentialBackOff()
	if c.options.QueryRetryWaitMin > 0 {
		policy.InitialInterval = c.options.QueryRetryWaitMin
	}

	policy.MaxInterval = c.options.QueryRetryWaitMax
	policy.MaxElapsedTime = 0

	var value interface{}

	operation := func() error {
		var err error

		value, err = fn(ctx)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, c.options.QueryRetryMax), ctx))
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Fetch returns the cached value under key when fresh, otherwise runs fn
// and caches its result. Concurrent fetches for the same key share one
// in-flight call.
func Fetch[T any](ctx context.Context, c *Client, key mediseek.Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if cached, ok := c.lookup(key); ok {
		value, ok := cached.(T)
		if ok {
			return value, nil
		}
		// Type changed under the same key; drop the entry and refetch.
		c.Invalidate(key)
	}

	result, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		value, err := c.fetchWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
			return fn(ctx)
		})
		if err != nil {
			return nil, err
		}

		c.store(key, value)

		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := result.(T)
	if !ok {
		return zero, ErrWrongCachedType
	}

	return value, nil
}

// Mutate runs a state-changing operation under the mutation retry policy
// and, on success, invalidates the given key prefixes. A domain mutation
// should invalidate at least the domain's Lists() prefix.
func Mutate[T any](ctx context.Context, c *Client, fn func(ctx context.Context) (T, error), invalidate ...mediseek.Key) (T, error) {
	var (
		value T
		err   error
	)

	for attempt := uint64(0); ; attempt++ {
		value, err = fn(ctx)
		if err == nil {
			break
		}

		if attempt >= c.options.MutationRetryMax || !retryable(err) {
			return value, err
		}

		select {
		case <-time.After(c.options.MutationRetryDelay):
		case <-ctx.Done():
			return value, ctx.Err()
		}
	}

	c.Invalidate(invalidate...)

	return value, nil
}

// PrefetchQuery names one cache key and how to fill it.
type PrefetchQuery struct {
	Key   mediseek.Key
	Fetch func(ctx context.Context) (interface{}, error)
}

// Prefetch warms the cache for several queries concurrently, bounded by the
// configured worker count. Individual failures are dropped; prefetching is
// best-effort.
func (c *Client) Prefetch(ctx context.Context, queries []PrefetchQuery) {
	limit := c.options.PrefetchConcurrency
	if limit <= 0 {
		limit = 1
	}

	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup

	for _, q := range queries {
		wg.Add(1)

		go func(q PrefetchQuery) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			_, _ = Fetch(ctx, c, q.Key, q.Fetch)
		}(q)
	}

	wg.Wait()
}
