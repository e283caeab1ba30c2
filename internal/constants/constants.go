package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 10 * time.Second

	// ShortHTTPTimeout is used for quick operations such as health probes.
	ShortHTTPTimeout = 5 * time.Second

	// ExtendedHTTPTimeout is used for longer operations such as chat replies.
	ExtendedHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of transport retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second

	// QueryRetryMax is the retry budget for cached queries.
	QueryRetryMax = 3

	// QueryRetryWaitMin is the first backoff delay between query retries.
	QueryRetryWaitMin = time.Second

	// QueryRetryWaitMax caps the backoff between query retries.
	QueryRetryWaitMax = 30 * time.Second

	// MutationRetryMax is the retry budget for mutations.
	MutationRetryMax = 1

	// MutationRetryDelay is the fixed delay before a mutation retry.
	MutationRetryDelay = 1 * time.Second
)

// Cache tuning.
const (
	// DefaultCacheSize is the maximum number of entries held by the memory cache.
	DefaultCacheSize = 1000

	// DefaultStaleTime is how long a cached query result is considered fresh.
	DefaultStaleTime = 5 * time.Minute

	// DefaultGCTime is how long an unused cache entry survives before eviction.
	DefaultGCTime = 10 * time.Minute
)

// Concurrency limits.
const (
	// DefaultPrefetchConcurrency limits concurrent prefetch workers.
	DefaultPrefetchConcurrency = 3
)

// Pagination and display limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 20

	// MaxPageSize is the largest page the API will serve.
	MaxPageSize = 100
)
