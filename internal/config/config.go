package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// sync-keeper client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the client role label
	// and version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local durable store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network address and timeout settings for the outbound
	// transport used to reach the sync server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds tuning knobs for the reconciliation engine: queue bounds,
	// retry budget, backoff schedule and connectivity probing.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Role is the label attached to every log entry emitted by this
	// process (e.g. "sync-client").
	// Env: APP_ROLE
	Role string `env:"ROLE"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the client's durable store.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database that backs the
// durable key-value store.
type DB struct {
	// DSN is the SQLite connection string, typically a file path
	// (e.g. "sync-keeper.db" or "file:sync.db?cache=shared").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// HTTPAddress is the base URL of the sync server
	// (e.g. "https://sync.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the transport cancels it (e.g. "15s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the reconciliation engine's tuning parameters.
type Sync struct {
	// QueueCapacity bounds the number of pending local writes held by the
	// mutation queue. Enqueue beyond this bound fails; entries are never
	// silently evicted.
	// Env: SYNC_QUEUE_CAPACITY
	QueueCapacity int `env:"QUEUE_CAPACITY"`

	// MaxRetries bounds transient-failure retries per mutation.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// BaseBackoff is the delay before the first retry; each subsequent
	// retry doubles it (e.g. "1s" → 1s, 2s, 4s).
	// Env: SYNC_BASE_BACKOFF
	BaseBackoff time.Duration `env:"BASE_BACKOFF"`

	// MaxBackoff caps the doubling backoff schedule.
	// Env: SYNC_MAX_BACKOFF
	MaxBackoff time.Duration `env:"MAX_BACKOFF"`

	// ProbeInterval is how often the connectivity monitor samples the link.
	// Env: SYNC_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// StaleWindow is the lookback used after a reconnection sync: any view
	// accessed within this window receives a caches-stale notification.
	// Env: SYNC_STALE_WINDOW
	StaleWindow time.Duration `env:"STALE_WINDOW"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the periodic delta-sync worker runs
	// while the client stays online.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
