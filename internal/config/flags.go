package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server base URL
//	-d local database DSN
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-queue-capacity mutation queue capacity
//	-max-retries per-mutation retry budget
//	-base-backoff first retry delay (e.g., "1s")
//	-max-backoff backoff cap (e.g., "30s")
//	-probe-interval connectivity probe interval
//	-stale-window caches-stale lookback window
//	-sync-interval periodic delta-sync interval
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var queueCapacity int
	var maxRetries int
	var baseBackoff time.Duration
	var maxBackoff time.Duration
	var probeInterval time.Duration
	var staleWindow time.Duration
	var syncInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Sync server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.IntVar(&queueCapacity, "queue-capacity", 0, "Mutation queue capacity")
	flag.IntVar(&maxRetries, "max-retries", 0, "Per-mutation retry budget")
	flag.DurationVar(&baseBackoff, "base-backoff", 0, "First retry delay (e.g., 1s)")
	flag.DurationVar(&maxBackoff, "max-backoff", 0, "Backoff cap (e.g., 30s)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	flag.DurationVar(&staleWindow, "stale-window", 0, "Caches-stale lookback window")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic delta-sync interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			QueueCapacity: queueCapacity,
			MaxRetries:    maxRetries,
			BaseBackoff:   baseBackoff,
			MaxBackoff:    maxBackoff,
			ProbeInterval: probeInterval,
			StaleWindow:   staleWindow,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
