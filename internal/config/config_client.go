package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Role is the log label for this process.
	Role string
	// Version is the application version string.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the sync server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync groups the reconciliation engine tuning values.
type ClientSync struct {
	QueueCapacity int
	MaxRetries    int
	BaseBackoff   time.Duration
	MaxBackoff    time.Duration
	ProbeInterval time.Duration
	StaleWindow   time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the periodic delta-sync worker runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains engine tuning values.
	Sync ClientSync
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies engine defaults for unset tuning
// values, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Role:    cfg.App.Role,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			QueueCapacity: cfg.Sync.QueueCapacity,
			MaxRetries:    cfg.Sync.MaxRetries,
			BaseBackoff:   cfg.Sync.BaseBackoff,
			MaxBackoff:    cfg.Sync.MaxBackoff,
			ProbeInterval: cfg.Sync.ProbeInterval,
			StaleWindow:   cfg.Sync.StaleWindow,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
		},
	}

	clientCfg.applyDefaults()
	if err = clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

// applyDefaults fills engine tuning values that no config source set.
func (cfg *ClientConfig) applyDefaults() {
	if cfg.App.Role == "" {
		cfg.App.Role = "sync-client"
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if cfg.Sync.QueueCapacity <= 0 {
		cfg.Sync.QueueCapacity = 50
	}
	if cfg.Sync.MaxRetries <= 0 {
		cfg.Sync.MaxRetries = 3
	}
	if cfg.Sync.BaseBackoff <= 0 {
		cfg.Sync.BaseBackoff = time.Second
	}
	if cfg.Sync.MaxBackoff <= 0 {
		cfg.Sync.MaxBackoff = 30 * time.Second
	}
	if cfg.Sync.ProbeInterval <= 0 {
		cfg.Sync.ProbeInterval = 5 * time.Second
	}
	if cfg.Sync.StaleWindow <= 0 {
		cfg.Sync.StaleWindow = 5 * time.Minute
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = 5 * time.Minute
	}
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.MaxBackoff < cfg.Sync.BaseBackoff {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Intentionally permissive: engine defaults are applied later in
// [GetClientConfig], so an empty structured config is still valid here.
func (cfg *StructuredConfig) validate() error {
	return nil
}
