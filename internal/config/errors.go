package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when the local database settings
	// are missing or unusable for a durable client store.
	ErrInvalidStorageConfigs = errors.New("invalid storage configs provided")

	// ErrInvalidAdapterConfigs is returned when the outbound transport
	// settings are incomplete (no server address or timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configs provided")

	// ErrInvalidSyncConfigs is returned when the engine tuning values are
	// out of range (e.g. zero queue capacity or non-positive backoff).
	ErrInvalidSyncConfigs = errors.New("invalid sync configs provided")

	// ErrInvalidWorkerConfigs is returned when background worker settings
	// are missing.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configs provided")
)
