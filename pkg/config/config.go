package config

import (
	"time"

	"github.com/landchain/titleledger/pkg/registry"
)

// Config represents the main configuration for a ledger node.
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Storage StorageConfig `yaml:"storage"`
	Gateway GatewayConfig `yaml:"gateway"`
	Logging LoggingConfig `yaml:"logging"`
}

// LedgerConfig contains the core state machine settings.
type LedgerConfig struct {
	// Admin is the initial administrator address; required on first boot.
	// Ignored when a snapshot is restored, since the snapshot carries the
	// current admin.
	Admin string `yaml:"admin"`

	// VerificationPolicy selects whether verification survives a transfer:
	// "reset" (default) or "carry".
	VerificationPolicy registry.VerificationPolicy `yaml:"verification_policy"`

	// EventBuffer is the event bus inbox capacity.
	EventBuffer int `yaml:"event_buffer"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// DataDir is where the sqlite database lives. Empty disables persistence
	// and the ledger runs purely in memory.
	DataDir string `yaml:"data_dir"`

	// JournalEvents controls whether committed events are appended to the
	// durable journal.
	JournalEvents bool `yaml:"journal_events"`
}

// GatewayConfig contains HTTP API settings.
type GatewayConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	// RequireAuth enforces signature authentication on write endpoints.
	RequireAuth bool `yaml:"require_auth"`

	// RateLimitPerMin and RateLimitBurst bound write requests per caller.
	// Zero disables rate limiting.
	RateLimitPerMin int `yaml:"rate_limit_per_min"`
	RateLimitBurst  int `yaml:"rate_limit_burst"`

	// RequestTimeout bounds handler execution.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LoggingConfig contains logging-related configuration.
type LoggingConfig struct {
	EnableColors bool   `yaml:"enable_colors"`
	File         string `yaml:"file"` // empty logs to stdout
}

// Default returns a config with sane development defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			VerificationPolicy: registry.PolicyReset,
			EventBuffer:        256,
		},
		Storage: StorageConfig{
			DataDir:       "",
			JournalEvents: true,
		},
		Gateway: GatewayConfig{
			ListenAddr:      ":6001",
			RequireAuth:     true,
			RateLimitPerMin: 120,
			RateLimitBurst:  30,
			RequestTimeout:  15 * time.Second,
		},
		Logging: LoggingConfig{
			EnableColors: true,
		},
	}
}
