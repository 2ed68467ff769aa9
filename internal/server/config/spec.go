// Package config defines the server configuration structure.
package config

import "time"

// Storage engine names accepted by storage.engine.
const (
	EngineFile   = "file"
	EngineBadger = "badger"
	EngineMemory = "memory"
)

// ServerConfig is the root configuration for dialauth-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Storage  StorageSection  `koanf:"storage"`
	Security SecuritySection `koanf:"security"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures server endpoints and limits.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`

	// GlobalRateLimit is the per-client request budget in requests per
	// second. Zero disables global rate limiting.
	GlobalRateLimit int `koanf:"global_rate_limit"`

	// LoginRateLimit is the per-client budget for login attempts in
	// requests per minute. Zero disables the login limiter.
	LoginRateLimit int `koanf:"login_rate_limit"`

	// ShutdownTimeout bounds graceful drain on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// StorageSection configures the record store.
type StorageSection struct {
	// Engine selects the record store: file, badger, or memory.
	Engine string `koanf:"engine"`

	// DataDir is the root directory for the file and badger engines.
	DataDir string `koanf:"data_dir"`

	// BadgerSyncWrites forces fsync on every Badger write.
	BadgerSyncWrites bool `koanf:"badger_sync_writes"`

	// BadgerGCInterval is the Badger value-log GC interval.
	BadgerGCInterval time.Duration `koanf:"badger_gc_interval"`
}

// SecuritySection configures credential handling and token issuance.
type SecuritySection struct {
	// HashingSecret keys the password digest derivation. Required, at
	// least 8 characters, and must stay stable for the deployment or all
	// stored digests stop matching.
	HashingSecret string `koanf:"hashing_secret"`

	// TokenLength is the issued token ID length in characters.
	TokenLength int `koanf:"token_length"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
