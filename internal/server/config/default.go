// Package config defines the server configuration structure.
package config

import (
	"time"

	"github.com/yndnr/dialauth/pkg/token"
)

// Default configuration values.
const (
	DefaultHTTPAddr = "127.0.0.1:8080"

	DefaultGlobalRateLimit = 100
	DefaultLoginRateLimit  = 10
	DefaultShutdownTimeout = 10 * time.Second

	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultIdleTimeout  = 60 * time.Second

	DefaultEngine           = EngineFile
	DefaultDataDir          = "/var/lib/dialauth-server/data"
	DefaultBadgerGCInterval = 10 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration. The hashing secret
// has no default; deployments must set it explicitly.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:         DefaultHTTPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				IdleTimeout:  DefaultIdleTimeout,
			},
			GlobalRateLimit: DefaultGlobalRateLimit,
			LoginRateLimit:  DefaultLoginRateLimit,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Storage: StorageSection{
			Engine:           DefaultEngine,
			DataDir:          DefaultDataDir,
			BadgerSyncWrites: true,
			BadgerGCInterval: DefaultBadgerGCInterval,
		},
		Security: SecuritySection{
			TokenLength: token.DefaultLength,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
