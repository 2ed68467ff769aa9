// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifySecurity(&cfg.Security); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}

	// TLS cert and key come as a pair.
	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and tls_key_file must be set together")
	}
	for _, f := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("tls file %s: %w", f, err)
		}
	}

	if cfg.GlobalRateLimit < 0 {
		return errors.New("server.global_rate_limit must not be negative")
	}
	if cfg.LoginRateLimit < 0 {
		return errors.New("server.login_rate_limit must not be negative")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Engine {
	case EngineFile, EngineBadger:
		if cfg.DataDir == "" {
			return errors.New("storage.data_dir is required")
		}
		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return errors.New("cannot create data directory: " + err.Error())
		}
	case EngineMemory:
		// No directory needed.
	default:
		return fmt.Errorf("storage.engine must be one of %s, %s, %s", EngineFile, EngineBadger, EngineMemory)
	}
	return nil
}

func verifySecurity(cfg *SecuritySection) error {
	if len(cfg.HashingSecret) < 8 {
		return errors.New("security.hashing_secret is required and must be at least 8 characters")
	}
	if cfg.TokenLength < 16 {
		return errors.New("security.token_length must be at least 16")
	}
	return nil
}
