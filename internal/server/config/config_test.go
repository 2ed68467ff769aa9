// Package config defines the server configuration structure.
package config

import (
	"path/filepath"
	"strings"
	"testing"
)

// validConfig returns a configuration that passes Verify.
func validConfig(t *testing.T) *ServerConfig {
	t.Helper()
	cfg := Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Security.HashingSecret = "test-deployment-secret"
	return cfg
}

// TestVerify tests configuration validation.
func TestVerify(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := Verify(validConfig(t)); err != nil {
			t.Errorf("Verify failed: %v", err)
		}
	})

	t.Run("missing http addr", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Server.HTTP.Addr = ""
		if err := Verify(cfg); err == nil {
			t.Error("expected error for empty http addr")
		}
	})

	t.Run("tls cert without key", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Server.HTTP.TLSCertFile = "/etc/dialauth/server.crt"
		if err := Verify(cfg); err == nil {
			t.Error("expected error for cert without key")
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.Engine = "etcd"
		err := Verify(cfg)
		if err == nil || !strings.Contains(err.Error(), "storage.engine") {
			t.Errorf("error = %v, want storage.engine complaint", err)
		}
	})

	t.Run("memory engine needs no data dir", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Storage.Engine = EngineMemory
		cfg.Storage.DataDir = ""
		if err := Verify(cfg); err != nil {
			t.Errorf("Verify failed: %v", err)
		}
	})

	t.Run("missing hashing secret", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Security.HashingSecret = ""
		if err := Verify(cfg); err == nil {
			t.Error("expected error for missing hashing secret")
		}
	})

	t.Run("short hashing secret", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Security.HashingSecret = "short"
		if err := Verify(cfg); err == nil {
			t.Error("expected error for short hashing secret")
		}
	})

	t.Run("token length too small", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Security.TokenLength = 8
		if err := Verify(cfg); err == nil {
			t.Error("expected error for token length below 16")
		}
	})

	t.Run("negative rate limit", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Server.GlobalRateLimit = -1
		if err := Verify(cfg); err == nil {
			t.Error("expected error for negative rate limit")
		}
	})
}

// TestDefault tests default values.
func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %s, want %s", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Storage.Engine != EngineFile {
		t.Errorf("Engine = %s, want %s", cfg.Storage.Engine, EngineFile)
	}
	if cfg.Security.HashingSecret != "" {
		t.Error("hashing secret must have no default")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}
