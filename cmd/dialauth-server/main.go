// Package main provides the entry point for dialauth-server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/dialauth/internal/core/service"
	"github.com/yndnr/dialauth/internal/infra/buildinfo"
	"github.com/yndnr/dialauth/internal/infra/confloader"
	"github.com/yndnr/dialauth/internal/infra/shutdown"
	"github.com/yndnr/dialauth/internal/server/config"
	"github.com/yndnr/dialauth/internal/server/httpserver"
	"github.com/yndnr/dialauth/internal/storage"
	"github.com/yndnr/dialauth/internal/storage/memory"
	"github.com/yndnr/dialauth/internal/telemetry/logger"
	"github.com/yndnr/dialauth/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "dialauth-server",
		Usage:   "phone-keyed account and session token service",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"DIALAUTH_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"))
		},
		Commands: []*cli.Command{
			{
				Name:  "verify",
				Usage: "load and validate the configuration, then exit",
				Action: func(c *cli.Context) error {
					if _, err := loadConfig(c.String("config")); err != nil {
						return err
					}
					fmt.Println("configuration ok")
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting dialauth-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"engine", cfg.Storage.Engine,
		"config", configFile)

	// Metrics first so the storage engine can register its collectors.
	metrics := metric.NewRegistry()

	store, err := initStorage(cfg, metrics)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	hasher, err := service.NewArgon2Hasher(cfg.Security.HashingSecret)
	if err != nil {
		return fmt.Errorf("init hasher: %w", err)
	}

	userRepo := storage.NewUserStore(store)
	tokenRepo := storage.NewTokenStore(store)
	authority := service.NewTokenAuthority(tokenRepo, userRepo, hasher, cfg.Security.TokenLength)
	users := service.NewUserService(userRepo, authority, hasher)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		UserService:     users,
		TokenAuthority:  authority,
		Metrics:         metrics,
		Logger:          log,
		GlobalRateLimit: cfg.Server.GlobalRateLimit,
		LoginRateLimit:  cfg.Server.LoginRateLimit,
		EnableAudit:     true,
	})

	httpServer := httpserver.New(cfg.Server.HTTP, router)

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down storage engine")
		return store.Close()
	})
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Reload the log level when the config file changes on disk.
	if configFile != "" {
		watcher, err := startConfigWatcher(configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(ctx context.Context) error {
				return watcher.Stop()
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// initStorage opens the configured record store.
func initStorage(cfg *config.ServerConfig, metrics *metric.Registry) (storage.RecordStore, error) {
	switch cfg.Storage.Engine {
	case config.EngineFile:
		return storage.NewFileStore(cfg.Storage.DataDir)

	case config.EngineBadger:
		badgerCfg := storage.DefaultBadgerConfig(cfg.Storage.DataDir)
		badgerCfg.SyncWrites = cfg.Storage.BadgerSyncWrites
		if cfg.Storage.BadgerGCInterval > 0 {
			badgerCfg.GCInterval = cfg.Storage.BadgerGCInterval
		}
		return storage.NewBadgerStore(badgerCfg, slog.Default(), metrics.Registerer())

	case config.EngineMemory:
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown storage engine %q", cfg.Storage.Engine)
	}
}

// startConfigWatcher watches the config file and applies the log level
// on change. Other settings require a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(log)
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(path))
		cfg := config.Default()
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			log.Info("log level changed", "level", cfg.Log.Level)
			logger.SetLevel(cfg.Log.Level)
		}
	})

	watcher.StartAsync()
	return watcher, nil
}
