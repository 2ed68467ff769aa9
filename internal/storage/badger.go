// Package storage provides the record store for dialauth.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerConfig configures the Badger record-store engine.
type BadgerConfig struct {
	// Dir is the Badger database directory.
	Dir string

	// SyncWrites forces fsync on every write.
	SyncWrites bool

	// GCInterval is the interval between value-log GC passes.
	GCInterval time.Duration

	// GCDiscardRatio is the ratio passed to Badger's value-log GC.
	GCDiscardRatio float64
}

// DefaultBadgerConfig returns the default Badger engine configuration.
func DefaultBadgerConfig(dir string) BadgerConfig {
	return BadgerConfig{
		Dir:            dir,
		SyncWrites:     true,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// BadgerStore implements RecordStore on top of Badger v3.
// Records are keyed as "<collection>/<key>".
type BadgerStore struct {
	db     *badger.DB
	cfg    BadgerConfig
	logger *slog.Logger

	metricsLSMSize      prometheus.Gauge
	metricsValueLogSize prometheus.Gauge

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewBadgerStore opens a Badger-backed record store.
// If reg is non-nil, engine size gauges are registered with it.
func NewBadgerStore(cfg BadgerConfig, logger *slog.Logger, reg prometheus.Registerer) (*BadgerStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GCInterval <= 0 {
		cfg.GCInterval = 10 * time.Minute
	}
	if cfg.GCDiscardRatio <= 0 {
		cfg.GCDiscardRatio = 0.5
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = &badgerLogger{logger: logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		cfg:    cfg,
		logger: logger,
		metricsLSMSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dialauth_badger_lsm_size_bytes",
			Help: "Size of the Badger LSM tree in bytes.",
		}),
		metricsValueLogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dialauth_badger_vlog_size_bytes",
			Help: "Size of the Badger value log in bytes.",
		}),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	if reg != nil {
		reg.MustRegister(s.metricsLSMSize, s.metricsValueLogSize)
	}

	go s.gcLoop()

	logger.Info("badger store started",
		"dir", cfg.Dir,
		"sync_writes", cfg.SyncWrites,
		"gc_interval", cfg.GCInterval)

	return s, nil
}

// recordKey builds the composite Badger key.
func recordKey(collection, key string) []byte {
	return []byte(collection + "/" + key)
}

// Create stores a new record. Fails with ErrKeyExists if key is present.
func (s *BadgerStore) Create(_ context.Context, collection, key string, record any) error {
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("badger: marshal record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		k := recordKey(collection, key)
		_, err := txn.Get(k)
		if err == nil {
			return ErrKeyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(k, data)
	})
	if err != nil {
		if errors.Is(err, ErrKeyExists) {
			return ErrKeyExists
		}
		return fmt.Errorf("badger: create record: %w", err)
	}
	return nil
}

// Read loads the record into out. Fails with ErrKeyNotFound if absent.
func (s *BadgerStore) Read(_ context.Context, collection, key string, out any) error {
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(collection, key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("badger: read record: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("badger: unmarshal record: %w", err)
	}
	return nil
}

// Update overwrites an existing record. Fails with ErrKeyNotFound if absent.
func (s *BadgerStore) Update(_ context.Context, collection, key string, record any) error {
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("badger: marshal record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		k := recordKey(collection, key)
		if _, err := txn.Get(k); err != nil {
			return err
		}
		return txn.Set(k, data)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("badger: update record: %w", err)
	}
	return nil
}

// Delete removes the record. Fails with ErrKeyNotFound if absent.
func (s *BadgerStore) Delete(_ context.Context, collection, key string) error {
	if !validKey(key) || !validKey(collection) {
		return ErrBadKey
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		k := recordKey(collection, key)
		if _, err := txn.Get(k); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("badger: delete record: %w", err)
	}
	return nil
}

// Close stops the GC loop and closes the database.
func (s *BadgerStore) Close() error {
	close(s.stopCh)
	<-s.doneCh
	return s.db.Close()
}

// gcLoop runs periodic value-log GC and refreshes size gauges.
func (s *BadgerStore) gcLoop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			lsm, vlog := s.db.Size()
			s.metricsLSMSize.Set(float64(lsm))
			s.metricsValueLogSize.Set(float64(vlog))

			// RunValueLogGC returns ErrNoRewrite when there is nothing to
			// reclaim; that is not a failure.
			if err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio); err != nil &&
				!errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn("badger gc failed", "error", err)
			}
		}
	}
}

// badgerLogger adapts slog to Badger's logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf("badger: "+format, args...))
}
