// Package storage provides the record store for dialauth.
package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	cfg := DefaultBadgerConfig(t.TempDir())
	cfg.SyncWrites = false
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewBadgerStore(cfg, logger, nil)
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestBadgerStore_CRUD tests the record contract against the Badger engine.
func TestBadgerStore_CRUD(t *testing.T) {
	s := newTestBadgerStore(t)
	ctx := context.Background()

	rec := testRecord{Name: "ada", Count: 7, OK: true}

	t.Run("create and read round trip", func(t *testing.T) {
		if err := s.Create(ctx, "things", "a", rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		var got testRecord
		if err := s.Read(ctx, "things", "a", &got); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got != rec {
			t.Errorf("round trip = %+v, want %+v", got, rec)
		}
	})

	t.Run("create conflict", func(t *testing.T) {
		if err := s.Create(ctx, "things", "a", rec); !errors.Is(err, ErrKeyExists) {
			t.Errorf("error = %v, want ErrKeyExists", err)
		}
	})

	t.Run("collections do not collide", func(t *testing.T) {
		if err := s.Create(ctx, "other", "a", testRecord{Name: "grace"}); err != nil {
			t.Fatalf("Create in second collection failed: %v", err)
		}

		var got testRecord
		if err := s.Read(ctx, "things", "a", &got); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got.Name != "ada" {
			t.Errorf("Name = %s, want ada", got.Name)
		}
	})

	t.Run("update absent", func(t *testing.T) {
		if err := s.Update(ctx, "things", "missing", rec); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("delete then read absent", func(t *testing.T) {
		if err := s.Delete(ctx, "things", "a"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		var got testRecord
		if err := s.Read(ctx, "things", "a", &got); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		if err := s.Create(ctx, "things", "../escape", rec); !errors.Is(err, ErrBadKey) {
			t.Errorf("error = %v, want ErrBadKey", err)
		}
	})
}

// TestBadgerStore_Reopen tests durability across close and reopen.
func TestBadgerStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := DefaultBadgerConfig(dir)
	cfg.SyncWrites = false

	s, err := NewBadgerStore(cfg, logger, nil)
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}

	ctx := context.Background()
	rec := testRecord{Name: "persisted", Count: 1}
	if err := s.Create(ctx, "things", "a", rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = NewBadgerStore(cfg, logger, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	var got testRecord
	if err := s.Read(ctx, "things", "a", &got); err != nil {
		t.Fatalf("Read after reopen failed: %v", err)
	}
	if got != rec {
		t.Errorf("after reopen = %+v, want %+v", got, rec)
	}
}
