// Package storage provides the record store for dialauth.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type testRecord struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	OK    bool   `json:"ok"`
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestFileStore_CRUD tests the full record lifecycle.
func TestFileStore_CRUD(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	rec := testRecord{Name: "ada", Count: 3, OK: true}

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
		err := s.Create(ctx, "things", "a", rec)
		if !errors.Is(err, ErrKeyExists) {
			t.Errorf("error = %v, want ErrKeyExists", err)
		}

		// The conflicting create must leave the existing record untouched.
		var got testRecord
		if err := s.Read(ctx, "things", "a", &got); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got != rec {
			t.Errorf("existing record modified by rejected create: %+v", got)
		}
	})

	t.Run("update existing", func(t *testing.T) {
		updated := testRecord{Name: "ada", Count: 4}
		if err := s.Update(ctx, "things", "a", updated); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		var got testRecord
		if err := s.Read(ctx, "things", "a", &got); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got != updated {
			t.Errorf("after update = %+v, want %+v", got, updated)
		}
	})

	t.Run("update absent", func(t *testing.T) {
		if err := s.Update(ctx, "things", "missing", rec); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("delete and read absent", func(t *testing.T) {
		if err := s.Delete(ctx, "things", "a"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		var got testRecord
		if err := s.Read(ctx, "things", "a", &got); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
		if err := s.Delete(ctx, "things", "a"); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("second delete = %v, want ErrKeyNotFound", err)
		}
	})
}

// TestFileStore_Layout tests the one-file-per-record layout.
func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Create(ctx, "users", "1234567890", testRecord{Name: "ada"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "users", "1234567890.json")); err != nil {
		t.Errorf("expected record file: %v", err)
	}
}

// TestFileStore_BadKeys tests key sanitation.
func TestFileStore_BadKeys(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "a/b", "a\\b"} {
		t.Run("key "+key, func(t *testing.T) {
			if err := s.Create(ctx, "things", key, testRecord{}); !errors.Is(err, ErrBadKey) {
				t.Errorf("Create(%q) = %v, want ErrBadKey", key, err)
			}
			var out testRecord
			if err := s.Read(ctx, "things", key, &out); !errors.Is(err, ErrBadKey) {
				t.Errorf("Read(%q) = %v, want ErrBadKey", key, err)
			}
		})
	}
}

// TestFileStore_Closed tests post-Close behavior.
func TestFileStore_Closed(t *testing.T) {
	s := newTestFileStore(t)
	s.Close()

	if err := s.Create(context.Background(), "things", "a", testRecord{}); !errors.Is(err, ErrClosed) {
		t.Errorf("error = %v, want ErrClosed", err)
	}
}
