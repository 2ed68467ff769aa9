// Package memory provides an in-memory record store for dialauth.
package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yndnr/dialauth/internal/storage"
)

type rec struct {
	V string `json:"v"`
}

// TestStore_ContractSemantics tests the record-store contract.
func TestStore_ContractSemantics(t *testing.T) {
	s := New()
	ctx := context.Background()

	t.Run("read absent", func(t *testing.T) {
		var out rec
		if err := s.Read(ctx, "c", "k", &out); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("create then conflict", func(t *testing.T) {
		if err := s.Create(ctx, "c", "k", rec{V: "1"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := s.Create(ctx, "c", "k", rec{V: "2"}); !errors.Is(err, storage.ErrKeyExists) {
			t.Errorf("error = %v, want ErrKeyExists", err)
		}
	})

	t.Run("update round trip", func(t *testing.T) {
		if err := s.Update(ctx, "c", "k", rec{V: "2"}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		var out rec
		if err := s.Read(ctx, "c", "k", &out); err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if out.V != "2" {
			t.Errorf("V = %s, want 2", out.V)
		}
	})

	t.Run("update absent collection", func(t *testing.T) {
		if err := s.Update(ctx, "other", "k", rec{}); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Delete(ctx, "c", "k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := s.Delete(ctx, "c", "k"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Errorf("error = %v, want ErrKeyNotFound", err)
		}
	})
}

// TestStore_Concurrent tests concurrent access safety.
func TestStore_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%26))
			_ = s.Create(ctx, "c", key, rec{V: key})
			var out rec
			_ = s.Read(ctx, "c", key, &out)
		}(i)
	}
	wg.Wait()

	if got := s.Count("c"); got != 26 {
		t.Errorf("Count = %d, want 26", got)
	}
}
