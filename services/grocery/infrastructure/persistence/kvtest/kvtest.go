// Package kvtest checks that a persistence.KeyValue behaves like the others.
package kvtest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
)

// Run exercises the KeyValue contract against stores built by newKV. Each
// subtest gets a fresh store. Values are JSON so every backend accepts them.
func Run(t *testing.T, newKV func(t *testing.T) persistence.KeyValue) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		kv := newKV(t)
		if _, err := kv.Get(ctx, "absent"); !errors.Is(err, persistence.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		kv := newKV(t)
		want := []byte(`[{"id":"milk-kroger"}]`)
		if err := kv.Set(ctx, "groceryItems", want); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := kv.Get(ctx, "groceryItems")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !jsonEqual(got, want) {
			t.Fatalf("got %s, want %s", got, want)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		kv := newKV(t)
		_ = kv.Set(ctx, "k", []byte(`[1]`))
		if err := kv.Set(ctx, "k", []byte(`[2]`)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, _ := kv.Get(ctx, "k")
		if !jsonEqual(got, []byte(`[2]`)) {
			t.Fatalf("expected overwrite, got %s", got)
		}
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		kv := newKV(t)
		_ = kv.Set(ctx, "a", []byte(`"a"`))
		_ = kv.Set(ctx, "b", []byte(`"b"`))
		got, _ := kv.Get(ctx, "a")
		if !jsonEqual(got, []byte(`"a"`)) {
			t.Fatalf("key a clobbered: %s", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		kv := newKV(t)
		_ = kv.Set(ctx, "k", []byte(`{}`))
		if err := kv.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := kv.Get(ctx, "k"); !errors.Is(err, persistence.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
		}
		if err := kv.Delete(ctx, "k"); err != nil {
			t.Fatalf("deleting a missing key should succeed, got %v", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := newKV(t).Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})

	t.Run("ConcurrentWriters", func(t *testing.T) {
		kv := newKV(t)
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = kv.Set(ctx, "k", []byte{'[', byte('0' + i), ']'})
			}()
		}
		wg.Wait()
		got, err := kv.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got) < 3 || got[0] != '[' {
			t.Fatalf("expected one complete value, got %q", got)
		}
	})
}

// jsonEqual compares values ignoring insignificant whitespace, since JSONB
// columns reformat documents.
func jsonEqual(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
