package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/kvtest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStore_Contract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) persistence.KeyValue { return newTestStore(t) })
}

func TestStore_OneFilePerKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set(context.Background(), "groceryItems", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if filepath.Base(s.Path("groceryItems")) != "groceryItems.json" {
		t.Fatalf("unexpected path %s", s.Path("groceryItems"))
	}
	b, err := os.ReadFile(s.Path("groceryItems"))
	if err != nil || string(b) != `[]` {
		t.Fatalf("unexpected file contents %q (%v)", b, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(s.Path("groceryItems")))
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestStore_EscapesKeys(t *testing.T) {
	s := newTestStore(t)
	p := s.Path("../escape")
	if filepath.Dir(p) != filepath.Dir(s.Path("x")) {
		t.Fatalf("key escaped the storage dir: %s", p)
	}
}

func TestStore_PingMissingDir(t *testing.T) {
	s := newTestStore(t)
	if err := os.RemoveAll(s.dir); err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail once the directory is gone")
	}
}
