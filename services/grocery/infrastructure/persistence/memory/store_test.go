package memory

import (
	"context"
	"testing"

	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence"
	"github.com/ghuser/pricetrack/services/grocery/infrastructure/persistence/kvtest"
)

func TestStore_Contract(t *testing.T) {
	kvtest.Run(t, func(*testing.T) persistence.KeyValue { return NewStore() })
}

func TestStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	v := []byte(`[1]`)
	_ = s.Set(ctx, "k", v)
	v[1] = '9'

	got, _ := s.Get(ctx, "k")
	if string(got) != `[1]` {
		t.Fatalf("stored value aliased caller slice: %s", got)
	}
	got[1] = '7'
	again, _ := s.Get(ctx, "k")
	if string(again) != `[1]` {
		t.Fatalf("returned value aliased stored slice: %s", again)
	}
}
