package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetMissesWhenExpired(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	clock := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return clock }

	store.Set("k", 42)
	if v, ok := store.Get("k"); !ok || v != 42 {
		t.Fatalf("Get() = %v, %v; want 42, true", v, ok)
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := store.Get("k"); ok {
		t.Fatal("Get() hit after TTL elapsed")
	}
}

func TestGetOrLoadCachesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	loads := 0

	for i := 0; i < 3; i++ {
		v, err := store.GetOrLoad("k", func() (any, error) {
			loads++
			return "value", nil
		})
		if err != nil {
			t.Fatalf("GetOrLoad() error = %v", err)
		}
		if v != "value" {
			t.Fatalf("GetOrLoad() = %v, want value", v)
		}
	}

	if loads != 1 {
		t.Fatalf("load ran %d times, want 1", loads)
	}
}

func TestGetOrLoadDoesNotCacheError(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	wantErr := errors.New("boom")
	loads := 0

	_, err := store.GetOrLoad("k", func() (any, error) {
		loads++
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}

	v, err := store.GetOrLoad("k", func() (any, error) {
		loads++
		return 7, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad() error = %v", err)
	}
	if v != 7 || loads != 2 {
		t.Fatalf("GetOrLoad() = %v with %d loads, want 7 with 2 loads", v, loads)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set("k", 1)
	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Fatal("Get() hit after Delete()")
	}
}
