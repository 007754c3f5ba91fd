package keylock

import (
	"sync"
	"testing"
)

func TestWithLockSerializesSameKey(t *testing.T) {
	t.Parallel()

	km := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_ = km.WithLock("cp1", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != goroutines {
		t.Fatalf("counter = %d, want %d", counter, goroutines)
	}
}

func TestDifferentKeysDoNotBlockEachOther(t *testing.T) {
	t.Parallel()

	km := New()
	km.Lock("cp1")
	defer km.Unlock("cp1")

	done := make(chan struct{})
	go func() {
		km.Lock("cp2")
		km.Unlock("cp2")
		close(done)
	}()

	<-done
}

func TestEntriesAreReleased(t *testing.T) {
	t.Parallel()

	km := New()
	km.Lock("cp1")
	km.Unlock("cp1")

	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Fatalf("lock table has %d entries after release, want 0", len(km.locks))
	}
}

func TestUnlockUnknownKeyIsNoop(t *testing.T) {
	t.Parallel()

	km := New()
	km.Unlock("missing")
}
