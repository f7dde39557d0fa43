package security

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoryCounterStoreCountAndRecord(t *testing.T) {
	store := NewMemoryCounterStore(100)
	window := time.Minute

	count, err := store.Count("ip:requests", window)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("empty store Count = %d, want 0", count)
	}

	for i := 0; i < 3; i++ {
		if err := store.Record("ip:requests", window); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	count, _ = store.Count("ip:requests", window)
	if count != 3 {
		t.Errorf("Count after 3 records = %d, want 3", count)
	}

	count, _ = store.Count("other:requests", window)
	if count != 0 {
		t.Errorf("unrelated key Count = %d, want 0", count)
	}
}

func TestMemoryCounterStoreWindowExpiry(t *testing.T) {
	store := NewMemoryCounterStore(100)

	if err := store.Record("ip:setup", 10*time.Millisecond); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	count, _ := store.Count("ip:setup", 10*time.Millisecond)
	if count != 0 {
		t.Errorf("Count after window elapsed = %d, want 0", count)
	}
}

func TestMemoryCounterStoreEviction(t *testing.T) {
	store := NewMemoryCounterStore(3)
	window := time.Minute

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("ip%d:requests", i)
		if err := store.Record(key, window); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	// A fourth key forces the stalest one out
	if err := store.Record("ip3:requests", window); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	count, _ := store.Count("ip0:requests", window)
	if count != 0 {
		t.Errorf("evicted key Count = %d, want 0", count)
	}
	count, _ = store.Count("ip3:requests", window)
	if count != 1 {
		t.Errorf("new key Count = %d, want 1", count)
	}
}
