package cancel

import "testing"

func TestCancelThenIsCancelledIsOneShot(t *testing.T) {
	tr := New(4)
	tr.Cancel(1)

	if !tr.IsCancelled(1) {
		t.Fatal("expected id 1 to be cancelled")
	}
	if tr.IsCancelled(1) {
		t.Fatal("expected second IsCancelled(1) to consume the entry and return false")
	}
}

func TestIsCancelledUnknownIDReturnsFalse(t *testing.T) {
	tr := New(4)
	if tr.IsCancelled("never-seen") {
		t.Fatal("expected unknown id to report not cancelled")
	}
}

func TestCancelEvictsOldestOnceAtCapacity(t *testing.T) {
	tr := New(2)
	tr.Cancel(1)
	tr.Cancel(2)
	tr.Cancel(3) // evicts 1

	if tr.IsCancelled(1) {
		t.Fatal("expected id 1 to have been evicted")
	}
	if !tr.IsCancelled(2) {
		t.Fatal("expected id 2 to still be tracked")
	}
	if !tr.IsCancelled(3) {
		t.Fatal("expected id 3 to still be tracked")
	}
}

func TestCancelIsIdempotentForSameID(t *testing.T) {
	tr := New(2)
	tr.Cancel(1)
	tr.Cancel(1)
	tr.Cancel(2) // must not evict 1, since the duplicate Cancel(1) shouldn't grow the order list

	if !tr.IsCancelled(1) {
		t.Fatal("expected id 1 to still be tracked after a duplicate Cancel")
	}
}

func TestDefaultCapacityUsedForNonPositiveCapacity(t *testing.T) {
	tr := New(0)
	if tr.capacity != DefaultCapacity {
		t.Fatalf("expected capacity %d, got %d", DefaultCapacity, tr.capacity)
	}
}
