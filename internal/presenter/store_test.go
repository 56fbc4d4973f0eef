package presenter

import "testing"

func TestStore_ReplaceNotifiesSubscribers(t *testing.T) {
	store := NewStore(0)

	var got []int
	unsub := store.Subscribe(func(v int) { got = append(got, v) })
	defer unsub()

	store.Replace(1, func(int) int { return 10 })
	store.Replace(2, func(int) int { return 20 })

	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("expected notifications [10 20], got %v", got)
	}
	if store.Get() != 20 {
		t.Errorf("Get() = %d, want 20", store.Get())
	}
}

func TestStore_StaleGenerationDropped(t *testing.T) {
	store := NewStore(0)

	if applied := store.Replace(2, func(int) int { return 20 }); !applied {
		t.Fatal("generation 2 should apply")
	}
	if applied := store.Replace(1, func(int) int { return 10 }); applied {
		t.Error("stale generation 1 should be dropped")
	}
	if store.Get() != 20 {
		t.Errorf("Get() = %d, want 20 (stale publish must not win)", store.Get())
	}
}

func TestStore_EqualGenerationApplies(t *testing.T) {
	store := NewStore(0)

	// The same load publishes twice (loading, then result) under one stamp.
	store.Replace(1, func(int) int { return 1 })
	if applied := store.Replace(1, func(int) int { return 2 }); !applied {
		t.Error("equal generation should apply")
	}
	if store.Get() != 2 {
		t.Errorf("Get() = %d, want 2", store.Get())
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore(0)

	calls := 0
	unsub := store.Subscribe(func(int) { calls++ })

	store.Replace(1, func(int) int { return 1 })
	unsub()
	store.Replace(2, func(int) int { return 2 })

	if calls != 1 {
		t.Errorf("expected 1 notification after unsubscribe, got %d", calls)
	}
}

func TestStore_UpdateSeesPreviousValue(t *testing.T) {
	store := NewStore(5)

	store.Replace(1, func(prev int) int { return prev + 1 })
	if store.Get() != 6 {
		t.Errorf("Get() = %d, want 6", store.Get())
	}
}
