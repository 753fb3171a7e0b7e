package store

import "testing"

func TestMemoryStore_BasicOperations(t *testing.T) {
	store := NewMemoryStore()

	if _, ok := store.Get("missing"); ok {
		t.Error("Get() on empty store should report a miss")
	}

	store.Set("session_last_activity", "1700000000000")
	val, ok := store.Get("session_last_activity")
	if !ok {
		t.Fatal("Get() should find the stored key")
	}
	if val != "1700000000000" {
		t.Errorf("Get() = %q, want %q", val, "1700000000000")
	}

	// Overwrite
	store.Set("session_last_activity", "1700000005000")
	if val, _ := store.Get("session_last_activity"); val != "1700000005000" {
		t.Errorf("Get() after overwrite = %q, want %q", val, "1700000005000")
	}

	store.Delete("session_last_activity")
	if _, ok := store.Get("session_last_activity"); ok {
		t.Error("Get() after Delete should report a miss")
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	store.Set("a", "1")
	store.Set("b", "2")

	store.Clear()

	if _, ok := store.Get("a"); ok {
		t.Error("key a should be gone after Clear")
	}
	if _, ok := store.Get("b"); ok {
		t.Error("key b should be gone after Clear")
	}
}
