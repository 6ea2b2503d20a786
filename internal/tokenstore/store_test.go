package tokenstore

import "testing"

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() unexpected error = %v", err)
	}
	if token != "" {
		t.Fatalf("Token() = %q, want empty before Save", token)
	}

	if err := store.Save("bearer-abc"); err != nil {
		t.Fatalf("Save() unexpected error = %v", err)
	}

	token, err = store.Token()
	if err != nil {
		t.Fatalf("Token() unexpected error = %v", err)
	}
	if token != "bearer-abc" {
		t.Fatalf("Token() = %q, want bearer-abc", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error = %v", err)
	}

	token, _ = store.Token()
	if token != "" {
		t.Fatalf("Token() = %q, want empty after Clear", token)
	}
}

func TestMemoryStoreRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	if err := NewMemoryStore().Save("  "); err == nil {
		t.Fatal("Save() should reject a blank token")
	}
}

func TestStoreInterfaceCompliance(t *testing.T) {
	t.Parallel()

	var _ Store = (*MemoryStore)(nil)
	var _ Store = (*KeyringStore)(nil)
}
