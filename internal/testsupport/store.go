package testsupport

import (
	"testing"

	"subburn/internal/transcache"
)

// MustOpenStore opens a transcript cache for tests and registers cleanup.
func MustOpenStore(t testing.TB, dbPath string) *transcache.Store {
	t.Helper()

	store, err := transcache.Open(dbPath)
	if err != nil {
		t.Fatalf("transcache.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
