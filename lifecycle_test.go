package storagekit_test

import (
	"testing"

	"github.com/gobeaver/storagekit"
	_ "github.com/gobeaver/storagekit/driver/memory"
)

func TestGlobalLifecycle(t *testing.T) {
	t.Cleanup(storagekit.Reset)
	storagekit.Reset()

	if err := storagekit.Init(&storagekit.Config{Driver: "memory"}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	store, err := storagekit.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if store == nil {
		t.Fatal("Default returned nil storage")
	}

	// Init is once-only until Reset
	if err := storagekit.Init(&storagekit.Config{Driver: "does-not-matter"}); err != nil {
		t.Errorf("repeated Init returned error: %v", err)
	}
	again, err := storagekit.Default()
	if err != nil {
		t.Fatal(err)
	}
	if again != store {
		t.Error("Default changed identity without Reset")
	}

	storagekit.Reset()
	if err := storagekit.Init(&storagekit.Config{Driver: "memory"}); err != nil {
		t.Fatalf("Init after Reset failed: %v", err)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("BEAVER_STORAGEKIT_DRIVER", "memory")

	store, err := storagekit.NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if store == nil {
		t.Fatal("NewFromEnv returned nil storage")
	}
}
