package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// openTestGdata opens a throwaway app data directory, skipping when the
// platform has no usable one.
func openTestGdata(t *testing.T) *GdataStore {
	t.Helper()

	appName := fmt.Sprintf("reflex_arcade_test_%d", time.Now().UnixNano())
	store, err := OpenGdata(appName)
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}

	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return store
}

func TestGdataStoreGetSet(t *testing.T) {
	store := openTestGdata(t)

	if _, err := store.Get("dino-run-high-score"); !errors.Is(err, core.ErrKeyNotFound) {
		t.Errorf("Get() on missing key error = %v, expected ErrKeyNotFound", err)
	}

	if err := store.Set("dino-run-high-score", "777"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err := store.Get("dino-run-high-score")
	if err != nil || got != "777" {
		t.Errorf("Get() = %q, %v, expected 777", got, err)
	}

	if hs := core.LoadHighScore(store, "dino-run-high-score"); hs != 777 {
		t.Errorf("LoadHighScore() = %d, expected 777", hs)
	}
}
