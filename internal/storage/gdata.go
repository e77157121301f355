package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// gdataObject groups every key this store writes.
const gdataObject = "highscores"

// GdataStore implements core.KVStore on top of gdata, which keeps one file
// per key in the platform's per-user app data directory.
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdata opens the app data directory for appName.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data for %s: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

// Get returns the value stored under key, or core.ErrKeyNotFound.
func (g *GdataStore) Get(key string) (string, error) {
	if !g.m.ObjectPropExists(gdataObject, key) {
		return "", core.ErrKeyNotFound
	}
	data, err := g.m.LoadObjectProp(gdataObject, key)
	if err != nil {
		return "", fmt.Errorf("storage: cannot read key %q: %w", key, err)
	}
	return string(data), nil
}

// Set stores value under key.
func (g *GdataStore) Set(key, value string) error {
	if err := g.m.SaveObjectProp(gdataObject, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot write key %q: %w", key, err)
	}
	return nil
}

var _ core.KVStore = (*GdataStore)(nil)
