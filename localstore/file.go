package localstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is the durable implementation: a single JSON file of key/value
// pairs rewritten on every mutation. State volumes are tiny (a handful of
// keys) so a full rewrite is cheaper than anything smarter.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore opens or creates the state file under dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fs := &FileStore{
		path:   filepath.Join(dir, "portal-state.json"),
		values: map[string]string{},
	}
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &fs.values); err != nil {
		// corrupted state file starts fresh rather than wedging startup
		fs.values = map[string]string{}
	}
	return fs, nil
}

// Get implements Store.
func (f *FileStore) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flushLocked()
}

// Delete implements Store.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return f.flushLocked()
}

func (f *FileStore) flushLocked() error {
	b, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
