// Package prefstore provides durable dashboard preference backends.
package prefstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileBackend keeps preferences in a single YAML document. The file is read
// on every Load so edits made by another process are observed.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend returns a backend writing to path. The file is created on
// the first Save.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, errors.New("prefstore: file path is required")
	}
	return &FileBackend{path: path}, nil
}

// Path returns the backing file path.
func (b *FileBackend) Path() string { return b.path }

// Load returns the stored value for key. A missing file reports ok=false.
func (b *FileBackend) Load(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	prefs, err := b.read()
	if err != nil {
		return "", false, err
	}
	value, ok := prefs[key]
	return value, ok, nil
}

// Save writes key=value, keeping the other entries.
func (b *FileBackend) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("prefstore: preference key is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	prefs, err := b.read()
	if err != nil {
		return err
	}
	prefs[key] = value
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("prefstore: encode preferences: %w", err)
	}
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefstore: create directory: %w", err)
		}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("prefstore: write preferences: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("prefstore: replace preferences: %w", err)
	}
	return nil
}

func (b *FileBackend) read() (map[string]string, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefstore: read preferences: %w", err)
	}
	prefs := map[string]string{}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("prefstore: decode preferences: %w", err)
	}
	if prefs == nil {
		prefs = map[string]string{}
	}
	return prefs, nil
}
