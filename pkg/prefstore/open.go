package prefstore

import (
	"context"
	"fmt"
	"strings"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// Backend kinds accepted by Open.
const (
	KindMemory = "memory"
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Open builds the backend named by kind. The returned close func is never nil.
func Open(ctx context.Context, kind, path string) (dashboard.PreferenceBackend, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindMemory:
		return dashboard.NewInMemoryPreferenceBackend(), noop, nil
	case KindFile:
		backend, err := NewFileBackend(path)
		if err != nil {
			return nil, noop, err
		}
		return backend, noop, nil
	case KindSQLite:
		backend, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return backend, backend.Close, nil
	default:
		return nil, noop, fmt.Errorf("prefstore: unknown backend %q", kind)
	}
}
