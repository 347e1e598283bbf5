package prefstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

func TestFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	backend, err := NewFileBackend(path)
	require.NoError(t, err)

	_, ok, err := backend.Load(ctx, dashboard.ThemePreferenceKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing file should report no value")

	require.NoError(t, backend.Save(ctx, dashboard.ThemePreferenceKey, "dark"))
	require.NoError(t, backend.Save(ctx, "other", "kept"))

	value, ok, err := backend.Load(ctx, dashboard.ThemePreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "order-to-dispatch-theme: dark")
	assert.Contains(t, string(data), "other: kept")
}

func TestFileBackendRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o600))
	backend, err := NewFileBackend(path)
	require.NoError(t, err)

	_, _, err = backend.Load(context.Background(), dashboard.ThemePreferenceKey)
	assert.Error(t, err)
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	_, ok, err := backend.Load(ctx, dashboard.ThemePreferenceKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Save(ctx, dashboard.ThemePreferenceKey, "dark"))
	require.NoError(t, backend.Save(ctx, dashboard.ThemePreferenceKey, "light"))

	value, ok, err := backend.Load(ctx, dashboard.ThemePreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", value, "last write wins")
}

func TestThemePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cases := []struct {
		kind string
		path string
	}{
		{kind: KindFile, path: filepath.Join(dir, "prefs.yaml")},
		{kind: KindSQLite, path: filepath.Join(dir, "prefs.db")},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			backend, closeFn, err := Open(ctx, tc.kind, tc.path)
			require.NoError(t, err)
			first := dashboard.NewThemeService(ctx, backend, dashboard.ThemeOptions{})
			assert.False(t, first.IsDark())
			theme, err := first.Toggle(ctx)
			require.NoError(t, err)
			assert.Equal(t, dashboard.ThemeDark, theme)
			require.NoError(t, closeFn())

			backend, closeFn, err = Open(ctx, tc.kind, tc.path)
			require.NoError(t, err)
			defer closeFn()
			second := dashboard.NewThemeService(ctx, backend, dashboard.ThemeOptions{})
			assert.True(t, second.IsDark())
		})
	}
}

func TestOpenUnknownKind(t *testing.T) {
	_, closeFn, err := Open(context.Background(), "redis", "")
	assert.Error(t, err)
	assert.NotNil(t, closeFn)

	backend, _, err := Open(context.Background(), "", "")
	require.NoError(t, err)
	assert.IsType(t, &dashboard.InMemoryPreferenceBackend{}, backend)
}
