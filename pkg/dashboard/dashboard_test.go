package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-dispatch-dashboard/pkg/config"
	"github.com/goliatone/go-dispatch-dashboard/pkg/dispatchapi"
)

type nopRenderer struct{ last string }

func (r *nopRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.last = name
	return "", nil
}

func demoConfig(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()
	values := map[string]any{"api.demo": true}
	for k, v := range overrides {
		values[k] = v
	}
	cfg, err := config.Load(config.LoadOptions{Environ: func() []string { return nil }, Overrides: values})
	require.NoError(t, err)
	return cfg
}

func TestRuntimeDemoRefreshesEveryView(t *testing.T) {
	ctx := context.Background()
	rt, err := New(ctx, demoConfig(t, nil), RuntimeOptions{Renderer: &nopRenderer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	require.NoError(t, rt.Service.RefreshAll(ctx))
	assert.Equal(t, core.StateLoaded, rt.Service.Orders().Snapshot().State)
	assert.NotEmpty(t, rt.Service.Warehouses().RegionSummary())

	require.NoError(t, rt.Executor.FilterOrders(ctx, commands.ApplyOrderFilterInput{Status: "Pending"}))
	table := rt.Service.Orders().Table()
	assert.Equal(t, "Pending", table.Status)
	assert.Len(t, table.Rows, 2)
}

func TestRuntimeUsesInjectedGateway(t *testing.T) {
	ctx := context.Background()
	mock := dispatchapi.NewDemoClient()
	mock.Fail(dispatchapi.ResourceShipments, errors.New("carrier feed down"))

	rt, err := New(ctx, demoConfig(t, nil), RuntimeOptions{Gateway: mock, Renderer: &nopRenderer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	err = rt.Service.Refresh(ctx, core.ViewShipments)
	require.Error(t, err)
	snap := rt.Service.Shipments().Snapshot()
	assert.Equal(t, core.StateErrored, snap.State)
	assert.False(t, snap.Loading)
	assert.Equal(t, 1, mock.Calls(dispatchapi.ResourceShipments))
}

func TestRuntimePersistsThemeWithSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := demoConfig(t, map[string]any{
		"preferences.backend": "sqlite",
		"preferences.path":    filepath.Join(t.TempDir(), "prefs.db"),
	})

	rt, err := New(ctx, cfg, RuntimeOptions{Renderer: &nopRenderer{}})
	require.NoError(t, err)
	require.NoError(t, rt.Executor.ToggleTheme(ctx, commands.ToggleThemeInput{}))
	assert.True(t, rt.Service.Shell().IsDarkMode())
	require.NoError(t, rt.Close())

	again, err := New(ctx, cfg, RuntimeOptions{Renderer: &nopRenderer{}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	assert.True(t, again.Service.Theme().IsDark())
}

func TestRuntimeRendersEmbeddedTemplates(t *testing.T) {
	ctx := context.Background()
	rt, err := New(ctx, demoConfig(t, nil), RuntimeOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	var buf bytes.Buffer
	require.NoError(t, rt.Controller.Show(ctx, core.ViewOrders, &buf))
	html := buf.String()
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "SO-1001")
	assert.Contains(t, html, "orders")
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil, RuntimeOptions{})
	assert.Error(t, err)
}
