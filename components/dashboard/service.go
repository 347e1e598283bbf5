package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// ViewName identifies one of the dashboard pages.
type ViewName string

const (
	ViewDashboard        ViewName = "dashboard"
	ViewOrders           ViewName = "orders"
	ViewShipments        ViewName = "shipments"
	ViewWarehouses       ViewName = "warehouses"
	ViewForecastSettings ViewName = "forecast-settings"
)

// Views lists every page in navigation order.
var Views = []ViewName{ViewDashboard, ViewOrders, ViewShipments, ViewWarehouses, ViewForecastSettings}

// ErrUnknownView is returned for view names outside Views.
var ErrUnknownView = errors.New("dashboard: unknown view")

// ParseViewName validates a view name. An empty value selects the dashboard.
func ParseViewName(raw string) (ViewName, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ViewDashboard, nil
	}
	for _, view := range Views {
		if string(view) == raw {
			return view, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, raw)
}

// ViewEvent describes a completed refresh.
type ViewEvent struct {
	View ViewName
	Err  error
}

// RefreshHook is notified after a view refresh settles.
type RefreshHook interface {
	ViewRefreshed(ctx context.Context, event ViewEvent) error
}

// Options configures the dashboard Service. Collaborators are interfaces so
// hosts can swap the gateway, persistence and telemetry sinks.
type Options struct {
	Gateway        Gateway
	Preferences    PreferenceBackend
	Theme          *ThemeService
	RefreshHook    RefreshHook
	Logger         *slog.Logger
	Telemetry      Telemetry
	OrdersLimit    int
	ShipmentsLimit int
}

// Service owns one instance of every view plus the shell.
type Service struct {
	opts Options

	dashboard  *DashboardView
	orders     *OrdersView
	shipments  *ShipmentsView
	warehouses *WarehousesView
	forecast   *ForecastSettingsView
	theme      *ThemeService
	shell      *Shell
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	opts.Logger = normalizeLogger(opts.Logger)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.OrdersLimit <= 0 {
		opts.OrdersLimit = DefaultOrdersLimit
	}
	if opts.ShipmentsLimit <= 0 {
		opts.ShipmentsLimit = DefaultShipmentsLimit
	}
	if opts.Preferences == nil {
		opts.Preferences = NewInMemoryPreferenceBackend()
	}
	if opts.Theme == nil {
		opts.Theme = NewThemeService(context.Background(), opts.Preferences, ThemeOptions{
			Logger:    opts.Logger,
			Telemetry: opts.Telemetry,
		})
	}
	logger, telemetry := opts.Logger, opts.Telemetry
	return &Service{
		opts:       opts,
		dashboard:  NewDashboardView(opts.Gateway, logger, telemetry),
		orders:     NewOrdersView(opts.Gateway, opts.OrdersLimit, logger, telemetry),
		shipments:  NewShipmentsView(opts.Gateway, opts.ShipmentsLimit, logger, telemetry),
		warehouses: NewWarehousesView(opts.Gateway, logger, telemetry),
		forecast:   NewForecastSettingsView(opts.Gateway, logger, telemetry),
		theme:      opts.Theme,
		shell:      NewShell(opts.Theme),
	}
}

func (s *Service) Dashboard() *DashboardView               { return s.dashboard }
func (s *Service) Orders() *OrdersView                     { return s.orders }
func (s *Service) Shipments() *ShipmentsView               { return s.shipments }
func (s *Service) Warehouses() *WarehousesView             { return s.warehouses }
func (s *Service) ForecastSettings() *ForecastSettingsView { return s.forecast }
func (s *Service) Theme() *ThemeService                    { return s.theme }
func (s *Service) Shell() *Shell                           { return s.shell }

// Logger returns the service logger.
func (s *Service) Logger() *slog.Logger { return s.opts.Logger }

// Refresh reloads a single view. Failures are logged by the view, reported to
// the refresh hook and returned.
func (s *Service) Refresh(ctx context.Context, view ViewName) error {
	var err error
	switch view {
	case ViewDashboard:
		err = s.dashboard.Refresh(ctx)
	case ViewOrders:
		err = s.orders.Refresh(ctx)
	case ViewShipments:
		err = s.shipments.Refresh(ctx)
	case ViewWarehouses:
		err = s.warehouses.Refresh(ctx)
	case ViewForecastSettings:
		err = s.forecast.Refresh(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	if hookErr := s.opts.RefreshHook.ViewRefreshed(ctx, ViewEvent{View: view, Err: err}); hookErr != nil {
		s.opts.Logger.WarnContext(ctx, "refresh hook failed", "view", view, "error", hookErr)
	}
	s.recordTelemetry(ctx, "dashboard.view.refresh", map[string]any{
		"view": string(view),
		"ok":   err == nil,
	})
	return err
}

// RefreshAll reloads every view concurrently and joins the failures.
func (s *Service) RefreshAll(ctx context.Context) error {
	errs := make([]error, len(Views))
	var wg sync.WaitGroup
	for i, view := range Views {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.Refresh(ctx, view)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}

// ToggleTheme flips the theme through the shell.
func (s *Service) ToggleTheme(ctx context.Context) (Theme, error) {
	return s.shell.ToggleTheme(ctx)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopRefreshHook struct{}

func (noopRefreshHook) ViewRefreshed(context.Context, ViewEvent) error {
	return nil
}
