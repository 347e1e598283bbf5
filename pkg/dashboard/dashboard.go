package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	core "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/queries"
	"github.com/goliatone/go-dispatch-dashboard/pkg/config"
	"github.com/goliatone/go-dispatch-dashboard/pkg/dispatchapi"
	"github.com/goliatone/go-dispatch-dashboard/pkg/prefstore"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// Runtime bundles a configured service with its presentation collaborators.
type Runtime struct {
	Config     *config.Config
	Gateway    dispatchapi.Client
	Service    *Service
	Controller *core.Controller
	Executor   *httpapi.CommandExecutor
	Handlers   *httpapi.Handlers
	Events     *core.BroadcastHook
	Logger     *slog.Logger

	closers []func() error
}

// RuntimeOptions overrides the collaborators New would otherwise build from
// configuration.
type RuntimeOptions struct {
	Gateway   dispatchapi.Client
	Renderer  core.Renderer
	Logger    *slog.Logger
	Telemetry core.Telemetry
}

// New builds a Runtime from cfg. Demo mode serves dispatchapi.DemoData.
func New(ctx context.Context, cfg *config.Config, opts RuntimeOptions) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("dashboard: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	telemetry := opts.Telemetry
	if telemetry == nil {
		telemetry = core.SlogTelemetry{Logger: logger, Level: slog.LevelDebug}
	}

	rt := &Runtime{Config: cfg, Logger: logger, Events: core.NewBroadcastHook()}

	gateway := opts.Gateway
	if gateway == nil {
		var err error
		gateway, err = newGateway(cfg, logger)
		if err != nil {
			return nil, err
		}
	}
	rt.Gateway = gateway

	prefs, closePrefs, err := prefstore.Open(ctx, cfg.Preferences.Backend, cfg.Preferences.Path)
	if err != nil {
		return nil, fmt.Errorf("dashboard: open preferences: %w", err)
	}
	rt.closers = append(rt.closers, closePrefs)

	rt.Service = core.NewService(core.Options{
		Gateway: gateway,
		Theme: core.NewThemeService(ctx, prefs, core.ThemeOptions{
			Logger:    logger,
			Telemetry: telemetry,
		}),
		Preferences:    prefs,
		RefreshHook:    rt.Events,
		Logger:         logger,
		Telemetry:      telemetry,
		OrdersLimit:    cfg.Views.OrdersLimit,
		ShipmentsLimit: cfg.Views.ShipmentsLimit,
	})

	renderer := opts.Renderer
	if renderer == nil {
		renderer, err = core.NewTemplateRenderer()
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("dashboard: build renderer: %w", err)
		}
	}
	rt.Controller = core.NewController(core.ControllerOptions{
		Service:  rt.Service,
		Renderer: renderer,
		Charts:   core.NewChartRenderer(core.WithChartCache(core.NewChartCache(cfg.Charts.CacheTTL))),
		Logger:   logger,
		BasePath: cfg.Server.BasePath,
	})

	svc := rt.Service
	theme := commands.NewToggleThemeCommand(svc.Theme(), telemetry)
	refresh := commands.NewRefreshViewCommand(svc, telemetry)
	filter := commands.NewApplyOrderFilterCommand(svc.Orders(), telemetry)
	sortCmd := commands.NewSortOrdersCommand(svc.Orders(), telemetry)
	scenario := commands.NewSelectScenarioCommand(svc.ForecastSettings(), telemetry)
	rt.Executor = &httpapi.CommandExecutor{
		ThemeCommander:    theme,
		SidenavCommander:  commands.NewToggleSidenavCommand(svc.Shell()),
		RefreshCommander:  refresh,
		FilterCommander:   filter,
		SortCommander:     sortCmd,
		ScenarioCommander: scenario,
	}
	rt.Handlers = &httpapi.Handlers{
		Theme:    theme,
		Refresh:  refresh,
		Filter:   filter,
		Sort:     sortCmd,
		Scenario: scenario,
		Orders:   queries.NewOrdersTableQuery(svc.Orders()),
		Regions:  queries.NewRegionSummaryQuery(svc.Warehouses()),
	}
	return rt, nil
}

// Close releases the preference backend.
func (r *Runtime) Close() error {
	var errs []error
	for _, closeFn := range r.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

func newGateway(cfg *config.Config, logger *slog.Logger) (dispatchapi.Client, error) {
	if cfg.API.Demo {
		logger.Info("serving demo fixtures")
		return dispatchapi.NewDemoClient(), nil
	}
	client, err := dispatchapi.NewHTTPClient(dispatchapi.HTTPConfig{
		BaseURL:      cfg.API.BaseURL,
		APIKey:       cfg.API.Key,
		Timeout:      cfg.API.Timeout,
		StrictShapes: cfg.API.StrictShapes,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: build gateway: %w", err)
	}
	return client, nil
}
