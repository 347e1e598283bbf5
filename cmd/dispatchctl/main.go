package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-dispatch-dashboard/pkg/config"
	dashboardpkg "github.com/goliatone/go-dispatch-dashboard/pkg/dashboard"
)

type cli struct {
	Globals

	Serve      serveCmd      `cmd:"" help:"Serve the dashboard pages and actions over HTTP."`
	Summary    summaryCmd    `cmd:"" help:"Print the dashboard summary."`
	Orders     ordersCmd     `cmd:"" help:"Print the orders table."`
	Shipments  shipmentsCmd  `cmd:"" help:"Print tracked shipments."`
	Warehouses warehousesCmd `cmd:"" help:"Print warehouse capacity and region roll-ups."`
	Forecast   forecastCmd   `cmd:"" help:"Print forecast settings."`
	Theme      themeCmd      `cmd:"" help:"Show or toggle the persisted theme."`
}

// Globals are shared by every subcommand. Flags set here override the
// layered configuration.
type Globals struct {
	Config   string `short:"c" type:"path" help:"YAML config file (defaults to ./dispatch.yaml when present)."`
	EnvFile  string `name:"env-file" type:"path" help:"dotenv file (defaults to ./.env when present)."`
	Demo     bool   `help:"Serve built-in demo fixtures instead of calling the backend."`
	BaseURL  string `name:"base-url" help:"Backend API base URL."`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)."`

	stdout io.Writer
}

func main() {
	var app cli
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser := kong.Parse(&app,
		kong.Name("dispatchctl"),
		kong.Description("Order to Dispatch dashboard host and terminal views."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	app.stdout = os.Stdout
	err := parser.Run(&app.Globals)
	parser.FatalIfErrorf(err)
}

func (g *Globals) out() io.Writer {
	if g.stdout == nil {
		return os.Stdout
	}
	return g.stdout
}

func (g *Globals) load() (*config.Config, error) {
	overrides := map[string]any{}
	if g.Demo {
		overrides["api.demo"] = true
	}
	if g.BaseURL != "" {
		overrides["api.base_url"] = g.BaseURL
	}
	if g.LogLevel != "" {
		overrides["log.level"] = g.LogLevel
	}
	return config.Load(config.LoadOptions{File: g.Config, EnvFile: g.EnvFile, Overrides: overrides})
}

func (g *Globals) runtime(ctx context.Context) (*dashboardpkg.Runtime, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	rt, err := dashboardpkg.New(ctx, cfg, dashboardpkg.RuntimeOptions{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("dispatchctl: %w", err)
	}
	return rt, nil
}

func newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}
