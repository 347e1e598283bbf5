package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/httpapi"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr    string `help:"Listen address for the HTML dashboard (overrides server.addr)."`
	APIAddr string `name:"api-addr" help:"Optional listen address for the standalone JSON API."`
	Warm    bool   `default:"true" negatable:"" help:"Load every view before accepting requests."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	logger := rt.Logger

	if cmd.Warm {
		if err := rt.Service.RefreshAll(ctx); err != nil {
			logger.WarnContext(ctx, "initial refresh incomplete", "error", err)
		}
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: rt.Controller,
		API:        rt.Executor,
		BasePath:   rt.Config.Server.BasePath,
	}); err != nil {
		return fmt.Errorf("dispatchctl: register routes: %w", err)
	}

	addr := cmd.Addr
	if addr == "" {
		addr = rt.Config.Server.Addr
	}

	group, gctx := errgroup.WithContext(ctx)
	events, unsubscribe := rt.Events.Subscribe()
	defer unsubscribe()
	group.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case event, ok := <-events:
				if !ok {
					return nil
				}
				logger.DebugContext(gctx, "view refreshed", "view", event.View, "ok", event.Err == nil)
			}
		}
	})
	group.Go(func() error {
		logger.Info("dashboard listening", "addr", addr, "base_path", rt.Config.Server.BasePath)
		return serveUntilDone(gctx, func() error { return server.Serve(addr) }, server.Shutdown)
	})

	if cmd.APIAddr != "" {
		api := &http.Server{
			Addr:              cmd.APIAddr,
			Handler:           apiMux(rt.Handlers),
			ReadHeaderTimeout: 5 * time.Second,
		}
		group.Go(func() error {
			logger.Info("json api listening", "addr", cmd.APIAddr)
			if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return api.Shutdown(shutdownCtx)
		})
	}
	return group.Wait()
}

// serveUntilDone runs serve until it fails or ctx ends. On cancellation the
// listener is stopped through shutdown and serve is given the same deadline
// to return.
func serveUntilDone(ctx context.Context, serve func() error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- serve() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dispatchctl: shutdown: %w", err)
	}
	select {
	case <-errCh:
	case <-shutdownCtx.Done():
	}
	return nil
}

func apiMux(h *httpapi.Handlers) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /orders", h.HandleOrdersTable)
	mux.HandleFunc("GET /regions", h.HandleRegionSummaries)
	mux.HandleFunc("POST /theme", h.HandleToggleTheme)
	mux.HandleFunc("POST /refresh", h.HandleRefresh)
	mux.HandleFunc("POST /orders/filter", h.HandleFilterOrders)
	mux.HandleFunc("POST /orders/sort", h.HandleSortOrders)
	mux.HandleFunc("POST /forecast/scenario", h.HandleSelectScenario)
	return mux
}
