package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-dispatch-dashboard/components/dashboard"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/queries"
)

type summaryCmd struct{}

func (cmd *summaryCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	view := rt.Service.Dashboard()
	if err := view.Refresh(ctx); err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	renderSummary(g.out(), view.Snapshot().Data.Summary)
	return nil
}

type ordersCmd struct {
	Status string `help:"Only request orders with this status (ALL for every status)."`
	Filter string `help:"Case-insensitive text filter across every column."`
	Sort   string `help:"Sort column, optionally suffixed with :asc or :desc."`
}

func (cmd *ordersCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	err = rt.Executor.FilterOrders(ctx, commands.ApplyOrderFilterInput{
		Status: statusOrAll(cmd.Status),
		Filter: cmd.Filter,
	})
	if err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	if cmd.Sort != "" {
		column, direction := parseSortFlag(cmd.Sort)
		if err := rt.Executor.SortOrders(ctx, commands.SortOrdersInput{Column: column, Direction: direction}); err != nil {
			return fmt.Errorf("dispatchctl: %w", err)
		}
	}
	table, err := rt.Handlers.Orders.Query(ctx, queries.OrdersTableInput{})
	if err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	renderOrders(g.out(), table)
	return nil
}

type shipmentsCmd struct{}

func (cmd *shipmentsCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	view := rt.Service.Shipments()
	if err := view.Refresh(ctx); err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	renderShipments(g.out(), view.Rows())
	return nil
}

type warehousesCmd struct{}

func (cmd *warehousesCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	regions, err := rt.Handlers.Regions.Query(ctx, queries.RegionSummaryInput{Refresh: true})
	if err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	renderWarehouses(g.out(), rt.Service.Warehouses().Warehouses(), regions)
	return nil
}

type forecastCmd struct {
	Scenario   string   `help:"Scenario to mark as selected."`
	Confidence *float64 `help:"Confidence to display, between 0 and 1."`
}

func (cmd *forecastCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	view := rt.Service.ForecastSettings()
	if err := view.Load(ctx); err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	if cmd.Scenario != "" || cmd.Confidence != nil {
		input := commands.SelectScenarioInput{Scenario: cmd.Scenario, Confidence: cmd.Confidence}
		if cmd.Scenario == "" {
			if selected, ok := view.SelectedScenario(); ok {
				input.Scenario = selected.Name
			}
		}
		if err := rt.Executor.SelectScenario(ctx, input); err != nil {
			return fmt.Errorf("dispatchctl: %w", err)
		}
	}
	selected, _ := view.SelectedScenario()
	renderForecast(g.out(), view.Snapshot().Data, view.ConfidenceLabel(), selected.Name)
	return nil
}

type themeCmd struct {
	Show   themeShowCmd   `cmd:"" default:"1" help:"Print the active theme."`
	Toggle themeToggleCmd `cmd:"" help:"Flip between light and dark and persist the choice."`
}

type themeShowCmd struct{}

func (cmd *themeShowCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	_, err = fmt.Fprintln(g.out(), rt.Service.Theme().Current())
	return err
}

type themeToggleCmd struct{}

func (cmd *themeToggleCmd) Run(ctx context.Context, g *Globals) error {
	rt, err := g.runtime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.Executor.ToggleTheme(ctx, commands.ToggleThemeInput{}); err != nil {
		return fmt.Errorf("dispatchctl: %w", err)
	}
	_, err = fmt.Fprintln(g.out(), rt.Service.Theme().Current())
	return err
}

func statusOrAll(status string) string {
	if status == "" {
		return dashboard.StatusAll
	}
	return status
}

// parseSortFlag splits "column[:direction]"; a bare column sorts ascending.
func parseSortFlag(raw string) (string, string) {
	if i := strings.LastIndex(raw, ":"); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, string(dashboard.SortAsc)
}
