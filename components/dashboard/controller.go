package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"
)

// ControllerOptions wires a Controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Charts   *ChartRenderer
	Logger   *slog.Logger
	// BasePath prefixes navigation links when the pages are mounted below root.
	BasePath string
}

// Controller builds page payloads from view snapshots and renders them.
type Controller struct {
	service  *Service
	renderer Renderer
	charts   *ChartRenderer
	logger   *slog.Logger
	basePath string
}

var errMissingRenderer = errors.New("dashboard: renderer not configured")

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		charts:   opts.Charts,
		logger:   normalizeLogger(opts.Logger),
		basePath: opts.BasePath,
	}
}

// Show refreshes the view and renders its page. Refresh failures are already
// logged by the view; the page renders whatever data is held.
func (c *Controller) Show(ctx context.Context, view ViewName, out io.Writer) error {
	if c.service == nil {
		return ErrMissingGateway
	}
	_ = c.service.Refresh(ctx, view)
	return c.RenderTemplate(ctx, view, out)
}

// RenderTemplate renders the current snapshot of a view without fetching.
func (c *Controller) RenderTemplate(ctx context.Context, view ViewName, out io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	payload, err := c.Page(ctx, view)
	if err != nil {
		return err
	}
	if _, err := c.renderer.Render(templateName(view), payload, out); err != nil {
		return fmt.Errorf("dashboard: render %s: %w", view, err)
	}
	return nil
}

// Page assembles the template payload for a view.
func (c *Controller) Page(ctx context.Context, view ViewName) (map[string]any, error) {
	if c.service == nil {
		return nil, ErrMissingGateway
	}
	payload := c.chrome(view)
	switch view {
	case ViewDashboard:
		c.dashboardPage(ctx, payload)
	case ViewOrders:
		ordersPage(payload, c.service.Orders().Table())
	case ViewShipments:
		shipmentsPage(payload, c.service.Shipments().Snapshot())
	case ViewWarehouses:
		c.warehousesPage(ctx, payload)
	case ViewForecastSettings:
		forecastPage(payload, c.service.ForecastSettings())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	return payload, nil
}

// Fetch refreshes the view and returns its JSON-facing state. A failed
// refresh is reported inside the returned state, not as an error.
func (c *Controller) Fetch(ctx context.Context, view ViewName) (any, error) {
	if c.service == nil {
		return nil, ErrMissingGateway
	}
	if err := c.service.Refresh(ctx, view); errors.Is(err, ErrUnknownView) {
		return nil, err
	}
	return c.Data(view)
}

// Data returns the JSON-facing state of a view.
func (c *Controller) Data(view ViewName) (any, error) {
	if c.service == nil {
		return nil, ErrMissingGateway
	}
	switch view {
	case ViewDashboard:
		return c.service.Dashboard().Snapshot(), nil
	case ViewOrders:
		return c.service.Orders().Table(), nil
	case ViewShipments:
		return c.service.Shipments().Snapshot(), nil
	case ViewWarehouses:
		warehouses := c.service.Warehouses()
		return map[string]any{
			"snapshot": warehouses.Snapshot(),
			"regions":  warehouses.RegionSummary(),
		}, nil
	case ViewForecastSettings:
		forecast := c.service.ForecastSettings()
		selected, _ := forecast.SelectedScenario()
		return map[string]any{
			"snapshot":          forecast.Snapshot(),
			"confidence":        forecast.Confidence(),
			"selected_scenario": selected.Name,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

func (c *Controller) chrome(view ViewName) map[string]any {
	shell := c.service.Shell()
	selection := c.service.Theme().Selection()
	nav := make([]map[string]any, 0, len(NavItems))
	for _, item := range shell.Nav() {
		nav = append(nav, map[string]any{
			"label":  item.Label,
			"path":   c.basePath + item.Path,
			"icon":   item.Icon,
			"active": item.View == view,
		})
	}
	return map[string]any{
		"title":        shell.Title(),
		"view":         string(view),
		"base_path":    c.basePath,
		"nav":          nav,
		"sidenav_open": shell.SidenavOpen(),
		"dark_mode":    shell.IsDarkMode(),
		"theme":        string(selection.Name),
		"body_class":   selection.BodyClass,
		"theme_css":    selection.CSSVariablesInline(),
	}
}

func withState[T any](payload map[string]any, snap Snapshot[T]) {
	payload["state"] = string(snap.State)
	payload["loading"] = snap.Loading
	payload["has_data"] = snap.HasData
	if snap.Err != nil {
		payload["error"] = snap.Err.Error()
	}
	if !snap.UpdatedAt.IsZero() {
		payload["updated_at"] = snap.UpdatedAt.Format(time.RFC3339)
	}
}

func (c *Controller) dashboardPage(ctx context.Context, payload map[string]any) {
	snap := c.service.Dashboard().Snapshot()
	withState(payload, snap)
	if !snap.HasData {
		return
	}
	summary := snap.Data.Summary
	payload["cards"] = []map[string]any{
		{"label": "Orders", "value": ValueOf(summary.Totals.Orders).Text()},
		{"label": "Shipments", "value": ValueOf(summary.Totals.Shipments).Text()},
		{"label": "Warehouses", "value": ValueOf(summary.Totals.Warehouses).Text()},
		{"label": "Order value", "value": FormatAmount(summary.Totals.OrderValue)},
		{"label": "Late orders", "value": ValueOf(summary.LateOrders).Text()},
		{"label": "Warehouse utilization", "value": FormatPercent(summary.WarehouseUtilization)},
	}
	entries := summary.PipelineEntries()
	payload["pipeline"] = entries

	chartTheme := c.service.Theme().Selection().ChartTheme
	if html, err := c.charts.PipelineChart(entries, chartTheme); err == nil {
		payload["pipeline_chart"] = html
	} else if !errors.Is(err, errEmptySeries) {
		c.logger.WarnContext(ctx, "pipeline chart render failed", "error", err)
	}
	if html, err := c.charts.ForecastChart(snap.Data.Overview, chartTheme); err == nil {
		payload["forecast_chart"] = html
	} else if !errors.Is(err, errEmptySeries) {
		c.logger.WarnContext(ctx, "forecast chart render failed", "error", err)
	}
}

func ordersPage(payload map[string]any, table OrdersTable) {
	payload["state"] = string(table.State)
	payload["loading"] = table.Loading
	if table.Error != "" {
		payload["error"] = table.Error
	}
	payload["columns"] = table.Columns
	headers := make([]map[string]any, len(table.Columns))
	for i, column := range table.Columns {
		direction := SortNone
		if table.Sort.Column == column {
			direction = table.Sort.Direction
		}
		headers[i] = map[string]any{
			"column":    column,
			"title":     ColumnTitle(column),
			"direction": string(direction),
			"next":      string(direction.Next()),
		}
	}
	payload["header_cells"] = headers
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for j, column := range table.Columns {
			cells[j] = row[column].Text()
		}
		rows[i] = cells
	}
	payload["rows"] = rows
	payload["statuses"] = table.Statuses
	payload["status"] = table.Status
	payload["filter"] = table.Filter
	payload["sort_column"] = table.Sort.Column
	payload["sort_direction"] = string(table.Sort.Direction)
	payload["total"] = table.Total
	payload["visible"] = len(table.Rows)
}

func shipmentsPage(payload map[string]any, snap Snapshot[[]Shipment]) {
	withState(payload, snap)
	payload["headers"] = ColumnTitles(ShipmentColumns)
	rows := make([]map[string]any, len(snap.Data))
	for i, shipment := range snap.Data {
		rows[i] = map[string]any{
			"cells": shipment.Cells(),
			"chip":  ChipColor(shipment.Status),
		}
	}
	payload["rows"] = rows
}

func (c *Controller) warehousesPage(ctx context.Context, payload map[string]any) {
	view := c.service.Warehouses()
	snap := view.Snapshot()
	withState(payload, snap)
	payload["headers"] = ColumnTitles(WarehouseColumns)
	rows := make([][]string, len(snap.Data))
	for i, warehouse := range snap.Data {
		rows[i] = warehouse.Cells()
	}
	payload["rows"] = rows

	summaries := view.RegionSummary()
	regions := make([]map[string]any, len(summaries))
	for i, summary := range summaries {
		regions[i] = regionCard(summary)
	}
	payload["regions"] = regions
	if len(summaries) == 0 {
		return
	}
	totals := TotalsOf(summaries)
	payload["totals"] = regionCard(totals)
	html, err := c.charts.UtilizationGauge(totals, c.service.Theme().Selection().ChartTheme)
	if err != nil {
		c.logger.WarnContext(ctx, "utilization gauge render failed", "error", err)
		return
	}
	payload["utilization_chart"] = html
}

func regionCard(summary RegionSummary) map[string]any {
	return map[string]any{
		"region":      summary.Region,
		"capacity":    ValueOf(summary.Capacity).Text(),
		"current":     ValueOf(summary.Current).Text(),
		"utilization": FormatPercent(summary.Utilization),
		"sites":       summary.Sites,
	}
}

func forecastPage(payload map[string]any, view *ForecastSettingsView) {
	snap := view.Snapshot()
	withState(payload, snap)
	payload["confidence"] = view.Confidence()
	payload["confidence_label"] = view.ConfidenceLabel()
	if !snap.HasData {
		return
	}
	settings := snap.Data
	selected, hasSelected := view.SelectedScenario()
	scenarios := make([]map[string]any, len(settings.Scenarios))
	for i, scenario := range settings.Scenarios {
		scenarios[i] = map[string]any{
			"name":     scenario.Name,
			"growth":   FormatPercentPlaces(scenario.Growth, 1),
			"selected": hasSelected && scenario.Name == selected.Name,
		}
	}
	payload["scenarios"] = scenarios
	if hasSelected {
		payload["selected_scenario"] = selected.Name
	}

	names := make([]string, 0, len(settings.Seasonality))
	for name := range settings.Seasonality {
		names = append(names, name)
	}
	sort.Strings(names)
	seasonality := make([]map[string]any, len(names))
	for i, name := range names {
		seasonality[i] = map[string]any{
			"name":    ColumnTitle(name),
			"enabled": settings.Seasonality[name],
		}
	}
	payload["seasonality"] = seasonality
	payload["horizon_months"] = settings.HorizonMonths
	payload["model"] = settings.Model
	payload["demand_drivers"] = settings.DemandDrivers
}
