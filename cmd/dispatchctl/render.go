package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

func newTable(w io.Writer, columns []string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	header := make(table.Row, len(columns))
	for i, title := range dashboard.ColumnTitles(columns) {
		header[i] = title
	}
	t.AppendHeader(header)
	return t
}

func cellsRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}

func renderStateLine(w io.Writer, state dashboard.ViewState, errText string) {
	if errText != "" {
		_, _ = fmt.Fprintf(w, "(%s: %s)\n", state, errText)
	}
}

func renderSummary(w io.Writer, summary dashboard.DashboardSummary) {
	t := newTable(w, []string{"metric", "value"})
	t.AppendRow(table.Row{"Orders", summary.Totals.Orders})
	t.AppendRow(table.Row{"Shipments", summary.Totals.Shipments})
	t.AppendRow(table.Row{"Warehouses", summary.Totals.Warehouses})
	t.AppendRow(table.Row{"Order Value", dashboard.FormatAmount(summary.Totals.OrderValue)})
	t.AppendRow(table.Row{"Late Orders", summary.LateOrders})
	t.AppendRow(table.Row{"Warehouse Utilization", dashboard.FormatPercent(summary.WarehouseUtilization)})
	t.Render()

	entries := summary.PipelineEntries()
	if len(entries) == 0 {
		return
	}
	p := newTable(w, []string{"status", "count"})
	for _, entry := range entries {
		p.AppendRow(table.Row{entry.Status, entry.Count})
	}
	p.Render()
}

func renderOrders(w io.Writer, orders dashboard.OrdersTable) {
	if len(orders.Columns) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		renderStateLine(w, orders.State, orders.Error)
		return
	}
	t := newTable(w, orders.Columns)
	for _, row := range orders.Rows {
		cells := make([]string, len(orders.Columns))
		for i, column := range orders.Columns {
			cells[i] = row[column].Text()
		}
		t.AppendRow(cellsRow(cells))
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", len(orders.Rows), orders.Total)
	renderStateLine(w, orders.State, orders.Error)
}

func renderShipments(w io.Writer, shipments []dashboard.Shipment) {
	t := newTable(w, dashboard.ShipmentColumns)
	for _, shipment := range shipments {
		t.AppendRow(cellsRow(shipment.Cells()))
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(shipments))
}

func renderWarehouses(w io.Writer, warehouses []dashboard.Warehouse, regions []dashboard.RegionSummary) {
	t := newTable(w, dashboard.WarehouseColumns)
	for _, warehouse := range warehouses {
		t.AppendRow(cellsRow(warehouse.Cells()))
	}
	t.Render()
	if len(regions) == 0 {
		return
	}
	r := newTable(w, []string{"region", "capacity", "current", "utilization", "sites"})
	for _, summary := range regions {
		r.AppendRow(regionRow(summary))
	}
	r.AppendFooter(regionRow(dashboard.TotalsOf(regions)))
	r.Render()
}

func regionRow(summary dashboard.RegionSummary) table.Row {
	return table.Row{
		summary.Region,
		summary.Capacity,
		summary.Current,
		dashboard.FormatPercent(summary.Utilization),
		summary.Sites,
	}
}

func renderForecast(w io.Writer, settings dashboard.ForecastSettings, confidence string, selected string) {
	t := newTable(w, []string{"setting", "value"})
	t.AppendRow(table.Row{"Model", settings.Model})
	t.AppendRow(table.Row{"Horizon Months", settings.HorizonMonths})
	t.AppendRow(table.Row{"Confidence", confidence})
	t.AppendRow(table.Row{"Demand Drivers", strings.Join(settings.DemandDrivers, ", ")})
	t.AppendRow(table.Row{"Seasonality", seasonality(settings.Seasonality)})
	t.Render()

	if len(settings.Scenarios) == 0 {
		return
	}
	s := newTable(w, []string{"scenario", "growth", "selected"})
	for _, scenario := range settings.Scenarios {
		mark := ""
		if scenario.Name == selected {
			mark = "*"
		}
		s.AppendRow(table.Row{scenario.Name, dashboard.FormatPercentPlaces(scenario.Growth, 1), mark})
	}
	s.Render()
}

func seasonality(flags map[string]bool) string {
	var on []string
	for name, enabled := range flags {
		if enabled {
			on = append(on, name)
		}
	}
	sort.Strings(on)
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ", ")
}
