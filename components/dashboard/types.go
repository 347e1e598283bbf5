package dashboard

import (
	"context"
	"sort"
)

// Gateway fetches the read-only resources displayed by the dashboard views.
// Implementations must not retry, cache, or translate errors.
type Gateway interface {
	FetchDashboardSummary(ctx context.Context) (DashboardSummary, error)
	FetchOrders(ctx context.Context, query OrdersQuery) (OrderResponse, error)
	FetchShipments(ctx context.Context, limit int) (TableResponse[Shipment], error)
	FetchWarehouses(ctx context.Context) (TableResponse[Warehouse], error)
	FetchForecastSettings(ctx context.Context) (ForecastSettings, error)
	FetchForecastOverview(ctx context.Context) (ForecastOverview, error)
}

// OrdersQuery carries the orders endpoint parameters. An empty Status omits
// the status filter.
type OrdersQuery struct {
	Limit  int
	Status string
}

// Row is one record of a dynamic-column table keyed by column name.
type Row map[string]Value

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// OrderResponse is the orders payload: the column set varies per response.
type OrderResponse struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// TableResponse wraps fixed-shape rows.
type TableResponse[T any] struct {
	Rows []T `json:"rows"`
}

// Shipment is a tracked shipment.
type Shipment struct {
	ShipmentID        string `json:"shipment_id"`
	OrderID           string `json:"order_id"`
	Status            string `json:"status"`
	Carrier           string `json:"carrier"`
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	DepartedAt        string `json:"departed_at"`
	EstimatedDelivery string `json:"estimated_delivery"`
	TrackingEvents    int    `json:"tracking_events"`
	IsExpedited       bool   `json:"is_expedited"`
}

// Warehouse reports capacity for a single site. CurrentUnits is expected to be
// at most Capacity but that is the backend's concern.
type Warehouse struct {
	WarehouseID   string  `json:"warehouse_id"`
	Name          string  `json:"name"`
	Region        string  `json:"region"`
	Capacity      int64   `json:"capacity"`
	CurrentUnits  int64   `json:"current_units"`
	Utilization   float64 `json:"utilization"`
	ActiveOrders  int     `json:"active_orders"`
	OpenPositions int     `json:"open_positions"`
}

// RegionSummary is the derived roll-up of warehouses sharing a region.
type RegionSummary struct {
	Region      string  `json:"region"`
	Capacity    int64   `json:"capacity"`
	Current     int64   `json:"current"`
	Utilization float64 `json:"utilization"`
	Sites       int     `json:"sites"`
}

// DashboardTotals holds the headline counters.
type DashboardTotals struct {
	Orders     int     `json:"orders"`
	Shipments  int     `json:"shipments"`
	Warehouses int     `json:"warehouses"`
	OrderValue float64 `json:"order_value"`
}

// DashboardSummary is the backend computed overview, displayed as-is.
type DashboardSummary struct {
	Totals               DashboardTotals `json:"totals"`
	LateOrders           int             `json:"late_orders"`
	Pipeline             map[string]int  `json:"pipeline"`
	WarehouseUtilization float64         `json:"warehouse_utilization"`
}

// PipelineEntry is one status bucket of the order pipeline.
type PipelineEntry struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// PipelineStages lists order statuses in fulfilment order.
var PipelineStages = []string{"Pending", "Confirmed", "Allocated", "Packed", "Shipped", "Delivered"}

// PipelineEntries returns pipeline buckets in fulfilment order; statuses the
// dashboard does not know follow alphabetically.
func (s DashboardSummary) PipelineEntries() []PipelineEntry {
	if len(s.Pipeline) == 0 {
		return nil
	}
	out := make([]PipelineEntry, 0, len(s.Pipeline))
	seen := make(map[string]struct{}, len(s.Pipeline))
	for _, stage := range PipelineStages {
		if count, ok := s.Pipeline[stage]; ok {
			out = append(out, PipelineEntry{Status: stage, Count: count})
			seen[stage] = struct{}{}
		}
	}
	var rest []string
	for status := range s.Pipeline {
		if _, ok := seen[status]; !ok {
			rest = append(rest, status)
		}
	}
	sort.Strings(rest)
	for _, status := range rest {
		out = append(out, PipelineEntry{Status: status, Count: s.Pipeline[status]})
	}
	return out
}

// Scenario is a named growth assumption for the forecast.
type Scenario struct {
	Name   string  `json:"name"`
	Growth float64 `json:"growth"`
}

// ForecastSettings is the forecast model configuration.
type ForecastSettings struct {
	HorizonMonths      int             `json:"horizon_months"`
	Model              string          `json:"model"`
	ConfidenceInterval float64         `json:"confidence_interval"`
	Seasonality        map[string]bool `json:"seasonality"`
	DemandDrivers      []string        `json:"demand_drivers"`
	Scenarios          []Scenario      `json:"scenarios"`
}

// ForecastOverview holds demand vs supply series for charting.
type ForecastOverview struct {
	Labels []string  `json:"labels"`
	Demand []float64 `json:"demand"`
	Supply []float64 `json:"supply"`
}
