package dashboard

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
)

type stubGateway struct {
	mu sync.Mutex

	summary    DashboardSummary
	orders     OrderResponse
	shipments  []Shipment
	warehouses []Warehouse
	settings   ForecastSettings
	overview   ForecastOverview

	errs    map[string]error
	queries []OrdersQuery
	limits  []int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		summary: DashboardSummary{
			Totals:               DashboardTotals{Orders: 3, Shipments: 1, Warehouses: 2, OrderValue: 42.5},
			LateOrders:           1,
			Pipeline:             map[string]int{"Pending": 2, "Shipped": 1},
			WarehouseUtilization: 0.5,
		},
		orders: OrderResponse{
			Columns: []string{"order_id", "status", "total"},
			Rows: []Row{
				{"order_id": String("A1"), "status": String("Pending"), "total": Number(10)},
				{"order_id": String("B2"), "status": String("Shipped"), "total": Number(30)},
				{"order_id": String("C3"), "status": String("Packed"), "total": Null()},
			},
		},
		shipments: []Shipment{
			{ShipmentID: "S1", OrderID: "B2", Status: "Delivered", Carrier: "NorthStar", TrackingEvents: 3},
		},
		warehouses: []Warehouse{
			{WarehouseID: "W1", Name: "North", Region: "East", Capacity: 60, CurrentUnits: 30},
			{WarehouseID: "W2", Name: "South", Region: "East", Capacity: 40, CurrentUnits: 20},
		},
		settings: ForecastSettings{
			HorizonMonths:      3,
			Model:              "arima",
			ConfidenceInterval: 0.8,
			Seasonality:        map[string]bool{"weekly": true},
			Scenarios: []Scenario{
				{Name: "Base", Growth: 0.02},
				{Name: "Peak", Growth: 0.1},
			},
		},
		overview: ForecastOverview{
			Labels: []string{"Jan", "Feb"},
			Demand: []float64{10, 12},
			Supply: []float64{11, 11},
		},
		errs: make(map[string]error),
	}
}

func (g *stubGateway) fail(resource string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.errs, resource)
		return
	}
	g.errs[resource] = err
}

func (g *stubGateway) err(resource string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errs[resource]
}

func (g *stubGateway) orderQueries() []OrdersQuery {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]OrdersQuery(nil), g.queries...)
}

func (g *stubGateway) FetchDashboardSummary(context.Context) (DashboardSummary, error) {
	if err := g.err("summary"); err != nil {
		return DashboardSummary{}, err
	}
	return g.summary, nil
}

func (g *stubGateway) FetchOrders(_ context.Context, query OrdersQuery) (OrderResponse, error) {
	g.mu.Lock()
	g.queries = append(g.queries, query)
	g.mu.Unlock()
	if err := g.err("orders"); err != nil {
		return OrderResponse{}, err
	}
	return g.orders, nil
}

func (g *stubGateway) FetchShipments(_ context.Context, limit int) (TableResponse[Shipment], error) {
	g.mu.Lock()
	g.limits = append(g.limits, limit)
	g.mu.Unlock()
	if err := g.err("shipments"); err != nil {
		return TableResponse[Shipment]{}, err
	}
	return TableResponse[Shipment]{Rows: g.shipments}, nil
}

func (g *stubGateway) FetchWarehouses(context.Context) (TableResponse[Warehouse], error) {
	if err := g.err("warehouses"); err != nil {
		return TableResponse[Warehouse]{}, err
	}
	return TableResponse[Warehouse]{Rows: g.warehouses}, nil
}

func (g *stubGateway) FetchForecastSettings(context.Context) (ForecastSettings, error) {
	if err := g.err("forecast_settings"); err != nil {
		return ForecastSettings{}, err
	}
	return g.settings, nil
}

func (g *stubGateway) FetchForecastOverview(context.Context) (ForecastOverview, error) {
	if err := g.err("forecast_overview"); err != nil {
		return ForecastOverview{}, err
	}
	return g.overview, nil
}

// bufferLogger captures log output so tests can assert on it.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	var mu sync.Mutex
	handler := slog.NewTextHandler(&lockedWriter{mu: &mu, buf: &buf}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), &buf
}

type lockedWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTelemetry) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

func mustNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
