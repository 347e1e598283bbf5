package dispatchapi

import (
	"context"
	"fmt"
	"strings"
	"sync"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// Resource names a gateway endpoint for error injection.
type Resource string

const (
	ResourceSummary          Resource = "summary"
	ResourceOrders           Resource = "orders"
	ResourceShipments        Resource = "shipments"
	ResourceWarehouses       Resource = "warehouses"
	ResourceForecastSettings Resource = "forecast_settings"
	ResourceForecastOverview Resource = "forecast_overview"
)

// MockData holds the fixtures served by MockClient.
type MockData struct {
	Summary          dashboard.DashboardSummary
	Orders           dashboard.OrderResponse
	Shipments        []dashboard.Shipment
	Warehouses       []dashboard.Warehouse
	ForecastSettings dashboard.ForecastSettings
	ForecastOverview dashboard.ForecastOverview
}

// MockClient serves in-memory fixtures. It backs demo mode and tests.
type MockClient struct {
	mu     sync.RWMutex
	data   MockData
	errs   map[Resource]error
	calls  map[Resource]int
	orders []dashboard.OrdersQuery
}

// NewMockClient returns a client serving data. Fixtures are copied.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{
		data:  cloneMockData(data),
		errs:  make(map[Resource]error),
		calls: make(map[Resource]int),
	}
}

// NewDemoClient returns a client serving DemoData.
func NewDemoClient() *MockClient {
	return NewMockClient(DemoData())
}

// SetData replaces every fixture.
func (m *MockClient) SetData(data MockData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = cloneMockData(data)
}

// Fail makes every call to resource return err until cleared with a nil err.
func (m *MockClient) Fail(resource Resource, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, resource)
		return
	}
	m.errs[resource] = err
}

// Calls reports how many times resource was requested.
func (m *MockClient) Calls(resource Resource) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[resource]
}

// OrderQueries returns the orders queries received so far.
func (m *MockClient) OrderQueries() []dashboard.OrdersQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dashboard.OrdersQuery(nil), m.orders...)
}

func (m *MockClient) FetchDashboardSummary(ctx context.Context) (dashboard.DashboardSummary, error) {
	if err := m.begin(ctx, ResourceSummary); err != nil {
		return dashboard.DashboardSummary{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSummary(m.data.Summary), nil
}

func (m *MockClient) FetchOrders(ctx context.Context, query dashboard.OrdersQuery) (dashboard.OrderResponse, error) {
	if query.Limit <= 0 {
		return dashboard.OrderResponse{}, fmt.Errorf("%w: got %d", ErrInvalidLimit, query.Limit)
	}
	m.mu.Lock()
	m.orders = append(m.orders, query)
	m.mu.Unlock()
	if err := m.begin(ctx, ResourceOrders); err != nil {
		return dashboard.OrderResponse{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := dashboard.OrderResponse{Columns: append([]string(nil), m.data.Orders.Columns...)}
	for _, row := range m.data.Orders.Rows {
		if len(out.Rows) >= query.Limit {
			break
		}
		if query.Status != "" && !statusMatches(row, query.Status) {
			continue
		}
		out.Rows = append(out.Rows, row.Clone())
	}
	return out, nil
}

func (m *MockClient) FetchShipments(ctx context.Context, limit int) (dashboard.TableResponse[dashboard.Shipment], error) {
	if limit == 0 {
		limit = DefaultShipmentsLimit
	}
	if limit < 0 {
		return dashboard.TableResponse[dashboard.Shipment]{}, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	if err := m.begin(ctx, ResourceShipments); err != nil {
		return dashboard.TableResponse[dashboard.Shipment]{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.data.Shipments
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return dashboard.TableResponse[dashboard.Shipment]{Rows: append([]dashboard.Shipment(nil), rows...)}, nil
}

func (m *MockClient) FetchWarehouses(ctx context.Context) (dashboard.TableResponse[dashboard.Warehouse], error) {
	if err := m.begin(ctx, ResourceWarehouses); err != nil {
		return dashboard.TableResponse[dashboard.Warehouse]{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return dashboard.TableResponse[dashboard.Warehouse]{Rows: append([]dashboard.Warehouse(nil), m.data.Warehouses...)}, nil
}

func (m *MockClient) FetchForecastSettings(ctx context.Context) (dashboard.ForecastSettings, error) {
	if err := m.begin(ctx, ResourceForecastSettings); err != nil {
		return dashboard.ForecastSettings{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSettings(m.data.ForecastSettings), nil
}

func (m *MockClient) FetchForecastOverview(ctx context.Context) (dashboard.ForecastOverview, error) {
	if err := m.begin(ctx, ResourceForecastOverview); err != nil {
		return dashboard.ForecastOverview{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOverview(m.data.ForecastOverview), nil
}

func (m *MockClient) begin(ctx context.Context, resource Resource) error {
	if err := ctx.Err(); err != nil {
		return &GatewayError{Kind: KindTransport, Path: "/" + string(resource), Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[resource]++
	return m.errs[resource]
}

func statusMatches(row dashboard.Row, status string) bool {
	value, ok := row["status"]
	if !ok {
		return false
	}
	return strings.EqualFold(value.Text(), status)
}

func cloneMockData(data MockData) MockData {
	out := MockData{
		Summary:          cloneSummary(data.Summary),
		Orders:           dashboard.OrderResponse{Columns: append([]string(nil), data.Orders.Columns...)},
		Shipments:        append([]dashboard.Shipment(nil), data.Shipments...),
		Warehouses:       append([]dashboard.Warehouse(nil), data.Warehouses...),
		ForecastSettings: cloneSettings(data.ForecastSettings),
		ForecastOverview: cloneOverview(data.ForecastOverview),
	}
	for _, row := range data.Orders.Rows {
		out.Orders.Rows = append(out.Orders.Rows, row.Clone())
	}
	return out
}

func cloneSummary(in dashboard.DashboardSummary) dashboard.DashboardSummary {
	out := in
	if in.Pipeline != nil {
		out.Pipeline = make(map[string]int, len(in.Pipeline))
		for k, v := range in.Pipeline {
			out.Pipeline[k] = v
		}
	}
	return out
}

func cloneSettings(in dashboard.ForecastSettings) dashboard.ForecastSettings {
	out := in
	if in.Seasonality != nil {
		out.Seasonality = make(map[string]bool, len(in.Seasonality))
		for k, v := range in.Seasonality {
			out.Seasonality[k] = v
		}
	}
	out.DemandDrivers = append([]string(nil), in.DemandDrivers...)
	out.Scenarios = append([]dashboard.Scenario(nil), in.Scenarios...)
	return out
}

func cloneOverview(in dashboard.ForecastOverview) dashboard.ForecastOverview {
	return dashboard.ForecastOverview{
		Labels: append([]string(nil), in.Labels...),
		Demand: append([]float64(nil), in.Demand...),
		Supply: append([]float64(nil), in.Supply...),
	}
}
