package dispatchapi

import (
	"context"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// SummaryClient fetches the backend computed dashboard overview.
type SummaryClient interface {
	FetchDashboardSummary(ctx context.Context) (dashboard.DashboardSummary, error)
}

// OrdersClient fetches dynamic-column order rows.
type OrdersClient interface {
	FetchOrders(ctx context.Context, query dashboard.OrdersQuery) (dashboard.OrderResponse, error)
}

// ShipmentsClient fetches tracked shipments.
type ShipmentsClient interface {
	FetchShipments(ctx context.Context, limit int) (dashboard.TableResponse[dashboard.Shipment], error)
}

// WarehousesClient fetches warehouse capacity rows.
type WarehousesClient interface {
	FetchWarehouses(ctx context.Context) (dashboard.TableResponse[dashboard.Warehouse], error)
}

// ForecastClient fetches forecast configuration and chart series.
type ForecastClient interface {
	FetchForecastSettings(ctx context.Context) (dashboard.ForecastSettings, error)
	FetchForecastOverview(ctx context.Context) (dashboard.ForecastOverview, error)
}

// Client is the union every gateway implementation satisfies.
type Client interface {
	SummaryClient
	OrdersClient
	ShipmentsClient
	WarehousesClient
	ForecastClient
}

var (
	_ dashboard.Gateway = Client(nil)
	_ Client            = (*HTTPClient)(nil)
	_ Client            = (*MockClient)(nil)
)
