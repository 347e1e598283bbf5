package dispatchapi

import (
	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// DemoData returns a small, consistent fixture set for demo mode.
func DemoData() MockData {
	orders := dashboard.OrderResponse{
		Columns: []string{"order_id", "customer", "status", "total", "priority", "promised_date", "is_rush"},
	}
	type order struct {
		id, customer, status string
		total                float64
		priority             any
		promised             string
		rush                 bool
	}
	for _, o := range []order{
		{"SO-1001", "Acme Retail", "Pending", 1250.00, 2.0, "2026-10-22", false},
		{"SO-1002", "Borealis Foods", "Confirmed", 980.50, 1.0, "2026-10-21", true},
		{"SO-1003", "Cobalt Outfitters", "Allocated", 4410.75, nil, "2026-10-25", false},
		{"SO-1004", "Delta Hardware", "Packed", 312.20, 3.0, "2026-10-20", false},
		{"SO-1005", "Evergreen Pharmacy", "Shipped", 2290.00, 1.0, "2026-10-19", true},
		{"SO-1006", "Fjord Marine", "Delivered", 760.00, 2.0, "2026-10-15", false},
		{"SO-1007", "Granite Supply", "Pending", 5120.40, 1.0, "2026-10-28", true},
		{"SO-1008", "Harbor Books", "Confirmed", 145.99, nil, "2026-10-24", false},
	} {
		orders.Rows = append(orders.Rows, dashboard.Row{
			"order_id":      dashboard.String(o.id),
			"customer":      dashboard.String(o.customer),
			"status":        dashboard.String(o.status),
			"total":         dashboard.Number(o.total),
			"priority":      dashboard.ValueOf(o.priority),
			"promised_date": dashboard.String(o.promised),
			"is_rush":       dashboard.Bool(o.rush),
		})
	}

	return MockData{
		Summary: dashboard.DashboardSummary{
			Totals: dashboard.DashboardTotals{
				Orders:     8,
				Shipments:  4,
				Warehouses: 4,
				OrderValue: 15269.84,
			},
			LateOrders: 1,
			Pipeline: map[string]int{
				"Pending":   2,
				"Confirmed": 2,
				"Allocated": 1,
				"Packed":    1,
				"Shipped":   1,
				"Delivered": 1,
			},
			WarehouseUtilization: 0.62,
		},
		Orders: orders,
		Shipments: []dashboard.Shipment{
			{ShipmentID: "SH-501", OrderID: "SO-1005", Status: "Out for Delivery", Carrier: "NorthStar", Origin: "Newark", Destination: "Boston", DepartedAt: "2026-10-17", EstimatedDelivery: "2026-10-19", TrackingEvents: 4, IsExpedited: true},
			{ShipmentID: "SH-502", OrderID: "SO-1006", Status: "Delivered", Carrier: "Coastal Freight", Origin: "Savannah", Destination: "Charleston", DepartedAt: "2026-10-12", EstimatedDelivery: "2026-10-15", TrackingEvents: 7},
			{ShipmentID: "SH-503", OrderID: "SO-1004", Status: "Label Created", Carrier: "NorthStar", Origin: "Reno", Destination: "Portland", DepartedAt: "", EstimatedDelivery: "2026-10-23", TrackingEvents: 1},
			{ShipmentID: "SH-504", OrderID: "SO-1002", Status: "Exception", Carrier: "Summit Parcel", Origin: "Dallas", Destination: "Denver", DepartedAt: "2026-10-16", EstimatedDelivery: "2026-10-21", TrackingEvents: 3, IsExpedited: true},
		},
		Warehouses: []dashboard.Warehouse{
			{WarehouseID: "WH-01", Name: "Newark DC", Region: "East", Capacity: 12000, CurrentUnits: 8400, Utilization: 0.7, ActiveOrders: 42, OpenPositions: 3},
			{WarehouseID: "WH-02", Name: "Savannah Port", Region: "East", Capacity: 8000, CurrentUnits: 4000, Utilization: 0.5, ActiveOrders: 18, OpenPositions: 1},
			{WarehouseID: "WH-03", Name: "Reno Hub", Region: "West", Capacity: 10000, CurrentUnits: 6100, Utilization: 0.61, ActiveOrders: 27, OpenPositions: 4},
			{WarehouseID: "WH-04", Name: "Dallas Crossdock", Region: "Central", Capacity: 6000, CurrentUnits: 3900, Utilization: 0.65, ActiveOrders: 15, OpenPositions: 0},
		},
		ForecastSettings: dashboard.ForecastSettings{
			HorizonMonths:      6,
			Model:              "holt-winters",
			ConfidenceInterval: 0.9,
			Seasonality:        map[string]bool{"weekly": true, "monthly": true, "yearly": false},
			DemandDrivers:      []string{"promotions", "weather", "holidays"},
			Scenarios: []dashboard.Scenario{
				{Name: "Baseline", Growth: 0.03},
				{Name: "Peak Season", Growth: 0.12},
				{Name: "Downturn", Growth: -0.05},
			},
		},
		ForecastOverview: dashboard.ForecastOverview{
			Labels: []string{"Nov", "Dec", "Jan", "Feb", "Mar", "Apr"},
			Demand: []float64{1180, 1420, 990, 1010, 1105, 1160},
			Supply: []float64{1200, 1300, 1100, 1050, 1100, 1150},
		},
	}
}
