package dashboard

import (
	"context"
	"log/slog"
)

// WarehouseColumns is the fixed warehouses table layout.
var WarehouseColumns = []string{
	"warehouse_id",
	"name",
	"region",
	"capacity",
	"current_units",
	"utilization",
	"active_orders",
	"open_positions",
}

// WarehousesView loads warehouses and derives the regional roll-up.
type WarehousesView struct {
	gateway Gateway
	res     *Resource[[]Warehouse]
}

// NewWarehousesView builds the view.
func NewWarehousesView(gateway Gateway, logger *slog.Logger, telemetry Telemetry) *WarehousesView {
	return &WarehousesView{
		gateway: gateway,
		res:     NewResource[[]Warehouse](string(ViewWarehouses), logger, telemetry),
	}
}

// Refresh reloads warehouses.
func (v *WarehousesView) Refresh(ctx context.Context) error {
	return v.res.Load(ctx, func(ctx context.Context) ([]Warehouse, error) {
		if v.gateway == nil {
			return nil, ErrMissingGateway
		}
		resp, err := v.gateway.FetchWarehouses(ctx)
		if err != nil {
			return nil, err
		}
		return resp.Rows, nil
	})
}

// Warehouses returns the loaded sites.
func (v *WarehousesView) Warehouses() []Warehouse {
	return append([]Warehouse(nil), v.res.Snapshot().Data...)
}

// RegionSummary recomputes the roll-up from the current snapshot.
func (v *WarehousesView) RegionSummary() []RegionSummary {
	return SummarizeByRegion(v.res.Snapshot().Data)
}

// Snapshot returns the current data and state.
func (v *WarehousesView) Snapshot() Snapshot[[]Warehouse] {
	return v.res.Snapshot()
}

// Cells flattens a warehouse into display strings following WarehouseColumns.
func (w Warehouse) Cells() []string {
	return []string{
		w.WarehouseID,
		w.Name,
		w.Region,
		ValueOf(w.Capacity).Text(),
		ValueOf(w.CurrentUnits).Text(),
		FormatPercent(w.Utilization),
		ValueOf(w.ActiveOrders).Text(),
		ValueOf(w.OpenPositions).Text(),
	}
}
