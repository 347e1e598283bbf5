package dashboard

import (
	"context"
	"log/slog"
)

// DefaultShipmentsLimit is the row limit the shipments view requests.
const DefaultShipmentsLimit = 50

// ShipmentColumns is the fixed shipments table layout.
var ShipmentColumns = []string{
	"shipment_id",
	"order_id",
	"status",
	"carrier",
	"origin",
	"destination",
	"departed_at",
	"estimated_delivery",
	"tracking_events",
	"is_expedited",
}

// ShipmentsView loads the shipments table.
type ShipmentsView struct {
	gateway Gateway
	limit   int
	res     *Resource[[]Shipment]
}

// NewShipmentsView builds the view. A non-positive limit uses DefaultShipmentsLimit.
func NewShipmentsView(gateway Gateway, limit int, logger *slog.Logger, telemetry Telemetry) *ShipmentsView {
	if limit <= 0 {
		limit = DefaultShipmentsLimit
	}
	return &ShipmentsView{
		gateway: gateway,
		limit:   limit,
		res:     NewResource[[]Shipment](string(ViewShipments), logger, telemetry),
	}
}

// Refresh reloads shipments.
func (v *ShipmentsView) Refresh(ctx context.Context) error {
	return v.res.Load(ctx, func(ctx context.Context) ([]Shipment, error) {
		if v.gateway == nil {
			return nil, ErrMissingGateway
		}
		resp, err := v.gateway.FetchShipments(ctx, v.limit)
		if err != nil {
			return nil, err
		}
		return resp.Rows, nil
	})
}

// Rows returns the loaded shipments.
func (v *ShipmentsView) Rows() []Shipment {
	return append([]Shipment(nil), v.res.Snapshot().Data...)
}

// Snapshot returns the current data and state.
func (v *ShipmentsView) Snapshot() Snapshot[[]Shipment] {
	return v.res.Snapshot()
}

// Cells flattens a shipment into display strings following ShipmentColumns.
func (s Shipment) Cells() []string {
	expedited := "no"
	if s.IsExpedited {
		expedited = "yes"
	}
	return []string{
		s.ShipmentID,
		s.OrderID,
		s.Status,
		s.Carrier,
		s.Origin,
		s.Destination,
		s.DepartedAt,
		s.EstimatedDelivery,
		ValueOf(s.TrackingEvents).Text(),
		expedited,
	}
}
