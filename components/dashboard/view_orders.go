package dashboard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

const (
	// DefaultOrdersLimit is the row limit the orders view requests.
	DefaultOrdersLimit = 60
	// StatusAll is the status option meaning "no status filter".
	StatusAll = "ALL"
)

// OrdersTable is the presentation state of the orders view.
type OrdersTable struct {
	Columns  []string  `json:"columns"`
	Rows     []Row     `json:"rows"`
	Statuses []string  `json:"statuses"`
	Status   string    `json:"status"`
	Filter   string    `json:"filter"`
	Sort     SortSpec  `json:"sort"`
	Total    int       `json:"total"`
	State    ViewState `json:"state"`
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
}

// OrdersView loads orders and applies client-side filtering and sorting.
type OrdersView struct {
	gateway Gateway
	limit   int
	res     *Resource[OrderResponse]

	mu     sync.RWMutex
	status string
	filter string
	sort   SortSpec
}

// NewOrdersView builds the view. A non-positive limit uses DefaultOrdersLimit.
func NewOrdersView(gateway Gateway, limit int, logger *slog.Logger, telemetry Telemetry) *OrdersView {
	if limit <= 0 {
		limit = DefaultOrdersLimit
	}
	return &OrdersView{
		gateway: gateway,
		limit:   limit,
		res:     NewResource[OrderResponse](string(ViewOrders), logger, telemetry),
	}
}

// Load fetches orders, optionally restricted to a status.
func (v *OrdersView) Load(ctx context.Context, status string) error {
	status = normalizeStatus(status)
	v.mu.Lock()
	v.status = status
	v.mu.Unlock()
	return v.res.Load(ctx, func(ctx context.Context) (OrderResponse, error) {
		if v.gateway == nil {
			return OrderResponse{}, ErrMissingGateway
		}
		return v.gateway.FetchOrders(ctx, OrdersQuery{Limit: v.limit, Status: status})
	})
}

// Refresh reloads orders with the current status selection.
func (v *OrdersView) Refresh(ctx context.Context) error {
	return v.Load(ctx, v.Status())
}

// OnStatusChange reloads for a status picked from the filter; StatusAll or an
// empty value clears the status filter.
func (v *OrdersView) OnStatusChange(ctx context.Context, status string) error {
	return v.Load(ctx, status)
}

// ApplyFilter sets the free-text filter.
func (v *OrdersView) ApplyFilter(text string) {
	v.mu.Lock()
	v.filter = text
	v.mu.Unlock()
}

// ClearFilter removes the free-text filter.
func (v *OrdersView) ClearFilter() {
	v.ApplyFilter("")
}

// SortBy orders visible rows by column. SortNone restores response order.
func (v *OrdersView) SortBy(column string, direction SortDirection) {
	v.mu.Lock()
	v.sort = SortSpec{Column: column, Direction: direction}
	v.mu.Unlock()
}

// Status returns the active status filter, empty meaning all.
func (v *OrdersView) Status() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

// Filter returns the normalized free-text filter.
func (v *OrdersView) Filter() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return NormalizeFilter(v.filter)
}

// Table derives the visible table from the current snapshot.
func (v *OrdersView) Table() OrdersTable {
	snap := v.res.Snapshot()
	v.mu.RLock()
	status, filter, spec := v.status, NormalizeFilter(v.filter), v.sort
	v.mu.RUnlock()

	columns := DeriveColumns(snap.Data)
	visible := SortRows(FilterRows(snap.Data.Rows, columns, filter), spec)
	return OrdersTable{
		Columns:  columns,
		Rows:     visible,
		Statuses: DeriveStatusOptions(snap.Data.Rows, DefaultStatusColumn),
		Status:   status,
		Filter:   filter,
		Sort:     spec,
		Total:    len(snap.Data.Rows),
		State:    snap.State,
		Loading:  snap.Loading,
		Error:    snap.Error,
	}
}

// Snapshot returns the raw response snapshot.
func (v *OrdersView) Snapshot() Snapshot[OrderResponse] {
	return v.res.Snapshot()
}

func normalizeStatus(status string) string {
	status = strings.TrimSpace(status)
	if strings.EqualFold(status, StatusAll) {
		return ""
	}
	return status
}
