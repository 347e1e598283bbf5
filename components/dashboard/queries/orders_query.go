package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// OrdersTableInput asks for the orders table, reloading first when Refresh
// is set.
type OrdersTableInput struct {
	Refresh bool
}

type ordersSource interface {
	Refresh(ctx context.Context) error
	Table() dashboard.OrdersTable
}

// OrdersTableQuery returns the filtered and sorted orders table.
type OrdersTableQuery struct {
	orders ordersSource
}

// NewOrdersTableQuery builds the query.
func NewOrdersTableQuery(orders ordersSource) *OrdersTableQuery {
	return &OrdersTableQuery{orders: orders}
}

var _ gocommand.Querier[OrdersTableInput, dashboard.OrdersTable] = (*OrdersTableQuery)(nil)

// Query returns the table. A failed reload still returns the held rows along
// with the error.
func (q *OrdersTableQuery) Query(ctx context.Context, input OrdersTableInput) (dashboard.OrdersTable, error) {
	var err error
	if input.Refresh {
		err = q.orders.Refresh(ctx)
	}
	return q.orders.Table(), err
}
