package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// RegionSummaryInput asks for the regional roll-up.
type RegionSummaryInput struct {
	Refresh bool
	// IncludeTotals appends the all-regions row.
	IncludeTotals bool
}

type warehouseSource interface {
	Refresh(ctx context.Context) error
	RegionSummary() []dashboard.RegionSummary
}

// RegionSummaryQuery aggregates warehouse capacity per region.
type RegionSummaryQuery struct {
	warehouses warehouseSource
}

// NewRegionSummaryQuery builds the query.
func NewRegionSummaryQuery(warehouses warehouseSource) *RegionSummaryQuery {
	return &RegionSummaryQuery{warehouses: warehouses}
}

var _ gocommand.Querier[RegionSummaryInput, []dashboard.RegionSummary] = (*RegionSummaryQuery)(nil)

// Query returns one summary per region in first-seen order.
func (q *RegionSummaryQuery) Query(ctx context.Context, input RegionSummaryInput) ([]dashboard.RegionSummary, error) {
	var err error
	if input.Refresh {
		err = q.warehouses.Refresh(ctx)
	}
	summaries := q.warehouses.RegionSummary()
	if input.IncludeTotals && len(summaries) > 0 {
		summaries = append(summaries, dashboard.TotalsOf(summaries))
	}
	return summaries, err
}
