package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ErrMissingGateway is returned by views constructed without a gateway.
var ErrMissingGateway = errors.New("dashboard: gateway not configured")

// DashboardData pairs the summary cards with the forecast chart series.
type DashboardData struct {
	Summary  DashboardSummary `json:"summary"`
	Overview ForecastOverview `json:"overview"`
}

// DashboardView loads the landing page data. Summary and overview are
// fetched together and only replace the snapshot when both succeed.
type DashboardView struct {
	gateway Gateway
	res     *Resource[DashboardData]
}

// NewDashboardView builds the view.
func NewDashboardView(gateway Gateway, logger *slog.Logger, telemetry Telemetry) *DashboardView {
	return &DashboardView{
		gateway: gateway,
		res:     NewResource[DashboardData](string(ViewDashboard), logger, telemetry),
	}
}

// Refresh fetches the summary and the forecast overview concurrently.
func (v *DashboardView) Refresh(ctx context.Context) error {
	return v.res.Load(ctx, func(ctx context.Context) (DashboardData, error) {
		if v.gateway == nil {
			return DashboardData{}, ErrMissingGateway
		}
		var data DashboardData
		group, gctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			summary, err := v.gateway.FetchDashboardSummary(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: load summary: %w", err)
			}
			data.Summary = summary
			return nil
		})
		group.Go(func() error {
			overview, err := v.gateway.FetchForecastOverview(gctx)
			if err != nil {
				return fmt.Errorf("dashboard: load forecast overview: %w", err)
			}
			data.Overview = overview
			return nil
		})
		if err := group.Wait(); err != nil {
			return DashboardData{}, err
		}
		return data, nil
	})
}

// Snapshot returns the current data and state.
func (v *DashboardView) Snapshot() Snapshot[DashboardData] {
	return v.res.Snapshot()
}
