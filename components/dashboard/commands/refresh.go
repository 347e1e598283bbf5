package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// RefreshViewInput reloads one view, or every view when All is set.
type RefreshViewInput struct {
	View string `json:"view"`
	All  bool   `json:"all"`
}

type refresher interface {
	Refresh(ctx context.Context, view dashboard.ViewName) error
	RefreshAll(ctx context.Context) error
}

// RefreshViewCommand re-fetches view data from the gateway.
type RefreshViewCommand struct {
	service   refresher
	telemetry Telemetry
}

// NewRefreshViewCommand creates the command.
func NewRefreshViewCommand(service refresher, telemetry Telemetry) *RefreshViewCommand {
	return &RefreshViewCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshViewInput] = (*RefreshViewCommand)(nil)

// Execute refreshes the requested views and returns any load failure.
func (c *RefreshViewCommand) Execute(ctx context.Context, msg RefreshViewInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.All {
		err := c.service.RefreshAll(ctx)
		c.telemetry.Record(ctx, "dashboard.command.refresh", map[string]any{
			"view": "all",
			"ok":   err == nil,
		})
		return err
	}
	view, err := dashboard.ParseViewName(msg.View)
	if err != nil {
		return err
	}
	err = c.service.Refresh(ctx, view)
	c.telemetry.Record(ctx, "dashboard.command.refresh", map[string]any{
		"view": string(view),
		"ok":   err == nil,
	})
	return err
}
