package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

var errSortColumnRequired = errors.New("sort command requires a column")

type ordersService interface {
	OnStatusChange(ctx context.Context, status string) error
	ApplyFilter(text string)
	SortBy(column string, direction dashboard.SortDirection)
}

// ApplyOrderFilterInput updates the orders filters. A non-empty Status
// reloads orders for that status ("ALL" clears it); Filter replaces the
// free-text filter, empty clearing it.
type ApplyOrderFilterInput struct {
	Status string `json:"status"`
	Filter string `json:"filter"`
}

// ApplyOrderFilterCommand applies status and free-text filters.
type ApplyOrderFilterCommand struct {
	service   ordersService
	telemetry Telemetry
}

// NewApplyOrderFilterCommand creates the command.
func NewApplyOrderFilterCommand(service ordersService, telemetry Telemetry) *ApplyOrderFilterCommand {
	return &ApplyOrderFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ApplyOrderFilterInput] = (*ApplyOrderFilterCommand)(nil)

// Execute applies the filter. The free-text filter is applied even when the
// status reload fails so the held rows stay filtered consistently.
func (c *ApplyOrderFilterCommand) Execute(ctx context.Context, msg ApplyOrderFilterInput) error {
	if c.service == nil {
		return errors.New("orders filter command requires service")
	}
	c.service.ApplyFilter(msg.Filter)
	var err error
	if status := strings.TrimSpace(msg.Status); status != "" {
		err = c.service.OnStatusChange(ctx, status)
	}
	c.telemetry.Record(ctx, "dashboard.command.orders_filter", map[string]any{
		"status": msg.Status,
		"filter": dashboard.NormalizeFilter(msg.Filter) != "",
	})
	return err
}

// SortOrdersInput selects the orders sort column and direction.
type SortOrdersInput struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// SortOrdersCommand sorts the visible orders.
type SortOrdersCommand struct {
	service   ordersService
	telemetry Telemetry
}

// NewSortOrdersCommand creates the command.
func NewSortOrdersCommand(service ordersService, telemetry Telemetry) *SortOrdersCommand {
	return &SortOrdersCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SortOrdersInput] = (*SortOrdersCommand)(nil)

// Execute updates the sort. An empty direction resets to response order.
func (c *SortOrdersCommand) Execute(ctx context.Context, msg SortOrdersInput) error {
	if c.service == nil {
		return errors.New("orders sort command requires service")
	}
	direction := dashboard.ParseSortDirection(msg.Direction)
	column := strings.TrimSpace(msg.Column)
	if column == "" && direction != dashboard.SortNone {
		return errSortColumnRequired
	}
	c.service.SortBy(column, direction)
	c.telemetry.Record(ctx, "dashboard.command.orders_sort", map[string]any{
		"column":    column,
		"direction": string(direction),
	})
	return nil
}
