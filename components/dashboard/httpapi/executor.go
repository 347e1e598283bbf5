package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-dispatch-dashboard/components/dashboard/commands"
)

var errCommandNotConfigured = errors.New("httpapi: command not configured")

// Executor runs dashboard actions for transports.
type Executor interface {
	ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error
	ToggleSidenav(ctx context.Context, input commands.ToggleSidenavInput) error
	Refresh(ctx context.Context, input commands.RefreshViewInput) error
	FilterOrders(ctx context.Context, input commands.ApplyOrderFilterInput) error
	SortOrders(ctx context.Context, input commands.SortOrdersInput) error
	SelectScenario(ctx context.Context, input commands.SelectScenarioInput) error
}

// CommandExecutor adapts go-command commanders to Executor.
type CommandExecutor struct {
	ThemeCommander    gocommand.Commander[commands.ToggleThemeInput]
	SidenavCommander  gocommand.Commander[commands.ToggleSidenavInput]
	RefreshCommander  gocommand.Commander[commands.RefreshViewInput]
	FilterCommander   gocommand.Commander[commands.ApplyOrderFilterInput]
	SortCommander     gocommand.Commander[commands.SortOrdersInput]
	ScenarioCommander gocommand.Commander[commands.SelectScenarioInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error {
	return execute(ctx, e.ThemeCommander, input)
}

func (e *CommandExecutor) ToggleSidenav(ctx context.Context, input commands.ToggleSidenavInput) error {
	return execute(ctx, e.SidenavCommander, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshViewInput) error {
	return execute(ctx, e.RefreshCommander, input)
}

func (e *CommandExecutor) FilterOrders(ctx context.Context, input commands.ApplyOrderFilterInput) error {
	return execute(ctx, e.FilterCommander, input)
}

func (e *CommandExecutor) SortOrders(ctx context.Context, input commands.SortOrdersInput) error {
	return execute(ctx, e.SortCommander, input)
}

func (e *CommandExecutor) SelectScenario(ctx context.Context, input commands.SelectScenarioInput) error {
	return execute(ctx, e.ScenarioCommander, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errCommandNotConfigured
	}
	return cmd.Execute(ctx, msg)
}
