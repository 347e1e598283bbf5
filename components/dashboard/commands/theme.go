package commands

import (
	"context"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// ToggleThemeInput flips the theme, or selects Theme when it is set.
type ToggleThemeInput struct {
	Theme string `json:"theme"`
}

type themeService interface {
	Toggle(ctx context.Context) (dashboard.Theme, error)
	Set(ctx context.Context, theme dashboard.Theme) error
	Current() dashboard.Theme
}

// ToggleThemeCommand switches between light and dark and persists the choice.
type ToggleThemeCommand struct {
	service   themeService
	telemetry Telemetry
}

// NewToggleThemeCommand creates the command.
func NewToggleThemeCommand(service themeService, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

// Execute toggles or sets the theme.
func (c *ToggleThemeCommand) Execute(ctx context.Context, msg ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	var err error
	if theme := strings.TrimSpace(msg.Theme); theme != "" {
		err = c.service.Set(ctx, dashboard.ParseTheme(strings.ToLower(theme)))
	} else {
		_, err = c.service.Toggle(ctx)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.theme", map[string]any{
		"theme": string(c.service.Current()),
	})
	return nil
}

// ToggleSidenavInput carries no fields.
type ToggleSidenavInput struct{}

type sidenavService interface {
	ToggleSidenav() bool
}

// ToggleSidenavCommand expands or collapses the side navigation.
type ToggleSidenavCommand struct {
	shell sidenavService
}

// NewToggleSidenavCommand creates the command.
func NewToggleSidenavCommand(shell sidenavService) *ToggleSidenavCommand {
	return &ToggleSidenavCommand{shell: shell}
}

var _ gocommand.Commander[ToggleSidenavInput] = (*ToggleSidenavCommand)(nil)

// Execute flips the side navigation.
func (c *ToggleSidenavCommand) Execute(context.Context, ToggleSidenavInput) error {
	if c.shell == nil {
		return errors.New("sidenav command requires shell")
	}
	c.shell.ToggleSidenav()
	return nil
}
