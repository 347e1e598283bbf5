package goadmin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	dashboardpkg "github.com/goliatone/go-dispatch-dashboard/pkg/dashboard"
)

// MenuBuilder ensures dashboard entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the dispatch dashboard into an admin shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	// BasePath prefixes every seeded route, e.g. "/admin/dispatch".
	BasePath string
	// StartPosition is the menu position of the first dashboard page.
	StartPosition int
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed dashboard menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("goadmin: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")
	return &Admin{cfg: cfg}, nil
}

// Dashboard exposes the configured dashboard service when enabled.
func (a *Admin) Dashboard() *dashboardpkg.Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// MenuItems maps the shell navigation onto admin menu entries.
func (a *Admin) MenuItems() []MenuItem {
	if !a.cfg.EnableDashboard {
		return nil
	}
	nav := a.cfg.Service.Shell().Nav()
	items := make([]MenuItem, 0, len(nav))
	for i, entry := range nav {
		items = append(items, MenuItem{
			Label:    entry.Label,
			Route:    a.cfg.BasePath + entry.Path,
			Icon:     entry.Icon,
			Position: a.cfg.StartPosition + i,
		})
	}
	return items
}

// Bootstrap seeds one menu entry per dashboard page when enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	for _, item := range a.MenuItems() {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure menu item %s: %w", item.Label, err)
		}
	}
	return nil
}
