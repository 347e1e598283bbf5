package dashboard

import (
	"context"
	"sync"
)

// AppTitle is shown in the toolbar and the page title.
const AppTitle = "Order to Dispatch Dashboard"

// NavItem is one entry of the side navigation.
type NavItem struct {
	Label string   `json:"label"`
	Path  string   `json:"path"`
	Icon  string   `json:"icon"`
	View  ViewName `json:"view"`
}

// NavItems lists the pages in navigation order. Icons are Material icon names.
var NavItems = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", Icon: "dashboard", View: ViewDashboard},
	{Label: "Orders", Path: "/orders", Icon: "assignment", View: ViewOrders},
	{Label: "Shipments", Path: "/shipments", Icon: "local_shipping", View: ViewShipments},
	{Label: "Warehouses", Path: "/warehouses", Icon: "inventory_2", View: ViewWarehouses},
	{Label: "Forecast Settings", Path: "/forecast-settings", Icon: "insights", View: ViewForecastSettings},
}

// Shell holds the navigation chrome state shared by every page.
type Shell struct {
	theme *ThemeService

	mu          sync.RWMutex
	sidenavOpen bool
}

// NewShell builds a shell with the side navigation open.
func NewShell(theme *ThemeService) *Shell {
	return &Shell{theme: theme, sidenavOpen: true}
}

// Title returns the application title.
func (s *Shell) Title() string {
	return AppTitle
}

// Nav returns a copy of the navigation entries.
func (s *Shell) Nav() []NavItem {
	return append([]NavItem(nil), NavItems...)
}

// ToggleSidenav flips the side navigation and reports the new state.
func (s *Shell) ToggleSidenav() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidenavOpen = !s.sidenavOpen
	return s.sidenavOpen
}

// SidenavOpen reports whether the side navigation is expanded.
func (s *Shell) SidenavOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidenavOpen
}

// IsDarkMode reports the active theme.
func (s *Shell) IsDarkMode() bool {
	if s.theme == nil {
		return false
	}
	return s.theme.IsDark()
}

// ToggleTheme flips between light and dark.
func (s *Shell) ToggleTheme(ctx context.Context) (Theme, error) {
	if s.theme == nil {
		return ThemeLight, errMissingBackend
	}
	return s.theme.Toggle(ctx)
}
