package dashboard

import (
	"context"
	"errors"
	"testing"
)

func TestShellNavigation(t *testing.T) {
	shell := NewShell(nil)
	nav := shell.Nav()
	if len(nav) != len(Views) {
		t.Fatalf("expected one nav entry per view")
	}
	for i, item := range nav {
		if item.View != Views[i] || item.Path != "/"+string(Views[i]) {
			t.Fatalf("nav entry %d out of order: %+v", i, item)
		}
	}
	nav[0].Label = "changed"
	if shell.Nav()[0].Label != "Dashboard" {
		t.Fatalf("Nav should return a copy")
	}
	if shell.Title() != AppTitle {
		t.Fatalf("unexpected title %q", shell.Title())
	}
}

func TestShellSidenavToggle(t *testing.T) {
	shell := NewShell(nil)
	if !shell.SidenavOpen() {
		t.Fatalf("expected side navigation open by default")
	}
	if shell.ToggleSidenav() || shell.SidenavOpen() {
		t.Fatalf("expected side navigation closed after toggle")
	}
	if !shell.ToggleSidenav() {
		t.Fatalf("expected side navigation open after second toggle")
	}
}

func TestShellThemeToggle(t *testing.T) {
	backend := NewInMemoryPreferenceBackend()
	shell := NewShell(NewThemeService(context.Background(), backend, ThemeOptions{}))
	if shell.IsDarkMode() {
		t.Fatalf("expected light mode by default")
	}
	theme, err := shell.ToggleTheme(context.Background())
	mustNoError(t, err)
	if theme != ThemeDark || !shell.IsDarkMode() {
		t.Fatalf("expected dark mode")
	}
	if value, _, _ := backend.Load(context.Background(), ThemePreferenceKey); value != "dark" {
		t.Fatalf("expected persisted dark, got %q", value)
	}

	bare := NewShell(nil)
	if _, err := bare.ToggleTheme(context.Background()); !errors.Is(err, errMissingBackend) {
		t.Fatalf("expected missing backend error, got %v", err)
	}
}
