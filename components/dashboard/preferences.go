package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ThemePreferenceKey is the persisted key holding the theme flag.
const ThemePreferenceKey = "order-to-dispatch-theme"

var errMissingBackend = errors.New("dashboard: preference backend not configured")

// PreferenceBackend persists preference strings by key. It is the only
// persistence boundary the dashboard touches.
type PreferenceBackend interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
}

// InMemoryPreferenceBackend keeps preferences for the process lifetime.
type InMemoryPreferenceBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewInMemoryPreferenceBackend creates an empty backend.
func NewInMemoryPreferenceBackend() *InMemoryPreferenceBackend {
	return &InMemoryPreferenceBackend{data: make(map[string]string)}
}

// Load returns the stored value.
func (b *InMemoryPreferenceBackend) Load(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.data[key]
	return value, ok, nil
}

// Save stores the value, replacing any previous one.
func (b *InMemoryPreferenceBackend) Save(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("dashboard: preference key is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

// Theme is the light/dark presentation flag.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a persisted value to a theme. Only "dark" selects the dark
// theme; unknown or empty values fall back to light.
func ParseTheme(raw string) Theme {
	if raw == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeOptions configures a ThemeService.
type ThemeOptions struct {
	Key       string
	Logger    *slog.Logger
	Telemetry Telemetry
}

// ThemeService owns the process-wide theme flag. The persisted value is read
// once at construction and written on every change.
type ThemeService struct {
	backend   PreferenceBackend
	key       string
	logger    *slog.Logger
	telemetry Telemetry

	// saveMu orders changes so the last persisted value matches current.
	saveMu  sync.Mutex
	mu      sync.RWMutex
	current Theme
}

// NewThemeService loads the persisted theme. Read failures are logged and the
// service starts in the light theme.
func NewThemeService(ctx context.Context, backend PreferenceBackend, opts ThemeOptions) *ThemeService {
	if opts.Key == "" {
		opts.Key = ThemePreferenceKey
	}
	svc := &ThemeService{
		backend:   backend,
		key:       opts.Key,
		logger:    normalizeLogger(opts.Logger),
		telemetry: normalizeTelemetry(opts.Telemetry),
		current:   ThemeLight,
	}
	if backend == nil {
		svc.logger.WarnContext(ctx, "theme preference backend missing, changes will not persist")
		return svc
	}
	raw, ok, err := backend.Load(ctx, svc.key)
	if err != nil {
		svc.logger.ErrorContext(ctx, "failed to read theme preference", "key", svc.key, "error", err)
		return svc
	}
	if ok {
		svc.current = ParseTheme(raw)
	}
	return svc
}

// Current returns the active theme.
func (s *ThemeService) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsDark reports whether the dark theme is active.
func (s *ThemeService) IsDark() bool {
	return s.Current() == ThemeDark
}

// Toggle flips the theme and persists it. The in-memory flag flips even when
// persistence fails; the error is returned.
func (s *ThemeService) Toggle(ctx context.Context) (Theme, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Lock()
	next := ThemeDark
	if s.current == ThemeDark {
		next = ThemeLight
	}
	s.current = next
	s.mu.Unlock()
	return next, s.persist(ctx, next)
}

// Set selects a theme explicitly and persists it.
func (s *ThemeService) Set(ctx context.Context, theme Theme) error {
	theme = ParseTheme(string(theme))
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	s.mu.Lock()
	s.current = theme
	s.mu.Unlock()
	return s.persist(ctx, theme)
}

// Selection resolves the presentation tokens for the active theme.
func (s *ThemeService) Selection() *ThemeSelection {
	return SelectionFor(s.Current())
}

func (s *ThemeService) persist(ctx context.Context, theme Theme) error {
	s.telemetry.Record(ctx, "dashboard.theme.change", map[string]any{"theme": string(theme)})
	if s.backend == nil {
		return errMissingBackend
	}
	if err := s.backend.Save(ctx, s.key, string(theme)); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist theme preference", "theme", theme, "error", err)
		return fmt.Errorf("dashboard: persist theme: %w", err)
	}
	return nil
}
