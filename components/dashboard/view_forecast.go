package dashboard

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultConfidence is shown before settings load.
const DefaultConfidence = 0.9

// ForecastSettingsView loads forecast settings and tracks the scenario and
// confidence the user is looking at.
type ForecastSettingsView struct {
	gateway Gateway
	res     *Resource[ForecastSettings]

	mu         sync.RWMutex
	selected   *Scenario
	confidence float64
}

// NewForecastSettingsView builds the view.
func NewForecastSettingsView(gateway Gateway, logger *slog.Logger, telemetry Telemetry) *ForecastSettingsView {
	v := &ForecastSettingsView{
		gateway:    gateway,
		confidence: DefaultConfidence,
	}
	v.res = NewResource[ForecastSettings](string(ViewForecastSettings), logger, telemetry).
		OnLoaded(v.applySettings)
	return v
}

// Load fetches the settings. On success the confidence and the first
// scenario are selected.
func (v *ForecastSettingsView) Load(ctx context.Context) error {
	return v.res.Load(ctx, func(ctx context.Context) (ForecastSettings, error) {
		if v.gateway == nil {
			return ForecastSettings{}, ErrMissingGateway
		}
		return v.gateway.FetchForecastSettings(ctx)
	})
}

// Refresh is an alias of Load.
func (v *ForecastSettingsView) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

func (v *ForecastSettingsView) applySettings(_ context.Context, settings ForecastSettings) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confidence = settings.ConfidenceInterval
	v.selected = nil
	if len(settings.Scenarios) > 0 {
		first := settings.Scenarios[0]
		v.selected = &first
	}
}

// SelectScenario selects a scenario by name. Unknown names clear the
// selection; before settings load the call is a no-op.
func (v *ForecastSettingsView) SelectScenario(name string) bool {
	snap := v.res.Snapshot()
	if !snap.HasData {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = nil
	for _, scenario := range snap.Data.Scenarios {
		if scenario.Name == name {
			s := scenario
			v.selected = &s
			return true
		}
	}
	return false
}

// SelectedScenario returns the selected scenario, if any.
func (v *ForecastSettingsView) SelectedScenario() (Scenario, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.selected == nil {
		return Scenario{}, false
	}
	return *v.selected, true
}

// SetConfidence adjusts the displayed confidence, clamped to [0, 1].
func (v *ForecastSettingsView) SetConfidence(value float64) {
	switch {
	case value < 0:
		value = 0
	case value > 1:
		value = 1
	}
	v.mu.Lock()
	v.confidence = value
	v.mu.Unlock()
}

// Confidence returns the displayed confidence ratio.
func (v *ForecastSettingsView) Confidence() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.confidence
}

// ConfidenceLabel renders the confidence as a whole percentage.
func (v *ForecastSettingsView) ConfidenceLabel() string {
	return FormatPercent(v.Confidence())
}

// Snapshot returns the current data and state.
func (v *ForecastSettingsView) Snapshot() Snapshot[ForecastSettings] {
	return v.res.Snapshot()
}
