package commands

import (
	"context"

	dashboard "github.com/goliatone/go-dispatch-dashboard/components/dashboard"
)

// Telemetry receives command events; it is the dashboard's sink type so one
// SlogTelemetry serves views and commands alike.
type Telemetry = dashboard.Telemetry

type discardTelemetry struct{}

func (discardTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return discardTelemetry{}
	}
	return t
}
