package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SelectScenarioInput picks a forecast scenario and optionally adjusts the
// displayed confidence.
type SelectScenarioInput struct {
	Scenario   string   `json:"scenario"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type forecastService interface {
	SelectScenario(name string) bool
	SetConfidence(value float64)
}

// SelectScenarioCommand updates the forecast settings selection.
type SelectScenarioCommand struct {
	service   forecastService
	telemetry Telemetry
}

// NewSelectScenarioCommand creates the command.
func NewSelectScenarioCommand(service forecastService, telemetry Telemetry) *SelectScenarioCommand {
	return &SelectScenarioCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectScenarioInput] = (*SelectScenarioCommand)(nil)

// Execute selects the scenario. Unknown names clear the selection.
func (c *SelectScenarioCommand) Execute(ctx context.Context, msg SelectScenarioInput) error {
	if c.service == nil {
		return errors.New("scenario command requires service")
	}
	matched := c.service.SelectScenario(msg.Scenario)
	if msg.Confidence != nil {
		c.service.SetConfidence(*msg.Confidence)
	}
	c.telemetry.Record(ctx, "dashboard.command.scenario", map[string]any{
		"scenario": msg.Scenario,
		"matched":  matched,
	})
	return nil
}
