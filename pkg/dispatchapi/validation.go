package dispatchapi

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Shape names a backend payload schema.
type Shape string

const (
	ShapeDashboard        Shape = "dashboard"
	ShapeOrders           Shape = "orders"
	ShapeShipments        Shape = "shipments"
	ShapeWarehouses       Shape = "warehouses"
	ShapeForecastSettings Shape = "forecast_settings"
	ShapeForecastOverview Shape = "forecast_overview"
)

var shapes = []Shape{
	ShapeDashboard,
	ShapeOrders,
	ShapeShipments,
	ShapeWarehouses,
	ShapeForecastSettings,
	ShapeForecastOverview,
}

// ShapeValidator checks raw payloads against the embedded JSON schemas.
type ShapeValidator struct {
	compiled map[Shape]*jsonschema.Schema
}

// NewShapeValidator compiles every embedded schema up front.
func NewShapeValidator() (*ShapeValidator, error) {
	compiler := jsonschema.NewCompiler()
	for _, shape := range shapes {
		data, err := schemaFS.ReadFile(schemaPath(shape))
		if err != nil {
			return nil, fmt.Errorf("dispatchapi: read schema %s: %w", shape, err)
		}
		if err := compiler.AddResource(schemaPath(shape), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("dispatchapi: load schema %s: %w", shape, err)
		}
	}
	v := &ShapeValidator{compiled: make(map[Shape]*jsonschema.Schema, len(shapes))}
	for _, shape := range shapes {
		schema, err := compiler.Compile(schemaPath(shape))
		if err != nil {
			return nil, fmt.Errorf("dispatchapi: compile schema %s: %w", shape, err)
		}
		v.compiled[shape] = schema
	}
	return v, nil
}

// Validate checks body against the schema for shape.
func (v *ShapeValidator) Validate(shape Shape, body []byte) error {
	schema, ok := v.compiled[shape]
	if !ok {
		return fmt.Errorf("dispatchapi: unknown shape %q", shape)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("dispatchapi: parse %s payload: %w", shape, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("dispatchapi: %s payload failed validation: %w", shape, err)
	}
	return nil
}

func schemaPath(shape Shape) string {
	return "schemas/" + string(shape) + ".json"
}
