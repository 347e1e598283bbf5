package dashboard

import (
	"math"

	"github.com/ettle/strcase"
	"github.com/shopspring/decimal"
)

// FormatPercent renders a ratio as a whole percentage. Halves round up on
// the float product, so 0.125 prints as 13% and 0.285 as 28%.
func FormatPercent(ratio float64) string {
	return FormatPercentPlaces(ratio, 0)
}

// FormatPercentPlaces renders a ratio as a percentage with the given number
// of decimal places.
func FormatPercentPlaces(ratio float64, places int32) string {
	scale := math.Pow(10, float64(places))
	rounded := math.Floor(ratio*100*scale+0.5) / scale
	return decimal.NewFromFloat(rounded).StringFixed(places) + "%"
}

// FormatAmount renders a monetary total with two decimals.
func FormatAmount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

// ChipColor maps a shipment status to the chip palette used by the views.
func ChipColor(status string) string {
	switch status {
	case "Delivered":
		return "primary"
	case "Out for Delivery":
		return "accent"
	case "Exception":
		return "warn"
	default:
		return ""
	}
}

// ColumnTitle turns a snake_case column key into a display header.
func ColumnTitle(column string) string {
	return strcase.ToCase(column, strcase.TitleCase, ' ')
}

// ColumnTitles maps ColumnTitle over columns.
func ColumnTitles(columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = ColumnTitle(column)
	}
	return out
}
