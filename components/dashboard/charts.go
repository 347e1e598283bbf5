package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var errEmptySeries = errors.New("dashboard: chart series is empty")

// ChartRenderer renders the dashboard charts as go-echarts markup.
type ChartRenderer struct {
	cache      RenderCache
	assetsHost string
}

// ChartOption customizes a ChartRenderer.
type ChartOption func(*ChartRenderer)

// WithChartCache injects a render cache. Passing nil disables caching.
func WithChartCache(cache RenderCache) ChartOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the host the ECharts runtime loads from.
func WithChartAssetsHost(host string) ChartOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with a default TTL cache.
func NewChartRenderer(options ...ChartOption) *ChartRenderer {
	r := &ChartRenderer{cache: NewChartCache(DefaultChartCacheTTL)}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// PipelineChart draws order counts per status as a bar chart.
func (r *ChartRenderer) PipelineChart(entries []PipelineEntry, theme string) (string, error) {
	if len(entries) == 0 {
		return "", errEmptySeries
	}
	key := fmt.Sprintf("pipeline:%s:%s", theme, contentHash(entries))
	return r.cached(key, func() (string, error) {
		labels := make([]string, len(entries))
		data := make([]opts.BarData, len(entries))
		for i, entry := range entries {
			labels[i] = entry.Status
			data[i] = opts.BarData{Name: entry.Status, Value: entry.Count}
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions("Order pipeline", "", theme)...)
		bar.SetXAxis(labels)
		bar.AddSeries("Orders", data)
		return renderChart(bar)
	})
}

// ForecastChart draws demand against supply.
func (r *ChartRenderer) ForecastChart(overview ForecastOverview, theme string) (string, error) {
	if len(overview.Labels) == 0 {
		return "", errEmptySeries
	}
	key := fmt.Sprintf("forecast:%s:%s", theme, contentHash(overview))
	return r.cached(key, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions("Demand vs supply", "", theme)...)
		line.SetXAxis(overview.Labels)
		line.AddSeries("Demand", toLineData(overview.Labels, overview.Demand))
		line.AddSeries("Supply", toLineData(overview.Labels, overview.Supply))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// UtilizationGauge draws network utilization as a percentage gauge.
func (r *ChartRenderer) UtilizationGauge(totals RegionSummary, theme string) (string, error) {
	if totals.Sites == 0 {
		return "", errEmptySeries
	}
	key := fmt.Sprintf("utilization:%s:%s", theme, contentHash(totals))
	return r.cached(key, func() (string, error) {
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(r.globalOptions("Warehouse utilization", "", theme)...)
		gauge.AddSeries("Utilization", []opts.GaugeData{
			{Name: totals.Region, Value: math.Round(totals.Utilization*1000) / 10},
		})
		return renderChart(gauge)
	})
}

func (r *ChartRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalOptions(title, subtitle, theme string) []charts.GlobalOpts {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("dashboard: render chart: %w", err)
	}
	return buf.String(), nil
}

// toLineData pads missing points so both series align with the labels.
func toLineData(labels []string, values []float64) []opts.LineData {
	data := make([]opts.LineData, len(labels))
	for i, label := range labels {
		point := opts.LineData{Name: label}
		if i < len(values) {
			point.Value = values[i]
		}
		data[i] = point
	}
	return data
}
