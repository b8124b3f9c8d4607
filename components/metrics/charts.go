package metrics

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-waconsole/components/console"
)

const defaultChartHeight = "360px"

// Default reuse windows. Series charts summarize history and tolerate
// minutes of staleness; the quota gauge tracks live consumption.
const (
	defaultSeriesTTL = 5 * time.Minute
	defaultGaugeTTL  = 30 * time.Second
)

var sharedChartCache = NewChartCache()

// Series is a set of values plotted for one legend entry.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is an individual, optionally labeled value.
type Point struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
}

// ChartRenderer renders server-side go-echarts markup for the console
// dashboards.
type ChartRenderer struct {
	theme      string
	cache      RenderCache
	assetsHost string
	seriesTTL  time.Duration
	gaugeTTL   time.Duration
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so the ECharts JS loads from a
// CDN or self-hosted bucket.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartTTLs overrides how long series and gauge renders are reused.
func WithChartTTLs(series, gauge time.Duration) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.seriesTTL = series
		r.gaugeTTL = gauge
	}
}

// NewChartRenderer builds a renderer over the shared cache with per-kind
// reuse windows.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		theme:     types.ThemeWesteros,
		cache:     sharedChartCache,
		seriesTTL: defaultSeriesTTL,
		gaugeTTL:  defaultGaugeTTL,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// MessageVolume renders the sent/delivered line chart for the period.
func (r *ChartRenderer) MessageVolume(title string, days []string, series []Series) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("metrics: message volume requires at least one series")
	}
	key := fmt.Sprintf("volume:%s:%s", title, seriesHash(series))
	return r.cached(key, r.seriesTTL, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(title, "")...)
		line.SetXAxis(days)
		for _, s := range series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// DeliveryOutcomes renders the delivered/read/failed pie chart.
func (r *ChartRenderer) DeliveryOutcomes(title string, points []Point) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("metrics: delivery outcomes require at least one point")
	}
	key := fmt.Sprintf("outcomes:%s:%s", title, seriesHash(points))
	return r.cached(key, r.seriesTTL, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(title, "")...)
		pie.AddSeries(title, toPieData(points))
		return renderChart(pie)
	})
}

// InstanceThroughput renders a per-instance bar chart of sent messages.
func (r *ChartRenderer) InstanceThroughput(title string, instances []string, series []Series) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("metrics: instance throughput requires at least one series")
	}
	key := fmt.Sprintf("throughput:%s:%s", title, seriesHash(series))
	return r.cached(key, r.seriesTTL, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(title, "")...)
		bar.SetXAxis(instances)
		for _, s := range series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	})
}

// QuotaGauge renders the tenant's credit consumption as a gauge.
func (r *ChartRenderer) QuotaGauge(title string, quota console.Quota) (string, error) {
	percent := 0.0
	if quota.Limit > 0 {
		percent = float64(quota.Used) / float64(quota.Limit) * 100
	}
	key := fmt.Sprintf("quota:%s:%d:%d", title, quota.Used, quota.Limit)
	return r.cached(key, r.gaugeTTL, func() (string, error) {
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(r.globalChartOptions(title, "")...)
		gauge.AddSeries(title, []opts.GaugeData{
			{Name: "used", Value: percent},
		})
		return renderChart(gauge)
	})
}

func (r *ChartRenderer) cached(key string, ttl time.Duration, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, ttl, render)
}

func (r *ChartRenderer) globalChartOptions(title, subtitle string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
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
		return "", err
	}
	return buf.String(), nil
}

func toLineData(points []Point) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toBarData(points []Point) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []Point) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
	}
	return data
}
