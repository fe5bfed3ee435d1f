package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// EChart is a go-echarts chart that can also export its option JSON.
type EChart interface {
	components.Charter
	JSON() map[string]interface{}
}

// EChartOptions is the ECharts option object of one figure.
type EChartOptions struct {
	ID      string                 `json:"id"`
	Empty   bool                   `json:"empty"`
	Options map[string]interface{} `json:"options"`
}

// ToEChart converts a figure into a go-echarts chart. Tables have no chart
// representation and return nil.
func ToEChart(fig Figure) (EChart, error) {
	if fig.Kind == KindTable {
		return nil, nil
	}
	if fig.Empty {
		return emptyEChart(fig), nil
	}
	switch fig.Kind {
	case KindBar:
		return barEChart(fig), nil
	case KindLine:
		return lineEChart(fig), nil
	case KindScatter:
		return scatterEChart(fig), nil
	case KindHeatmap:
		return heatmapEChart(fig), nil
	case KindPie:
		return pieEChart(fig), nil
	}
	return nil, fmt.Errorf("unsupported figure kind %q", fig.Kind)
}

// EChartsOptions validates and exports the option JSON of every chart figure.
func EChartsOptions(figs []Figure) ([]EChartOptions, error) {
	out := make([]EChartOptions, 0, len(figs))
	for _, fig := range figs {
		c, err := ToEChart(fig)
		if err != nil {
			return nil, fmt.Errorf("figure %s: %w", fig.ID, err)
		}
		if c == nil {
			continue
		}
		c.Validate()
		out = append(out, EChartOptions{ID: fig.ID, Empty: fig.Empty, Options: c.JSON()})
	}
	return out, nil
}

// RenderPage writes a standalone HTML page holding every chart figure.
func RenderPage(w io.Writer, title string, figs []Figure) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, fig := range figs {
		c, err := ToEChart(fig)
		if err != nil {
			return fmt.Errorf("figure %s: %w", fig.ID, err)
		}
		if c != nil {
			page.AddCharts(c)
		}
	}
	return page.Render(w)
}

func globals(fig Figure) []charts.GlobalOpts {
	t := fig.Tokens
	g := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID:         fig.ID,
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         fig.Title,
			Subtitle:      fig.EmptyMessage,
			TitleStyle:    &opts.TextStyle{Color: t.Text},
			SubtitleStyle: &opts.TextStyle{Color: t.Danger},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(!fig.Empty),
			Trigger: tooltipTrigger(fig.Kind),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(len(fig.Series) > 1),
			TextStyle: &opts.TextStyle{Color: t.Muted},
		}),
	}
	if fig.XAxis != nil {
		g = append(g, charts.WithXAxisOpts(xAxis(*fig.XAxis, t)))
	}
	if fig.YAxis != nil {
		g = append(g, charts.WithYAxisOpts(yAxis(*fig.YAxis, t)))
	}
	return g
}

func tooltipTrigger(k Kind) string {
	switch k {
	case KindLine:
		return "axis"
	default:
		return "item"
	}
}

func xAxis(a Axis, t Tokens) opts.XAxis {
	x := opts.XAxis{
		Name:      a.Name,
		Type:      a.Type,
		AxisLabel: &opts.AxisLabel{Color: t.Muted},
	}
	if a.Min != nil {
		x.Min = *a.Min
	}
	if a.Max != nil {
		x.Max = *a.Max
	}
	return x
}

func yAxis(a Axis, t Tokens) opts.YAxis {
	y := opts.YAxis{
		Name:      a.Name,
		Type:      a.Type,
		AxisLabel: &opts.AxisLabel{Color: t.Muted},
		SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: t.Grid}},
	}
	if a.Type == AxisCategory {
		y.Data = a.Labels
	}
	if a.Min != nil {
		y.Min = *a.Min
	}
	if a.Max != nil {
		y.Max = *a.Max
	}
	return y
}

func emptyEChart(fig Figure) EChart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globals(Figure{ID: fig.ID, Kind: fig.Kind, Title: fig.Title, Empty: true, EmptyMessage: fig.EmptyMessage, Tokens: fig.Tokens})...)
	return bar
}

func categoryLabels(fig Figure) []string {
	if fig.Horizontal && fig.YAxis != nil {
		return fig.YAxis.Labels
	}
	if fig.XAxis != nil {
		return fig.XAxis.Labels
	}
	return nil
}

func barData(s Series) []opts.BarData {
	out := make([]opts.BarData, len(s.Values))
	for i, v := range s.Values {
		d := opts.BarData{Name: v.Name}
		if v.V != nil {
			d.Value = *v.V
		}
		color := v.Color
		if color == "" {
			color = s.Color
		}
		if color != "" {
			d.ItemStyle = &opts.ItemStyle{Color: color}
		}
		out[i] = d
	}
	return out
}

func lineData(s Series) []opts.LineData {
	out := make([]opts.LineData, len(s.Values))
	for i, v := range s.Values {
		if v.V == nil {
			out[i] = opts.LineData{Value: nil}
			continue
		}
		out[i] = opts.LineData{Value: *v.V, YAxisIndex: s.Axis}
	}
	return out
}

func lineSeriesOpts(s Series) []charts.SeriesOpts {
	return []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), YAxisIndex: s.Axis}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Width: float32(s.Width)}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
	}
}

func barEChart(fig Figure) EChart {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globals(fig)...)
	if fig.Y2Axis != nil {
		bar.ExtendYAxis(yAxis(*fig.Y2Axis, fig.Tokens))
	}
	bar.SetXAxis(categoryLabels(fig))
	var overlay *charts.Line
	for _, s := range fig.Series {
		if s.Kind == KindLine {
			if overlay == nil {
				overlay = charts.NewLine()
				overlay.SetXAxis(categoryLabels(fig))
			}
			overlay.AddSeries(s.Name, lineData(s), lineSeriesOpts(s)...)
			continue
		}
		bar.AddSeries(s.Name, barData(s))
	}
	if overlay != nil {
		bar.Overlap(overlay)
	}
	if fig.Horizontal {
		bar.XYReversal()
	}
	return bar
}

func lineEChart(fig Figure) EChart {
	line := charts.NewLine()
	line.SetGlobalOptions(globals(fig)...)
	line.SetXAxis(categoryLabels(fig))
	for _, s := range fig.Series {
		line.AddSeries(s.Name, lineData(s), lineSeriesOpts(s)...)
	}
	return line
}

func scatterEChart(fig Figure) EChart {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(globals(fig)...)
	for _, s := range fig.Series {
		data := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.ScatterData{
				Name:       p.Label,
				Value:      []float64{p.X, p.Y},
				SymbolSize: int(p.Size),
			}
		}
		scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: Dim(s.Color, 0.7)}))
	}
	return scatter
}

func heatmapEChart(fig Figure) EChart {
	hm := charts.NewHeatMap()
	g := globals(fig)
	if fig.Scale != nil {
		g = append(g, charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(false),
			Min:        float32(fig.Scale.Min),
			Max:        float32(fig.Scale.Max),
			InRange:    &opts.VisualMapInRange{Color: fig.Scale.Colors},
		}))
	}
	hm.SetGlobalOptions(g...)
	hm.SetXAxis(categoryLabels(fig))
	data := make([]opts.HeatMapData, len(fig.Cells))
	for i, c := range fig.Cells {
		data[i] = opts.HeatMapData{Value: [3]interface{}{c.X, c.Y, c.V}}
	}
	hm.AddSeries(fig.Title, data)
	return hm
}

func pieEChart(fig Figure) EChart {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globals(fig)...)
	for _, s := range fig.Series {
		data := make([]opts.PieData, 0, len(s.Values))
		for _, v := range s.Values {
			if v.V == nil {
				continue
			}
			data = append(data, opts.PieData{Name: v.Name, Value: *v.V, ItemStyle: &opts.ItemStyle{Color: v.Color}})
		}
		pc := opts.PieChart{Radius: []string{"42%", "72%"}}
		if s.Rose {
			pc.RoseType = "radius"
		}
		pie.AddSeries(s.Name, data, charts.WithPieChartOpts(pc))
	}
	return pie
}
