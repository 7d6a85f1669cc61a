package pdf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mmynk/zeipilote/internal/report"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("chart has no data")

var lineColor = drawing.Color{R: 75, G: 192, B: 192, A: 255}

// RenderLineChart draws c as an 800x400 PNG.
func RenderLineChart(w io.Writer, c report.LineChart) error {
	if len(c.Values) == 0 {
		return ErrNoData
	}
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("chart has %d labels for %d values", len(c.Labels), len(c.Values))
	}

	format := c.Format
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	// The embedded chart font has no narrow no-break space.
	label := func(v float64) string { return strings.ReplaceAll(format(v), "\u202f", "\u00a0") }

	// A single month is drawn as a flat segment so the x range is not empty.
	xs := make([]float64, 0, len(c.Values)+1)
	ys := make([]float64, 0, len(c.Values)+1)
	ticks := make([]chart.Tick, 0, len(c.Labels))
	top := 0.0
	for i, v := range c.Values {
		xs = append(xs, float64(i))
		ys = append(ys, v)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: c.Labels[i]})
		top = max(top, v)
	}
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
		ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 30, Bottom: 20},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return label(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Series,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    5,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
