package dashboard

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"emrdash/pkg/contracts/domain"
)

// Default chart canvas size.
const (
	DefaultChartWidth  = 10 * vg.Inch
	DefaultChartHeight = 4 * vg.Inch
)

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// RenderChart draws series as a bar chart and returns the PNG bytes.
// Zero or negative sizes fall back to the defaults.
func RenderChart(series domain.ChartSeries, width, height vg.Length) ([]byte, error) {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}

	p := plot.New()
	p.Title.Text = series.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = series.XLabel
	p.Y.Label.Text = series.YLabel
	p.Y.Min = 0

	if len(series.Bars) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Max = 1
	} else {
		values := make(plotter.Values, len(series.Bars))
		labels := make([]string, len(series.Bars))
		maxValue := 0.0
		for i, b := range series.Bars {
			values[i] = b.Value
			labels[i] = b.Label
			maxValue = math.Max(maxValue, b.Value)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return nil, fmt.Errorf("failed to build bar chart %q: %w", series.ID, err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)

		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.YAlign = draw.YTop
		p.X.Tick.Label.XAlign = draw.XRight

		p.Y.Max = maxValue * 1.1
		if p.Y.Max == 0 {
			p.Y.Max = 1
		}
	}
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create chart canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart %q: %w", series.ID, err)
	}
	return buf.Bytes(), nil
}
