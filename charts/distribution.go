package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"levelkit/report"
)

// LevelDistribution renders user counts per level as bars.
func LevelDistribution(d *report.Distribution, path string, opts Options) error {
	opts = opts.orDefault()

	bars := make([]chart.Value, 0, len(d.Levels))
	for _, lc := range d.Levels {
		bars = append(bars, chart.Value{
			Value: float64(lc.Users),
			Label: fmt.Sprintf("%d", lc.Level),
			Style: chart.Style{FillColor: drawing.ColorFromHex("2e86ab")},
		})
	}

	graph := chart.BarChart{
		Title:      "User level distribution",
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   18,
		BarSpacing: 8,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// CumulativeDistribution renders the cumulative user percentage across
// levels as a line.
func CumulativeDistribution(d *report.Distribution, path string, opts Options) error {
	opts = opts.orDefault()

	xs := make([]float64, 0, len(d.Levels))
	ys := make([]float64, 0, len(d.Levels))
	running := 0
	for _, lc := range d.Levels {
		running += lc.Users
		xs = append(xs, float64(lc.Level))
		ys = append(ys, float64(running)/float64(d.TotalUsers)*100)
	}
	// A line needs two points; a single-level distribution still renders.
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:  "Cumulative user distribution by level",
		Width:  opts.Width,
		Height: opts.Height,
		XAxis:  chart.XAxis{Name: "Level"},
		YAxis:  chart.YAxis{Name: "Cumulative users (%)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Cumulative %",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("c73e1d"),
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(&graph, path)
}
