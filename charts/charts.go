// Package charts renders PNG charts from the canonical level table. All
// series are taken from table rows; the curve is never re-evaluated here.
package charts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"levelkit/curve"
)

// Options controls rendered image geometry.
type Options struct {
	Width  int
	Height int
}

func (o Options) orDefault() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	return o
}

// legacyTiers is the retired six-tier ladder the new curve replaces, kept
// for the comparison chart.
var legacyTiers = []struct{ Exp, Level int }{
	{0, 1},
	{200, 2},
	{1000, 3},
	{5000, 4},
	{10000, 5},
	{50000, 6},
}

// LevelCurve renders the experience→level curve with annotations at the
// bottom, anchor and top rows.
func LevelCurve(tbl *curve.Table, path string, opts Options) error {
	opts = opts.orDefault()

	xs := make([]float64, 0, tbl.Levels())
	ys := make([]float64, 0, tbl.Levels())
	for _, row := range tbl.Rows {
		xs = append(xs, float64(row.CumulativeExp))
		ys = append(ys, float64(row.Level))
	}

	annotations := make([]chart.Value2, 0, 3)
	for _, lvl := range []int{tbl.Constraints.LevelMin, tbl.Constraints.AnchorLevel, tbl.Constraints.LevelMax} {
		if row, ok := tbl.RowAt(lvl); ok {
			annotations = append(annotations, chart.Value2{
				XValue: float64(row.CumulativeExp),
				YValue: float64(row.Level),
				Label:  fmt.Sprintf("(%d, %d)", row.CumulativeExp, row.Level),
			})
		}
	}

	graph := chart.Chart{
		Title:  "Experience to level curve",
		Width:  opts.Width,
		Height: opts.Height,
		XAxis:  chart.XAxis{Name: "Experience"},
		YAxis:  chart.YAxis{Name: "Level"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Level curve",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2e86ab"),
					StrokeWidth: 2,
				},
			},
			chart.AnnotationSeries{Annotations: annotations},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(&graph, path)
}

// Comparison renders the new curve against the retired six-tier ladder.
func Comparison(tbl *curve.Table, path string, opts Options) error {
	opts = opts.orDefault()

	newXs := make([]float64, 0, tbl.Levels())
	newYs := make([]float64, 0, tbl.Levels())
	for _, row := range tbl.Rows {
		newXs = append(newXs, float64(row.CumulativeExp))
		newYs = append(newYs, float64(row.Level))
	}

	// Step series for the legacy ladder: hold each tier until its boundary.
	oldXs := []float64{float64(legacyTiers[0].Exp)}
	oldYs := []float64{float64(legacyTiers[0].Level)}
	for i := 1; i < len(legacyTiers); i++ {
		oldXs = append(oldXs, float64(legacyTiers[i].Exp), float64(legacyTiers[i].Exp))
		oldYs = append(oldYs, float64(legacyTiers[i-1].Level), float64(legacyTiers[i].Level))
	}

	graph := chart.Chart{
		Title:  "Level system comparison: new vs legacy",
		Width:  opts.Width,
		Height: opts.Height,
		XAxis:  chart.XAxis{Name: "Experience"},
		YAxis:  chart.YAxis{Name: "Level"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "New level system",
				XValues: newXs,
				YValues: newYs,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2e86ab"),
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Legacy levels 1-6",
				XValues: oldXs,
				YValues: oldYs,
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("f18f01"),
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPNG(&graph, path)
}

// ExpRequirements renders the minimum experience required per level as
// bars, one bar per table row.
func ExpRequirements(tbl *curve.Table, path string, opts Options) error {
	opts = opts.orDefault()

	bars := make([]chart.Value, 0, tbl.Levels())
	for _, row := range tbl.Rows {
		label := ""
		// Label every fifth level to keep the axis readable.
		if row.Level%5 == 0 || row.Level == tbl.Constraints.LevelMin {
			label = fmt.Sprintf("%d", row.Level)
		}
		bars = append(bars, chart.Value{
			Value: float64(row.CumulativeExp),
			Label: label,
			Style: chart.Style{FillColor: drawing.ColorFromHex("3a86ff")},
		})
	}

	graph := chart.BarChart{
		Title:      "Minimum experience per level",
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   14,
		BarSpacing: 6,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

func renderPNG(graph *chart.Chart, path string) error {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic writes through a temp file and rename so a partially
// written image is never observable at the final path.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
