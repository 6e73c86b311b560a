package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"levelkit/charts"
	"levelkit/report"
	"levelkit/sqlgen"
)

// demoExpSamples are the experience values printed by the demo walkthrough.
var demoExpSamples = []int{0, 10, 50, 100, 500, 1000, 5000, 10000, 25000, 50000}

type demoCmd struct {
	loader *appLoader
	output string
}

func newDemoCmd(l *appLoader) *demoCmd {
	return &demoCmd{loader: l}
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "run the full pipeline and print a sample table" }
func (*demoCmd) Usage() string {
	return `demo [-output dir]:
  Print a sample experience/level table, render every chart and
  generate every migration script in one pass.
`
}

func (c *demoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "output", "", "output directory (defaults to the configured one)")
}

func (c *demoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.loader.load()
	if err != nil {
		return fail(err)
	}

	base := c.output
	if base == "" {
		base = a.cfg.Output.Dir
	}

	tbl := a.table
	fmt.Printf("Level curve: levels %d-%d, experience cap %d, gamma %.4f\n\n",
		tbl.Constraints.LevelMin, tbl.Constraints.LevelMax, tbl.ExpCap(), tbl.Gamma)
	fmt.Println("Experience   Level")
	fmt.Println("----------   -----")
	for _, exp := range demoExpSamples {
		fmt.Printf("%10d   %5d\n", exp, tbl.LevelForExp(exp))
	}
	fmt.Println()

	chartsDir := filepath.Join(base, "charts")
	sqlDir := filepath.Join(base, "sql")
	opts := a.chartOptions()

	g := new(errgroup.Group)
	g.Go(func() error { return charts.LevelCurve(tbl, filepath.Join(chartsDir, "level_curve.png"), opts) })
	g.Go(func() error { return charts.Comparison(tbl, filepath.Join(chartsDir, "level_comparison.png"), opts) })
	g.Go(func() error { return charts.ExpRequirements(tbl, filepath.Join(chartsDir, "exp_requirements.png"), opts) })
	g.Go(func() error { return sqlgen.WriteAll(sqlDir, a.cfg.SQL.TableName, tbl) })
	if err := g.Wait(); err != nil {
		return fail(err)
	}
	slog.Info("demo artifacts written", "charts_dir", chartsDir, "sql_dir", sqlDir)

	// Distribution outputs are part of the demo only when the default
	// statistics export is present.
	if _, err := os.Stat(defaultGroupStatsFile); err == nil {
		if status := c.runDistribution(a, base); status != subcommands.ExitSuccess {
			return status
		}
	}

	fmt.Printf("Demo complete; outputs under %s\n", base)
	return subcommands.ExitSuccess
}

func (c *demoCmd) runDistribution(a *app, base string) subcommands.ExitStatus {
	stats, err := report.LoadGroupStats(defaultGroupStatsFile)
	if err != nil {
		return fail(err)
	}
	dist, err := report.Analyze(stats, a.table)
	if err != nil {
		return fail(err)
	}

	reportsDir := filepath.Join(base, "reports")
	chartsDir := filepath.Join(base, "charts")
	opts := a.chartOptions()

	g := new(errgroup.Group)
	g.Go(func() error { return dist.WriteCSV(filepath.Join(reportsDir, "level_distribution.csv")) })
	g.Go(func() error { return dist.WriteReport(filepath.Join(reportsDir, "level_distribution.txt")) })
	g.Go(func() error {
		return charts.LevelDistribution(dist, filepath.Join(chartsDir, "level_distribution.png"), opts)
	})
	g.Go(func() error {
		return charts.CumulativeDistribution(dist, filepath.Join(chartsDir, "cumulative_distribution.png"), opts)
	})
	if err := g.Wait(); err != nil {
		return fail(err)
	}
	slog.Info("distribution outputs written", "reports_dir", reportsDir)
	return subcommands.ExitSuccess
}
