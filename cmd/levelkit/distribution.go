package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"levelkit/charts"
	"levelkit/report"
)

const defaultGroupStatsFile = "datas/group_statistics.csv"

type distributionCmd struct {
	loader *appLoader
	file   string
	output string
}

func newDistributionCmd(l *appLoader) *distributionCmd {
	return &distributionCmd{loader: l}
}

func (*distributionCmd) Name() string { return "distribution" }
func (*distributionCmd) Synopsis() string {
	return "analyze grouped experience statistics into a level distribution"
}
func (*distributionCmd) Usage() string {
	return `distribution [-file stats.csv] [-output dir]:
  Resolve grouped experience counts to levels through the canonical
  table and write the distribution report, CSV and charts.
`
}

func (c *distributionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", defaultGroupStatsFile, "group statistics CSV (exp_group,count)")
	f.StringVar(&c.output, "output", "", "output directory (defaults to the configured one)")
}

func (c *distributionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.loader.load()
	if err != nil {
		return fail(err)
	}

	base := c.output
	if base == "" {
		base = a.cfg.Output.Dir
	}

	stats, err := report.LoadGroupStats(c.file)
	if err != nil {
		return fail(err)
	}
	dist, err := report.Analyze(stats, a.table)
	if err != nil {
		return fail(err)
	}

	slog.Info("distribution analyzed",
		"groups", len(stats),
		"total_users", dist.TotalUsers,
		"average_level", dist.AverageLevel)

	reportsDir := filepath.Join(base, "reports")
	chartsDir := filepath.Join(base, "charts")
	opts := a.chartOptions()

	csvPath := filepath.Join(reportsDir, "level_distribution.csv")
	reportPath := filepath.Join(reportsDir, "level_distribution.txt")
	levelChart := filepath.Join(chartsDir, "level_distribution.png")
	cumulativeChart := filepath.Join(chartsDir, "cumulative_distribution.png")

	g := new(errgroup.Group)
	g.Go(func() error { return dist.WriteCSV(csvPath) })
	g.Go(func() error { return dist.WriteReport(reportPath) })
	g.Go(func() error { return charts.LevelDistribution(dist, levelChart, opts) })
	g.Go(func() error { return charts.CumulativeDistribution(dist, cumulativeChart, opts) })
	if err := g.Wait(); err != nil {
		return fail(err)
	}

	for _, p := range []string{csvPath, reportPath, levelChart, cumulativeChart} {
		slog.Info("distribution output written", "path", p)
	}
	fmt.Printf("Analyzed %d users across %d levels (average level %.2f)\n",
		dist.TotalUsers, len(dist.Levels), dist.AverageLevel)
	return subcommands.ExitSuccess
}
