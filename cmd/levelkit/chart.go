package main

import (
	"context"
	"flag"
	"log/slog"
	"path/filepath"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"levelkit/charts"
)

type chartCmd struct {
	loader       *appLoader
	curve        bool
	comparison   bool
	requirements bool
	all          bool
	output       string
}

func newChartCmd(l *appLoader) *chartCmd {
	return &chartCmd{loader: l}
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render level curve charts as PNG" }
func (*chartCmd) Usage() string {
	return `chart [-curve] [-comparison] [-requirements] [-all] [-output dir]:
  Render charts from the canonical level table.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.curve, "curve", false, "render the experience/level curve")
	f.BoolVar(&c.comparison, "comparison", false, "render the new-vs-legacy comparison")
	f.BoolVar(&c.requirements, "requirements", false, "render per-level experience requirements")
	f.BoolVar(&c.all, "all", false, "render every chart")
	f.StringVar(&c.output, "output", "", "output directory (defaults to the configured one)")
}

func (c *chartCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.loader.load()
	if err != nil {
		return fail(err)
	}

	base := c.output
	if base == "" {
		base = a.cfg.Output.Dir
	}
	dir := filepath.Join(base, "charts")
	opts := a.chartOptions()

	type job struct {
		name   string
		render func(path string) error
	}
	var jobs []job
	if c.curve || c.all {
		jobs = append(jobs, job{"level_curve.png", func(p string) error { return charts.LevelCurve(a.table, p, opts) }})
	}
	if c.comparison || c.all {
		jobs = append(jobs, job{"level_comparison.png", func(p string) error { return charts.Comparison(a.table, p, opts) }})
	}
	if c.requirements || c.all {
		jobs = append(jobs, job{"exp_requirements.png", func(p string) error { return charts.ExpRequirements(a.table, p, opts) }})
	}
	if len(jobs) == 0 {
		slog.Error("no chart selected; use -curve, -comparison, -requirements or -all")
		return subcommands.ExitUsageError
	}

	g := new(errgroup.Group)
	for _, j := range jobs {
		path := filepath.Join(dir, j.name)
		render := j.render
		g.Go(func() error { return render(path) })
	}
	if err := g.Wait(); err != nil {
		return fail(err)
	}

	for _, j := range jobs {
		slog.Info("chart written", "path", filepath.Join(dir, j.name))
	}
	return subcommands.ExitSuccess
}
