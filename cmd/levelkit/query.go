package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type queryCmd struct {
	loader *appLoader
	exp    int
	level  int
}

func newQueryCmd(l *appLoader) *queryCmd {
	return &queryCmd{loader: l}
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "convert between experience and level" }
func (*queryCmd) Usage() string {
	return `query -exp <n> | -level <n>:
  Resolve the level reached at a given experience, or the minimum
  experience required for a given level.
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.exp, "exp", -1, "experience to resolve to a level")
	f.IntVar(&c.level, "level", 0, "level to resolve to minimum experience")
}

func (c *queryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.loader.load()
	if err != nil {
		return fail(err)
	}

	switch {
	case c.exp >= 0:
		return c.queryByExp(a)
	case c.level != 0:
		return c.queryByLevel(a)
	default:
		fmt.Println("specify -exp or -level")
		return subcommands.ExitUsageError
	}
}

func (c *queryCmd) queryByExp(a *app) subcommands.ExitStatus {
	tbl := a.table
	level := tbl.LevelForExp(c.exp)
	row, _ := tbl.RowAt(level)

	fmt.Println("=== Query result ===")
	fmt.Printf("Experience: %d\n", c.exp)
	fmt.Printf("Level: %d\n", level)

	if next, ok := tbl.RowAt(level + 1); ok {
		fmt.Printf("Level range: %d - %d\n", row.CumulativeExp, next.CumulativeExp-1)
		fmt.Printf("Next level in: %d experience\n", next.CumulativeExp-c.exp)
	} else {
		fmt.Printf("Level range: %d - ∞\n", row.CumulativeExp)
		fmt.Println("Top level reached!")
	}
	return subcommands.ExitSuccess
}

func (c *queryCmd) queryByLevel(a *app) subcommands.ExitStatus {
	tbl := a.table
	row, ok := tbl.RowAt(c.level)
	if !ok {
		fmt.Printf("error: level must be between %d and %d\n", tbl.Constraints.LevelMin, tbl.Constraints.LevelMax)
		return subcommands.ExitUsageError
	}

	fmt.Println("=== Query result ===")
	fmt.Printf("Level: %d\n", c.level)
	fmt.Printf("Minimum experience: %d\n", row.CumulativeExp)
	if next, ok := tbl.RowAt(c.level + 1); ok {
		fmt.Printf("Level range: %d - %d\n", row.CumulativeExp, next.CumulativeExp-1)
	} else {
		fmt.Printf("Level range: %d - ∞\n", row.CumulativeExp)
	}
	return subcommands.ExitSuccess
}
