package main

import (
	"context"
	"flag"
	"log/slog"
	"path/filepath"

	"github.com/google/subcommands"

	"levelkit/sqlgen"
)

type sqlCmd struct {
	loader  *appLoader
	table   string
	dialect string
	output  string
}

func newSQLCmd(l *appLoader) *sqlCmd {
	return &sqlCmd{loader: l}
}

func (*sqlCmd) Name() string     { return "sql" }
func (*sqlCmd) Synopsis() string { return "generate SQL migration scripts" }
func (*sqlCmd) Usage() string {
	return `sql [-dialect mysql|postgresql|sqlite|all] [-table name] [-output dir]:
  Render migration scripts carrying the canonical level thresholds.
  Scripts are written as text only; nothing is executed.
`
}

func (c *sqlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dialect, "dialect", "all", "SQL dialect to generate, or all")
	f.StringVar(&c.table, "table", "", "user table name (defaults to the configured one)")
	f.StringVar(&c.output, "output", "", "output directory (defaults to the configured one)")
}

func (c *sqlCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.loader.load()
	if err != nil {
		return fail(err)
	}

	base := c.output
	if base == "" {
		base = a.cfg.Output.Dir
	}
	dir := filepath.Join(base, "sql")

	tableName := c.table
	if tableName == "" {
		tableName = a.cfg.SQL.TableName
	}

	if c.dialect == "all" {
		if err := sqlgen.WriteAll(dir, tableName, a.table); err != nil {
			return fail(err)
		}
		for _, d := range sqlgen.Dialects() {
			slog.Info("migration written", "dialect", d, "dir", dir)
		}
		return subcommands.ExitSuccess
	}

	path, err := sqlgen.WriteScript(dir, sqlgen.Dialect(c.dialect), tableName, a.table)
	if err != nil {
		return fail(err)
	}
	slog.Info("migration written", "dialect", c.dialect, "path", path)
	return subcommands.ExitSuccess
}
