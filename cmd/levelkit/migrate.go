package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/subcommands"

	"levelkit/report"
)

type migrateCmd struct {
	loader *appLoader
	file   string
	output string
}

func newMigrateCmd(l *appLoader) *migrateCmd {
	return &migrateCmd{loader: l}
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "map a user experience export to new levels" }
func (*migrateCmd) Usage() string {
	return `migrate -file users.csv [-output dir]:
  Read a uid,exp export and write uid,exp,old_level,new_level rows,
  resolving new levels through the canonical table.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "user export CSV (uid,exp)")
	f.StringVar(&c.output, "output", "", "output directory (defaults to the configured one)")
}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Println("specify -file")
		return subcommands.ExitUsageError
	}

	a, err := c.loader.load()
	if err != nil {
		return fail(err)
	}

	base := c.output
	if base == "" {
		base = a.cfg.Output.Dir
	}

	users, err := report.LoadUserExp(c.file)
	if err != nil {
		return fail(err)
	}

	path := filepath.Join(base, "reports", "user_migration.csv")
	if err := report.WriteUserMigrationCSV(path, users, a.table); err != nil {
		return fail(err)
	}

	slog.Info("user migration written", "path", path, "users", len(users))
	fmt.Printf("Mapped %d users; migration CSV at %s\n", len(users), path)
	return subcommands.ExitSuccess
}
