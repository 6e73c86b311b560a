package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	loader := &appLoader{}
	flag.StringVar(&loader.configPath, "config", "", "optional config file (json or yaml)")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(newQueryCmd(loader), "")
	subcommands.Register(newChartCmd(loader), "")
	subcommands.Register(newDistributionCmd(loader), "")
	subcommands.Register(newMigrateCmd(loader), "")
	subcommands.Register(newSQLCmd(loader), "")
	subcommands.Register(newDemoCmd(loader), "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
