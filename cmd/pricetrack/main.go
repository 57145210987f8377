// Command pricetrack manages the grocery collection from the terminal. It
// works on the storage medium configured through the environment. The API
// reads that medium only at startup and overwrites it on every change, so the
// two must not write to the same medium at the same time.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/ghuser/pricetrack/pkg/config"
)

func main() {
	e := &env{out: os.Stdout, errOut: os.Stderr, loadConfig: config.Load}
	commander := newCommander(flag.CommandLine, path.Base(os.Args[0]), e)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func newCommander(top *flag.FlagSet, name string, e *env) *subcommands.Commander {
	commander := subcommands.NewCommander(top, name)
	commander.Output, commander.Error = e.out, e.errOut

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	for _, c := range []subcommands.Command{
		&listCmd{env: e},
		&addCmd{env: e},
		&priceCmd{env: e},
		&deleteCmd{env: e},
		&compareCmd{env: e},
	} {
		commander.Register(c, "items")
	}
	commander.Register(&migrateCmd{env: e}, "storage")
	return commander
}
