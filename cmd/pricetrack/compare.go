package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	domainsvcs "github.com/ghuser/pricetrack/services/grocery/domain/services"
)

type compareCmd struct {
	env    *env
	window string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare store prices and show the savings" }
func (*compareCmd) Usage() string {
	return `compare [-window all|week|month|3months]

  Shows the latest price of every item at every store within the window,
  the cheapest store per item, and how much choosing it saves.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "window", string(domainsvcs.PresetAll), "Window preset: all, week, month or 3months")
}

func (c *compareCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	preset, err := domainsvcs.ParsePreset(c.window)
	if err != nil {
		return c.env.fail(err)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	defer s.Close()

	fmt.Fprint(c.env.out, comparisonMarkdown(s.svcs.Store.Compare(preset), preset, s.svcs.Store.Currency()))
	return subcommands.ExitSuccess
}
