package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/pkg/money"
)

type listCmd struct {
	env   *env
	query string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list tracked items with their latest price" }
func (*listCmd) Usage() string {
	return `list [-q <term>]

  Lists every item with its latest price and the change against the price
  before it. -q keeps items whose name or store contains the term.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Case-insensitive name or store filter")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	defer s.Close()

	fmt.Fprint(c.env.out, itemsMarkdown(s.svcs.Store.Search(c.query), s.svcs.Store.Currency()))
	return subcommands.ExitSuccess
}

type addCmd struct {
	env   *env
	name  string
	store string
	price string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an item with its current price" }
func (*addCmd) Usage() string {
	return `add -name <item> -store <store> -price <amount>

  Adds an item bought at a store, priced today.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Item name, at least 2 characters (required)")
	f.StringVar(&c.store, "store", "", "Store name, at least 2 characters (required)")
	f.StringVar(&c.price, "price", "", "Price, greater than zero (required)")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.store == "" || c.price == "" {
		return c.env.usage("-name, -store and -price are required")
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return c.env.usage("invalid price %q", c.price)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	defer s.Close()

	item, err := s.svcs.Store.Add(ctx, c.name, c.store, price)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.out, "Added %s at %s for %s (id %s)\n",
		item.Name, item.Store, money.Format(price, s.svcs.Store.Currency()), item.ID)
	return subcommands.ExitSuccess
}

type priceCmd struct {
	env   *env
	id    string
	price string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record a new price for an item" }
func (*priceCmd) Usage() string {
	return `price -id <item id> -price <amount>

  Appends a price dated today to the item's history. Earlier prices are kept.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Item id, as shown by list (required)")
	f.StringVar(&c.price, "price", "", "New price, greater than zero (required)")
}

func (c *priceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.price == "" {
		return c.env.usage("-id and -price are required")
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		return c.env.usage("invalid price %q", c.price)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	defer s.Close()

	item, err := s.svcs.Store.UpdatePrice(ctx, c.id, price)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.out, "Updated %s at %s to %s\n",
		item.Name, item.Store, money.Format(price, s.svcs.Store.Currency()))
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	env *env
	id  string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove an item and its price history" }
func (*deleteCmd) Usage() string {
	return `delete -id <item id>

  Removes the item. Undo is only offered by the API, which keeps the
  deleted item for the lifetime of the server process.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Item id, as shown by list (required)")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return c.env.usage("-id is required")
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.fail(err)
	}
	defer s.Close()

	item, err := s.svcs.Store.Delete(ctx, c.id)
	if err != nil {
		return c.env.fail(err)
	}
	fmt.Fprintf(c.env.out, "Deleted %s at %s (%d prices)\n", item.Name, item.Store, len(item.Prices))
	return subcommands.ExitSuccess
}
