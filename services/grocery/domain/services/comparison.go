package services

import (
	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/services/grocery/domain/models"
)

var hundred = decimal.NewFromInt(100)

// StorePrice is the latest in-window price of an item at one store.
type StorePrice struct {
	Store     string
	Price     decimal.Decimal
	Available bool
}

// BestPrice is the lowest latest in-window price of an item across stores.
type BestPrice struct {
	Store string
	Price decimal.Decimal
}

// ItemSavings is the spread between the cheapest and the most expensive store
// for one item name.
type ItemSavings struct {
	Name    string
	Min     decimal.Decimal
	Max     decimal.Decimal
	Amount  decimal.Decimal
	Percent decimal.Decimal // Amount relative to Max
}

// ComparisonRow is one line of the comparison table.
type ComparisonRow struct {
	Name    string
	Prices  []StorePrice // one entry per known store, in Stores() order
	Best    *BestPrice
	Savings *ItemSavings
}

// Comparison aggregates prices of a collection snapshot over a date window.
// It never mutates the snapshot.
type Comparison struct {
	items  []models.GroceryItem
	window Window
	names  []string
	stores []string
}

// NewComparison indexes the distinct item names and stores of items, both in
// first-appearance order.
func NewComparison(items []models.GroceryItem, window Window) *Comparison {
	c := &Comparison{items: items, window: window}
	seenName := make(map[string]bool)
	seenStore := make(map[string]bool)
	for _, item := range items {
		if n := item.Name.String(); !seenName[n] {
			seenName[n] = true
			c.names = append(c.names, n)
		}
		if s := item.Store.String(); !seenStore[s] {
			seenStore[s] = true
			c.stores = append(c.stores, s)
		}
	}
	return c
}

func (c *Comparison) Window() Window      { return c.window }
func (c *Comparison) ItemNames() []string { return c.names }
func (c *Comparison) Stores() []string    { return c.stores }

// LatestPriceAt returns the most recent in-window price over all items
// matching name and store. On a date tie the later item, then the later
// point, wins.
func (c *Comparison) LatestPriceAt(name, store string) (decimal.Decimal, bool) {
	var (
		best    models.PricePoint
		matched bool
	)
	for _, item := range c.items {
		if item.Name.String() != name || item.Store.String() != store {
			continue
		}
		for _, p := range item.Prices {
			if !c.window.Contains(p.Date) {
				continue
			}
			if !matched || !p.Date.Before(best.Date) {
				best, matched = p, true
			}
		}
	}
	return best.Price, matched
}

// BestPrice returns the minimum LatestPriceAt across all known stores. The
// first store reaching the minimum wins.
func (c *Comparison) BestPrice(name string) (BestPrice, bool) {
	var (
		best  BestPrice
		found bool
	)
	for _, store := range c.stores {
		p, ok := c.LatestPriceAt(name, store)
		if !ok {
			continue
		}
		if !found || p.LessThan(best.Price) {
			best, found = BestPrice{Store: store, Price: p}, true
		}
	}
	return best, found
}

// StorePrices returns LatestPriceAt for every known store.
func (c *Comparison) StorePrices(name string) []StorePrice {
	out := make([]StorePrice, 0, len(c.stores))
	for _, store := range c.stores {
		p, ok := c.LatestPriceAt(name, store)
		out = append(out, StorePrice{Store: store, Price: p, Available: ok})
	}
	return out
}

// SavingsFor reports the max - min spread for name. It reports false when
// fewer than two stores have an in-window price.
func (c *Comparison) SavingsFor(name string) (ItemSavings, bool) {
	var prices []decimal.Decimal
	for _, sp := range c.StorePrices(name) {
		if sp.Available {
			prices = append(prices, sp.Price)
		}
	}
	if len(prices) < 2 {
		return ItemSavings{}, false
	}
	lo, hi := decimal.Min(prices[0], prices[1:]...), decimal.Max(prices[0], prices[1:]...)
	amount := hi.Sub(lo)
	var percent decimal.Decimal
	if !hi.IsZero() {
		percent = amount.Div(hi).Mul(hundred)
	}
	return ItemSavings{Name: name, Min: lo, Max: hi, Amount: amount, Percent: percent}, true
}

// Savings returns SavingsFor for every item name that qualifies.
func (c *Comparison) Savings() []ItemSavings {
	var out []ItemSavings
	for _, name := range c.names {
		if s, ok := c.SavingsFor(name); ok {
			out = append(out, s)
		}
	}
	return out
}

// TotalSavings sums the spread of every item name priced at two or more stores.
func (c *Comparison) TotalSavings() decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.Savings() {
		total = total.Add(s.Amount)
	}
	return total
}

// Table returns one row per item name.
func (c *Comparison) Table() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(c.names))
	for _, name := range c.names {
		row := ComparisonRow{Name: name, Prices: c.StorePrices(name)}
		if b, ok := c.BestPrice(name); ok {
			row.Best = &b
		}
		if s, ok := c.SavingsFor(name); ok {
			row.Savings = &s
		}
		rows = append(rows, row)
	}
	return rows
}
