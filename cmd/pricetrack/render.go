package main

import (
	"fmt"
	"strings"

	"github.com/ghuser/pricetrack/pkg/money"
	"github.com/ghuser/pricetrack/services/grocery/domain/models"
	domainsvcs "github.com/ghuser/pricetrack/services/grocery/domain/services"
)

func itemsMarkdown(items []models.GroceryItem, currency string) string {
	var b strings.Builder
	if len(items) == 0 {
		fmt.Fprintln(&b, "No items found.")
		return b.String()
	}

	fmt.Fprintln(&b, "| ID | Item | Store | Latest | Date | Change |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|---:|")
	for _, item := range items {
		latest, date, change := "-", "-", "-"
		if p, ok := item.Latest(); ok {
			latest = money.Format(p.Price, currency)
			date = p.Date.String()
		}
		if ch, ok := item.Change(); ok {
			percent := money.Percent(ch.Percent, 1)
			if ch.Percent.IsPositive() {
				percent = "+" + percent
			}
			change = fmt.Sprintf("%s (%s)", money.SignedFormat(ch.Amount, currency), percent)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			item.ID, item.Name, item.Store, latest, date, change)
	}
	fmt.Fprintf(&b, "\n%d items\n", len(items))
	return b.String()
}

func comparisonMarkdown(c *domainsvcs.Comparison, preset domainsvcs.Preset, currency string) string {
	var b strings.Builder
	w := c.Window()
	fmt.Fprintf(&b, "# Price Comparison from %s to %s\n\n", w.Start, w.End)
	fmt.Fprintf(&b, "Window: %s\n\n", preset)

	rows := c.Table()
	if len(rows) == 0 {
		fmt.Fprintln(&b, "No prices in this window.")
		return b.String()
	}

	stores := c.Stores()
	fmt.Fprintf(&b, "| Item | %s | Best | Savings |\n", strings.Join(stores, " | "))
	fmt.Fprintf(&b, "|:---|%s:---|---:|\n", strings.Repeat("---:|", len(stores)))
	for _, row := range rows {
		cells := make([]string, 0, len(row.Prices))
		for _, sp := range row.Prices {
			if !sp.Available {
				cells = append(cells, "-")
				continue
			}
			cell := money.Format(sp.Price, currency)
			if row.Best != nil && row.Best.Store == sp.Store {
				cell = "**" + cell + "**"
			}
			cells = append(cells, cell)
		}
		best, savings := "-", "-"
		if row.Best != nil {
			best = row.Best.Store
		}
		if row.Savings != nil {
			savings = fmt.Sprintf("%s (%s)", money.Format(row.Savings.Amount, currency), money.Percent(row.Savings.Percent, 1))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", row.Name, strings.Join(cells, " | "), best, savings)
	}
	fmt.Fprintf(&b, "\nTotal savings: %s\n", money.Format(c.TotalSavings(), currency))
	return b.String()
}
