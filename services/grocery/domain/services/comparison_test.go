package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/services/grocery/domain/models"
)

var today = models.NewDate(2025, time.October, 14)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedComparison(t *testing.T, preset Preset) *Comparison {
	t.Helper()
	items := models.SeedItems(today)
	return NewComparison(items, ResolveWindow(items, preset, today))
}

func TestComparison_SeedAllTimeBestMilk(t *testing.T) {
	c := seedComparison(t, PresetAll)

	best, ok := c.BestPrice("Milk")
	if !ok {
		t.Fatal("expected a best price for Milk")
	}
	if best.Store != "Kroger" || !best.Price.Equal(dec("3.19")) {
		t.Fatalf("expected Kroger 3.19, got %s %s", best.Store, best.Price)
	}
}

func TestComparison_LatestPriceAt(t *testing.T) {
	c := seedComparison(t, PresetAll)
	tests := []struct {
		name, store string
		want        string
	}{
		{"Milk", "Walmart", "3.29"},
		{"Milk", "Target", "3.49"},
		{"Bread", "Kroger", "2.49"},
		{"Eggs", "Walmart", "3.79"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.store, func(t *testing.T) {
			got, ok := c.LatestPriceAt(tt.name, tt.store)
			if !ok || !got.Equal(dec(tt.want)) {
				t.Fatalf("got %s (ok=%v), want %s", got, ok, tt.want)
			}
		})
	}

	if _, ok := c.LatestPriceAt("Milk", "Costco"); ok {
		t.Fatal("expected no data for unknown store")
	}
	if _, ok := c.LatestPriceAt("Cheese", "Walmart"); ok {
		t.Fatal("expected no data for unknown item")
	}
}

func TestComparison_TotalSavingsByPreset(t *testing.T) {
	tests := []struct {
		preset Preset
		want   string
	}{
		{PresetAll, "1.00"},         // milk 0.30 + bread 0.30 + eggs 0.40
		{PresetThreeMonths, "1.00"}, // every last point is within 20 days
		{PresetWeek, "0.50"},        // milk 0.20 + bread 0.30, eggs only at Walmart
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			got := seedComparison(t, tt.preset).TotalSavings()
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComparison_WeekWindowBestMilk(t *testing.T) {
	c := seedComparison(t, PresetWeek)
	best, ok := c.BestPrice("Milk")
	if !ok || best.Store != "Walmart" || !best.Price.Equal(dec("3.29")) {
		t.Fatalf("expected Walmart 3.29 in the last week, got %+v (ok=%v)", best, ok)
	}
	if _, ok := c.LatestPriceAt("Milk", "Kroger"); ok {
		t.Fatal("Kroger milk is 14 days old and must fall outside the week window")
	}
}

func TestComparison_SavingsPercent(t *testing.T) {
	c := seedComparison(t, PresetAll)
	s, ok := c.SavingsFor("Eggs")
	if !ok {
		t.Fatal("expected savings for Eggs")
	}
	if !s.Min.Equal(dec("3.79")) || !s.Max.Equal(dec("4.19")) || !s.Amount.Equal(dec("0.40")) {
		t.Fatalf("unexpected savings %+v", s)
	}
	if got := s.Percent.Round(2); !got.Equal(dec("9.55")) {
		t.Fatalf("percent: got %s, want 9.55", got)
	}
}

func TestComparison_SingleStoreHasNoSavings(t *testing.T) {
	items := []models.GroceryItem{{
		ID: "a", Name: "Cheese", Store: "Aldi",
		Prices: []models.PricePoint{{Date: today, Price: dec("4.00")}},
	}}
	c := NewComparison(items, ResolveWindow(items, PresetAll, today))
	if _, ok := c.SavingsFor("Cheese"); ok {
		t.Fatal("expected no savings with a single store")
	}
	if !c.TotalSavings().IsZero() {
		t.Fatalf("expected zero total, got %s", c.TotalSavings())
	}
	best, ok := c.BestPrice("Cheese")
	if !ok || best.Store != "Aldi" {
		t.Fatalf("unexpected best %+v", best)
	}
}

func TestComparison_EmptyCollection(t *testing.T) {
	w := ResolveWindow(nil, PresetAll, today)
	if w.Start != today.AddYear(-1) || w.End != today {
		t.Fatalf("unexpected fallback window %+v", w)
	}
	c := NewComparison(nil, w)
	if _, ok := c.BestPrice("Milk"); ok {
		t.Fatal("expected no best price without data")
	}
	if !c.TotalSavings().IsZero() {
		t.Fatal("expected zero savings without data")
	}
	if len(c.Table()) != 0 {
		t.Fatal("expected empty table")
	}
}

func TestComparison_BestPriceTieFirstStoreWins(t *testing.T) {
	items := []models.GroceryItem{
		{ID: "a", Name: "Milk", Store: "Target", Prices: []models.PricePoint{{Date: today, Price: dec("3.00")}}},
		{ID: "b", Name: "Milk", Store: "Walmart", Prices: []models.PricePoint{{Date: today, Price: dec("3.00")}}},
	}
	c := NewComparison(items, ResolveWindow(items, PresetAll, today))
	best, _ := c.BestPrice("Milk")
	if best.Store != "Target" {
		t.Fatalf("expected first store Target, got %s", best.Store)
	}
}

func TestComparison_DuplicateNameStoreUsesMostRecent(t *testing.T) {
	items := []models.GroceryItem{
		{ID: "a", Name: "Milk", Store: "Target", Prices: []models.PricePoint{{Date: today.Add(-2), Price: dec("3.00")}}},
		{ID: "b", Name: "Milk", Store: "Target", Prices: []models.PricePoint{{Date: today, Price: dec("3.40")}}},
		{ID: "c", Name: "Milk", Store: "Target", Prices: []models.PricePoint{{Date: today.Add(-1), Price: dec("2.90")}}},
	}
	c := NewComparison(items, ResolveWindow(items, PresetAll, today))
	got, _ := c.LatestPriceAt("Milk", "Target")
	if !got.Equal(dec("3.40")) {
		t.Fatalf("expected 3.40, got %s", got)
	}
}

func TestComparison_Table(t *testing.T) {
	c := seedComparison(t, PresetWeek)
	if got := c.Stores(); len(got) != 3 || got[0] != "Walmart" || got[1] != "Target" || got[2] != "Kroger" {
		t.Fatalf("unexpected stores %v", got)
	}
	rows := c.Table()
	if len(rows) != 3 || rows[0].Name != "Milk" || rows[2].Name != "Eggs" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	eggs := rows[2]
	if eggs.Savings != nil {
		t.Fatal("eggs have a single store in the week window")
	}
	if eggs.Best == nil || eggs.Best.Store != "Walmart" {
		t.Fatalf("unexpected eggs best %+v", eggs.Best)
	}
	if eggs.Prices[1].Available || eggs.Prices[2].Available {
		t.Fatalf("Target and Kroger eggs must be unavailable: %+v", eggs.Prices)
	}
}
