package models

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// PricePoint is a price observed on a given day.
type PricePoint struct {
	Date  Date
	Price decimal.Decimal
}

type pricePointJSON struct {
	Date  Date        `json:"date"`
	Price json.Number `json:"price"`
}

// MarshalJSON writes the price as a JSON number.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(pricePointJSON{Date: p.Date, Price: json.Number(p.Price.String())})
}

// UnmarshalJSON accepts the price as a JSON number or a numeric string.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date  Date            `json:"date"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Date, p.Price = raw.Date, raw.Price
	return nil
}

// GroceryItem is one product tracked at one store, with its price history.
type GroceryItem struct {
	ID     string       `json:"id"`
	Name   ItemName     `json:"name"`
	Store  StoreName    `json:"store"`
	Prices []PricePoint `json:"prices"`
}

// NewGroceryItem constructs an item with a single initial price point.
func NewGroceryItem(id string, name ItemName, store StoreName, price decimal.Decimal, on Date) *GroceryItem {
	return &GroceryItem{
		ID:     id,
		Name:   name,
		Store:  store,
		Prices: []PricePoint{{Date: on, Price: price}},
	}
}

// History returns the price points ordered by date. Points sharing a date keep
// their insertion order.
func (i *GroceryItem) History() []PricePoint {
	h := slices.Clone(i.Prices)
	slices.SortStableFunc(h, func(a, b PricePoint) int { return a.Date.Compare(b.Date) })
	return h
}

// Latest returns the most recent price point. On a date tie the point
// appended last wins.
func (i *GroceryItem) Latest() (PricePoint, bool) {
	h := i.History()
	if len(h) == 0 {
		return PricePoint{}, false
	}
	return h[len(h)-1], true
}

// PriceChange is the difference between the latest and the previous price.
type PriceChange struct {
	Previous PricePoint
	Amount   decimal.Decimal
	Percent  decimal.Decimal // relative to Previous.Price
}

// Change reports how the latest price moved against the one before it.
// It reports false when fewer than two points exist.
func (i *GroceryItem) Change() (PriceChange, bool) {
	h := i.History()
	if len(h) < 2 {
		return PriceChange{}, false
	}
	latest, prev := h[len(h)-1], h[len(h)-2]
	amount := latest.Price.Sub(prev.Price)
	var percent decimal.Decimal
	if !prev.Price.IsZero() {
		percent = amount.Div(prev.Price).Mul(decimal.NewFromInt(100))
	}
	return PriceChange{Previous: prev, Amount: amount, Percent: percent}, true
}

// AppendPrice records a new price point.
func (i *GroceryItem) AppendPrice(price decimal.Decimal, on Date) {
	i.Prices = append(i.Prices, PricePoint{Date: on, Price: price})
}

// Clone returns a deep copy.
func (i *GroceryItem) Clone() GroceryItem {
	c := *i
	c.Prices = slices.Clone(i.Prices)
	return c
}
