package handlers

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/pkg/money"
	"github.com/ghuser/pricetrack/services/grocery/domain/events"
	"github.com/ghuser/pricetrack/services/grocery/domain/models"
	domainsvcs "github.com/ghuser/pricetrack/services/grocery/domain/services"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found: milk-kroger"`
} // @name ErrorResponse

// MoneyView is an exact amount as a JSON number plus its display form,
// rounded to the currency's minor unit.
type MoneyView struct {
	Amount  json.Number `json:"amount"  swaggertype:"number" example:"3.19"`
	Display string      `json:"display" example:"$3.19"`
} // @name Money

// PricePointView is one dated price observation.
type PricePointView struct {
	Date  string    `json:"date"  example:"2025-06-01"`
	Price MoneyView `json:"price"`
} // @name PricePoint

// PriceChangeView compares the latest price with the one before it.
type PriceChangeView struct {
	Amount    MoneyView `json:"amount"`
	Percent   string    `json:"percent"   example:"+3.1%"`
	Direction string    `json:"direction" example:"up" enums:"up,down,flat"`
} // @name PriceChange

// ItemResponse is a grocery item with its derived views.
type ItemResponse struct {
	ID     string           `json:"id"     example:"3f0c1f8e-4c0b-4a8e-9f8a-2a9f2b1c6d7e"`
	Name   string           `json:"name"   example:"Milk"`
	Store  string           `json:"store"  example:"Kroger"`
	Latest *PricePointView  `json:"latest,omitempty"`
	Change *PriceChangeView `json:"change,omitempty"`
	Prices []PricePointView `json:"prices"`
} // @name Item

// UndoState names the items the undo endpoints would restore.
type UndoState struct {
	DeletedItemID string `json:"deleted_item_id,omitempty"`
	PriceItemID   string `json:"price_item_id,omitempty"`
} // @name UndoState

// ListItemsResponse is returned by GET /items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Count int            `json:"count" example:"9"`
	Undo  UndoState      `json:"undo"`
} // @name ListItemsResponse

// WindowView is the resolved comparison window.
type WindowView struct {
	Preset string `json:"preset" example:"all" enums:"all,week,month,3months"`
	Start  string `json:"start"  example:"2024-06-15"`
	End    string `json:"end"    example:"2025-06-12"`
} // @name Window

// StorePriceView is the latest in-window price at one store; Price is
// absent when the store has no data.
type StorePriceView struct {
	Store string     `json:"store" example:"Kroger"`
	Price *MoneyView `json:"price,omitempty"`
} // @name StorePrice

// BestPriceView is the cheapest store for an item.
type BestPriceView struct {
	Store string    `json:"store" example:"Kroger"`
	Price MoneyView `json:"price"`
} // @name BestPrice

// SavingsView is the spread between the cheapest and the dearest store.
type SavingsView struct {
	Name    string    `json:"name"    example:"Milk"`
	Min     MoneyView `json:"min"`
	Max     MoneyView `json:"max"`
	Amount  MoneyView `json:"amount"`
	Percent string    `json:"percent" example:"8.6%"`
} // @name Savings

// ComparisonRowView is one line of the comparison table.
type ComparisonRowView struct {
	Name    string           `json:"name" example:"Milk"`
	Prices  []StorePriceView `json:"prices"`
	Best    *BestPriceView   `json:"best,omitempty"`
	Savings *SavingsView     `json:"savings,omitempty"`
} // @name ComparisonRow

// ComparisonResponse is returned by GET /comparison.
type ComparisonResponse struct {
	Window       WindowView          `json:"window"`
	Stores       []string            `json:"stores"`
	Rows         []ComparisonRowView `json:"rows"`
	Savings      []SavingsView       `json:"savings"`
	TotalSavings MoneyView           `json:"total_savings"`
} // @name ComparisonResponse

// NotificationsResponse is returned by GET /notifications.
type NotificationsResponse struct {
	Notifications []events.Notification `json:"notifications"`
} // @name NotificationsResponse

func newMoneyView(amount decimal.Decimal, currency string) MoneyView {
	return MoneyView{
		Amount:  json.Number(amount.String()),
		Display: money.Format(amount, currency),
	}
}

func newPricePointView(p models.PricePoint, currency string) PricePointView {
	return PricePointView{Date: p.Date.String(), Price: newMoneyView(p.Price, currency)}
}

func newItemResponse(item models.GroceryItem, currency string) ItemResponse {
	history := item.History()
	resp := ItemResponse{
		ID:     item.ID,
		Name:   item.Name.String(),
		Store:  item.Store.String(),
		Prices: make([]PricePointView, 0, len(history)),
	}
	for _, p := range history {
		resp.Prices = append(resp.Prices, newPricePointView(p, currency))
	}
	if latest, ok := item.Latest(); ok {
		v := newPricePointView(latest, currency)
		resp.Latest = &v
	}
	if ch, ok := item.Change(); ok {
		direction := "flat"
		switch ch.Amount.Sign() {
		case 1:
			direction = "up"
		case -1:
			direction = "down"
		}
		percent := money.Percent(ch.Percent, 1)
		if ch.Percent.IsPositive() {
			percent = "+" + percent
		}
		resp.Change = &PriceChangeView{
			Amount:    newMoneyView(ch.Amount, currency),
			Percent:   percent,
			Direction: direction,
		}
	}
	return resp
}

func newSavingsView(s domainsvcs.ItemSavings, currency string) SavingsView {
	return SavingsView{
		Name:    s.Name,
		Min:     newMoneyView(s.Min, currency),
		Max:     newMoneyView(s.Max, currency),
		Amount:  newMoneyView(s.Amount, currency),
		Percent: money.Percent(s.Percent, 1),
	}
}

func newComparisonResponse(c *domainsvcs.Comparison, preset domainsvcs.Preset, currency string) ComparisonResponse {
	w := c.Window()
	resp := ComparisonResponse{
		Window:       WindowView{Preset: string(preset), Start: w.Start.String(), End: w.End.String()},
		Stores:       append([]string{}, c.Stores()...),
		Rows:         []ComparisonRowView{},
		Savings:      []SavingsView{},
		TotalSavings: newMoneyView(c.TotalSavings(), currency),
	}
	for _, row := range c.Table() {
		rv := ComparisonRowView{Name: row.Name, Prices: make([]StorePriceView, 0, len(row.Prices))}
		for _, sp := range row.Prices {
			v := StorePriceView{Store: sp.Store}
			if sp.Available {
				m := newMoneyView(sp.Price, currency)
				v.Price = &m
			}
			rv.Prices = append(rv.Prices, v)
		}
		if row.Best != nil {
			rv.Best = &BestPriceView{Store: row.Best.Store, Price: newMoneyView(row.Best.Price, currency)}
		}
		if row.Savings != nil {
			sv := newSavingsView(*row.Savings, currency)
			rv.Savings = &sv
		}
		resp.Rows = append(resp.Rows, rv)
	}
	for _, s := range c.Savings() {
		resp.Savings = append(resp.Savings, newSavingsView(s, currency))
	}
	return resp
}
