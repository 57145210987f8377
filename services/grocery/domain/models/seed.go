package models

import "github.com/shopspring/decimal"

type seedRow struct {
	id, name, store string
	prices          [6]string
	lastDaysAgo     int
}

var seedRows = []seedRow{
	{"milk-walmart", "Milk", "Walmart", [6]string{"3.19", "3.29", "3.39", "3.49", "3.39", "3.29"}, 7},
	{"milk-target", "Milk", "Target", [6]string{"3.39", "3.49", "3.59", "3.69", "3.59", "3.49"}, 10},
	{"milk-kroger", "Milk", "Kroger", [6]string{"3.09", "3.19", "3.29", "3.39", "3.29", "3.19"}, 14},
	{"bread-walmart", "Bread", "Walmart", [6]string{"2.29", "2.39", "2.49", "2.59", "2.49", "2.39"}, 5},
	{"bread-target", "Bread", "Target", [6]string{"2.59", "2.69", "2.79", "2.89", "2.79", "2.69"}, 8},
	{"bread-kroger", "Bread", "Kroger", [6]string{"2.39", "2.49", "2.59", "2.69", "2.59", "2.49"}, 12},
	{"eggs-walmart", "Eggs", "Walmart", [6]string{"3.79", "3.99", "4.19", "4.29", "3.99", "3.79"}, 3},
	{"eggs-target", "Eggs", "Target", [6]string{"3.99", "4.19", "4.39", "4.59", "4.39", "4.19"}, 15},
	{"eggs-kroger", "Eggs", "Kroger", [6]string{"3.89", "4.09", "4.29", "4.49", "4.29", "4.09"}, 20},
}

// seedMonthsAgo are the offsets of the first five seed price points.
var seedMonthsAgo = [5]int{12, 9, 6, 3, 1}

// SeedItems returns the built-in demo collection anchored to today: Milk,
// Bread and Eggs at Walmart, Target and Kroger, each with six price points.
func SeedItems(today Date) []GroceryItem {
	items := make([]GroceryItem, 0, len(seedRows))
	for _, row := range seedRows {
		prices := make([]PricePoint, 0, len(row.prices))
		for i, p := range row.prices {
			on := today.Add(-row.lastDaysAgo)
			if i < len(seedMonthsAgo) {
				on = today.AddMonth(-seedMonthsAgo[i])
			}
			prices = append(prices, PricePoint{Date: on, Price: decimal.RequireFromString(p)})
		}
		items = append(items, GroceryItem{
			ID:     row.id,
			Name:   ItemName(row.name),
			Store:  StoreName(row.store),
			Prices: prices,
		})
	}
	return items
}
