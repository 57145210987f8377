package services

import (
	"fmt"

	"github.com/ghuser/pricetrack/services/grocery/domain"
	"github.com/ghuser/pricetrack/services/grocery/domain/models"
)

// Window is an inclusive date range.
type Window struct {
	Start models.Date
	End   models.Date
}

// Contains reports whether d falls inside the window, bounds included.
func (w Window) Contains(d models.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Preset names a comparison window relative to the latest known price date.
type Preset string

const (
	PresetAll         Preset = "all"
	PresetWeek        Preset = "week"
	PresetMonth       Preset = "month"
	PresetThreeMonths Preset = "3months"
)

// Presets lists the supported presets in display order.
var Presets = []Preset{PresetAll, PresetWeek, PresetMonth, PresetThreeMonths}

// ParsePreset maps a query value onto a Preset. The empty string means PresetAll.
func ParsePreset(s string) (Preset, error) {
	if s == "" {
		return PresetAll, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of all, week, month, 3months)", domain.ErrInvalidWindow, s)
}

// ResolveWindow computes the window a preset denotes over items.
//
// The window ends on the latest price-point date found in items. PresetAll
// starts on the earliest price-point date; the others start 7 days, 1 month
// or 3 months before the end. Without any price point the end is today and
// PresetAll spans the year up to today.
func ResolveWindow(items []models.GroceryItem, preset Preset, today models.Date) Window {
	earliest, latest, ok := dateBounds(items)
	if !ok {
		earliest, latest = today.AddYear(-1), today
	}
	switch preset {
	case PresetWeek:
		return Window{Start: latest.Add(-7), End: latest}
	case PresetMonth:
		return Window{Start: latest.AddMonth(-1), End: latest}
	case PresetThreeMonths:
		return Window{Start: latest.AddMonth(-3), End: latest}
	default:
		return Window{Start: earliest, End: latest}
	}
}

func dateBounds(items []models.GroceryItem) (earliest, latest models.Date, ok bool) {
	for _, item := range items {
		for _, p := range item.Prices {
			if !ok {
				earliest, latest, ok = p.Date, p.Date, true
				continue
			}
			if p.Date.Before(earliest) {
				earliest = p.Date
			}
			if p.Date.After(latest) {
				latest = p.Date
			}
		}
	}
	return earliest, latest, ok
}
