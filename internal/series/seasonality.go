package series

import "time"

// WeekdayTotal is the summed amount for one weekday.
type WeekdayTotal struct {
	Weekday time.Weekday
	Total   float64
}

// WeekdayOrder lists weekdays Monday first.
var WeekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayTotals sums days strictly after since by weekday, Monday first.
func WeekdayTotals(daily Daily, since time.Time) []WeekdayTotal {
	var sums [7]float64
	for _, p := range daily {
		if p.Date.After(since) {
			sums[p.Date.Weekday()] += p.Value
		}
	}

	totals := make([]WeekdayTotal, len(WeekdayOrder))
	for i, wd := range WeekdayOrder {
		totals[i] = WeekdayTotal{Weekday: wd, Total: sums[wd]}
	}
	return totals
}
