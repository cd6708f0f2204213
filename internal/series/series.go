// Package series turns invoice records into a dense daily sales series and
// partitions it for model evaluation.
package series

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/forecast-server/internal/invoice"
)

// Point is the aggregate amount of one calendar day.
type Point struct {
	Date  time.Time
	Value float64
}

// Daily is a gap-free run of days in ascending order.
type Daily []Point

// Options control imputation.
type Options struct {
	// Window is the number of preceding days averaged to fill a missing day.
	Window int
	// ZeroAsMissing treats days summing to zero as unknown and imputes them.
	// When false, zero days and days without records are kept as zero sales.
	ZeroAsMissing bool
}

// DefaultOptions returns a seven day window with zero treated as missing.
func DefaultOptions() Options {
	return Options{Window: 7, ZeroAsMissing: true}
}

// Build sums records per issue date, reindexes onto every day between the
// first and last date, and fills unknown days.
//
// An unknown day takes the mean of the resolved values among the Window days
// before it; imputed days count as resolved for later days. Unknown days
// before the first resolved value take that value. If no day resolves at
// all the series is zero.
func Build(records []invoice.Record, opts Options) (Daily, error) {
	if len(records) == 0 {
		return nil, invoice.ErrEmptyResult
	}
	if opts.Window < 1 {
		opts.Window = DefaultOptions().Window
	}

	sums := make(map[time.Time]decimal.Decimal)
	first, last := invoice.Day(records[0].IssueDate), invoice.Day(records[0].IssueDate)
	for _, r := range records {
		day := invoice.Day(r.IssueDate)
		sums[day] = sums[day].Add(r.Amount)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	n := daysBetween(first, last) + 1
	daily := make(Daily, n)
	known := make([]bool, n)
	for i := range daily {
		day := first.AddDate(0, 0, i)
		daily[i].Date = day
		daily[i].Value = sums[day].InexactFloat64()
		known[i] = !opts.ZeroAsMissing || daily[i].Value != 0
	}

	impute(daily, known, opts.Window)
	return daily, nil
}

func impute(daily Daily, known []bool, window int) {
	firstKnown := -1
	for i := range daily {
		if !known[i] {
			var sum float64
			count := 0
			for j := max(0, i-window); j < i; j++ {
				if known[j] {
					sum += daily[j].Value
					count++
				}
			}
			if count > 0 {
				daily[i].Value = sum / float64(count)
				known[i] = true
			}
		}
		if known[i] && firstKnown < 0 {
			firstKnown = i
		}
	}

	if firstKnown < 0 {
		for i := range daily {
			daily[i].Value = 0
		}
		return
	}

	// Every day after firstKnown already has a known predecessor inside the
	// window, so only the leading days are left.
	for i := 0; i < firstKnown; i++ {
		daily[i].Value = daily[firstKnown].Value
		known[i] = true
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// Dates returns the first and last day of the series.
func (d Daily) Dates() (time.Time, time.Time) {
	if len(d) == 0 {
		return time.Time{}, time.Time{}
	}
	return d[0].Date, d[len(d)-1].Date
}
