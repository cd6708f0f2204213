package series

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidTestWindow is returned for a non-positive month count.
var ErrInvalidTestWindow = errors.New("series: test window must be at least one month")

// InsufficientDataError reports a split that leaves one side empty.
type InsufficientDataError struct {
	Train int
	Test  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("series: insufficient data for split (train=%d, test=%d)", e.Train, e.Test)
}

// Split partitions a Daily series at Cutoff. Train and Test share the
// backing array of the input.
type Split struct {
	Cutoff time.Time
	Train  Daily
	Test   Daily
}

// SplitByMonths puts every day up to and including last-date minus months
// into Train and the rest into Test.
func SplitByMonths(daily Daily, months int) (*Split, error) {
	if months < 1 {
		return nil, ErrInvalidTestWindow
	}
	if len(daily) == 0 {
		return nil, &InsufficientDataError{}
	}

	_, last := daily.Dates()
	cutoff := MonthsBefore(last, months)
	k := sort.Search(len(daily), func(i int) bool {
		return daily[i].Date.After(cutoff)
	})

	split := &Split{Cutoff: cutoff, Train: daily[:k:k], Test: daily[k:]}
	if len(split.Train) == 0 || len(split.Test) == 0 {
		return nil, &InsufficientDataError{Train: len(split.Train), Test: len(split.Test)}
	}
	return split, nil
}

// MonthsBefore steps back n calendar months, clamping to the last day of the
// target month (March 31 minus one month is the end of February).
func MonthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := target.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
