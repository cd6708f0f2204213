package series

import "time"

// WeekEnding returns the Sunday closing the week that contains t.
func WeekEnding(t time.Time) time.Time {
	offset := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}

// Weekly sums points into weeks ending on Sunday, each labelled by its
// Sunday. Weeks with no points between the first and last are emitted as zero.
func Weekly(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}

	first, last := WeekEnding(points[0].Date), WeekEnding(points[0].Date)
	sums := make(map[time.Time]float64)
	for _, p := range points {
		week := WeekEnding(p.Date)
		sums[week] += p.Value
		if week.Before(first) {
			first = week
		}
		if week.After(last) {
			last = week
		}
	}

	var weeks []Point
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, Point{Date: w, Value: sums[w]})
	}
	return weeks
}
