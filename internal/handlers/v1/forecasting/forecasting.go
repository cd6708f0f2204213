package forecasting

import (
	"time"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/series"
	"github.com/carson-networks/forecast-server/internal/service"
)

// Point is the API response model for one day or week of a series.
type Point struct {
	Date  string  `json:"date" format:"date" doc:"Day, or the Sunday ending the week"`
	Value float64 `json:"value" doc:"Sales amount"`
}

// Prediction is the API response model for one forecast day.
type Prediction struct {
	Date  string  `json:"date" format:"date"`
	Mean  float64 `json:"mean" doc:"Point forecast"`
	Lower float64 `json:"lower" doc:"Lower bound of the 95% interval"`
	Upper float64 `json:"upper" doc:"Upper bound of the 95% interval"`
}

// WeeklyRow is the API response model for one forecast week.
type WeeklyRow struct {
	WeekEnding string  `json:"weekEnding" format:"date" doc:"Sunday ending the week"`
	Mean       float64 `json:"mean"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
}

// TestMonthsParam overrides the configured test window.
type TestMonthsParam struct {
	TestMonths int `query:"testMonths" doc:"Months held out for testing, 0 uses the server default"`
}

func (p TestMonthsParam) viewOptions() service.ViewOptions {
	var opts service.ViewOptions
	if p.TestMonths != 0 {
		opts.TestMonths = omit.From(p.TestMonths)
	}
	return opts
}

func toPoints(points []series.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Date: p.Date.Format(time.DateOnly), Value: p.Value}
	}
	return out
}

func toPredictions(preds []forecast.Prediction) []Prediction {
	out := make([]Prediction, len(preds))
	for i, p := range preds {
		out[i] = Prediction{
			Date:  p.Date.Format(time.DateOnly),
			Mean:  p.Mean,
			Lower: p.Lower,
			Upper: p.Upper,
		}
	}
	return out
}

func toWeeklyRows(rows []forecast.WeeklyRow) []WeeklyRow {
	out := make([]WeeklyRow, len(rows))
	for i, r := range rows {
		out[i] = WeeklyRow{
			WeekEnding: r.WeekEnding.Format(time.DateOnly),
			Mean:       r.Mean,
			Lower:      r.Lower,
			Upper:      r.Upper,
		}
	}
	return out
}
