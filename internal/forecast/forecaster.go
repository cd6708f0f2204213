// Package forecast produces point forecasts with intervals from a daily
// series and scores them against held-out days.
package forecast

import (
	"time"

	"github.com/carson-networks/forecast-server/internal/series"
)

// Prediction is a forecast for one day.
type Prediction struct {
	Date  time.Time
	Mean  float64
	Lower float64
	Upper float64
}

// Forecaster fits a model to a training series.
type Forecaster interface {
	Fit(train series.Daily) (Model, error)
}

// Model forecasts the days following the training series.
type Model interface {
	Forecast(steps int) ([]Prediction, error)
	// Residuals are the in-sample one-step errors of the fit.
	Residuals() []float64
}

// Means returns the point forecasts as series points.
func Means(preds []Prediction) []series.Point {
	points := make([]series.Point, len(preds))
	for i, p := range preds {
		points[i] = series.Point{Date: p.Date, Value: p.Mean}
	}
	return points
}
