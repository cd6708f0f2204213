package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/carson-networks/forecast-server/internal/series"
)

// DefaultPeriod is a two-week season.
const DefaultPeriod = 14

// z-score of a two-sided 95% interval.
const z95 = 1.959964

var (
	ErrTooShort     = errors.New("forecast: training series shorter than one season")
	ErrInvalidSteps = errors.New("forecast: steps must be positive")
)

// SeasonalNaive repeats the last observed season. It is the fallback when
// the training series is too short for SARIMA or when configured explicitly.
type SeasonalNaive struct {
	Period int
}

var _ Forecaster = SeasonalNaive{}

type seasonalModel struct {
	season   []float64
	lastDate time.Time
	sigma    float64
	resid    []float64
}

// Fit keeps the last Period days of train and the spread of its
// season-over-season differences.
func (s SeasonalNaive) Fit(train series.Daily) (Model, error) {
	period := s.Period
	if period < 1 {
		period = DefaultPeriod
	}
	if len(train) < period {
		return nil, fmt.Errorf("%w: have %d days, need %d", ErrTooShort, len(train), period)
	}

	season := make([]float64, period)
	for i := range season {
		season[i] = train[len(train)-period+i].Value
	}

	var diffs []float64
	for i := period; i < len(train); i++ {
		diffs = append(diffs, train[i].Value-train[i-period].Value)
	}

	_, last := train.Dates()
	return &seasonalModel{season: season, lastDate: last, sigma: stddev(diffs), resid: diffs}, nil
}

// Residuals are the season-over-season differences.
func (m *seasonalModel) Residuals() []float64 {
	return append([]float64(nil), m.resid...)
}

func (m *seasonalModel) Forecast(steps int) ([]Prediction, error) {
	if steps < 1 {
		return nil, ErrInvalidSteps
	}
	period := len(m.season)
	preds := make([]Prediction, steps)
	for h := 1; h <= steps; h++ {
		mean := m.season[(h-1)%period]
		cycles := float64((h-1)/period + 1)
		half := z95 * m.sigma * math.Sqrt(cycles)
		preds[h-1] = Prediction{
			Date:  m.lastDate.AddDate(0, 0, h),
			Mean:  mean,
			Lower: math.Max(0, mean-half),
			Upper: mean + half,
		}
	}
	return preds, nil
}

// stddev is the sample standard deviation, zero below two values.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
