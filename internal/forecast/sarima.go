package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/sarima"
	"github.com/sartorproj/goarima/timeseries"

	"github.com/carson-networks/forecast-server/internal/series"
)

// DefaultConfidence is the coverage of the prediction interval.
const DefaultConfidence = 0.95

// Order is a SARIMA(P,D,Q)(SP,SD,SQ,M) specification.
type Order struct {
	P, D, Q    int
	SP, SD, SQ int
	M          int
}

// DefaultOrder is SARIMA(3,1,2)(1,0,0,14).
func DefaultOrder() Order {
	return Order{P: 3, D: 1, Q: 2, SP: 1, SD: 0, SQ: 0, M: DefaultPeriod}
}

// MinLength is the shortest training series the order can be fitted on.
func (o Order) MinLength() int {
	return o.P + o.D + o.Q + (o.SP+o.SD+o.SQ)*o.M + 20
}

func (o Order) String() string {
	return fmt.Sprintf("SARIMA(%d,%d,%d)(%d,%d,%d,%d)", o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.M)
}

// SARIMA fits a seasonal ARIMA model to the daily series.
type SARIMA struct {
	Order Order
	// Confidence defaults to DefaultConfidence.
	Confidence float64
}

var _ Forecaster = SARIMA{}

type sarimaModel struct {
	fit        *sarima.Model
	lastDate   time.Time
	confidence float64
}

// Fit estimates the model on train. A series shorter than the order's
// minimum is ErrTooShort.
func (s SARIMA) Fit(train series.Daily) (Model, error) {
	if need := s.Order.MinLength(); len(train) < need {
		return nil, fmt.Errorf("%w: have %d days, %s needs %d", ErrTooShort, len(train), s.Order, need)
	}

	values := make([]float64, len(train))
	for i, p := range train {
		values[i] = p.Value
	}

	o := s.Order
	fit := sarima.New(o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.M)
	if err := fit.Fit(timeseries.New(values)); err != nil {
		return nil, fmt.Errorf("forecast: fitting %s: %w", o, err)
	}

	confidence := s.Confidence
	if confidence <= 0 || confidence >= 1 {
		confidence = DefaultConfidence
	}
	_, last := train.Dates()
	return &sarimaModel{fit: fit, lastDate: last, confidence: confidence}, nil
}

// Forecast returns the point forecasts with their interval. Sales are never
// negative so the lower bound stops at zero.
func (m *sarimaModel) Forecast(steps int) ([]Prediction, error) {
	if steps < 1 {
		return nil, ErrInvalidSteps
	}
	means, lower, upper, err := m.fit.PredictWithInterval(steps, m.confidence)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	preds := make([]Prediction, steps)
	for h := range preds {
		preds[h] = Prediction{
			Date:  m.lastDate.AddDate(0, 0, h+1),
			Mean:  means[h],
			Lower: math.Max(0, lower[h]),
			Upper: upper[h],
		}
	}
	return preds, nil
}

func (m *sarimaModel) Residuals() []float64 {
	return m.fit.Residuals()
}
