package forecast

import (
	"math"
	"time"

	"github.com/carson-networks/forecast-server/internal/series"
)

// Evaluation compares weekly totals of the test window and its forecast.
type Evaluation struct {
	RMSE float64
	// MAPE is a percentage over weeks with a non-zero actual total.
	MAPE      float64
	MAPEWeeks int
	Actual    []series.Point
	Predicted []series.Point
}

// Evaluate resamples both series into weeks ending Sunday and computes RMSE
// and MAPE over the weeks present in both.
func Evaluate(test series.Daily, preds []Prediction) Evaluation {
	actual := series.Weekly(test)
	predicted := series.Weekly(Means(preds))

	byWeek := make(map[time.Time]float64, len(predicted))
	for _, p := range predicted {
		byWeek[p.Date] = p.Value
	}

	eval := Evaluation{Actual: actual, Predicted: predicted}
	var sq, ape float64
	n := 0
	for _, a := range actual {
		p, ok := byWeek[a.Date]
		if !ok {
			continue
		}
		n++
		sq += (a.Value - p) * (a.Value - p)
		if a.Value != 0 {
			ape += math.Abs((a.Value - p) / a.Value)
			eval.MAPEWeeks++
		}
	}
	if n > 0 {
		eval.RMSE = math.Sqrt(sq / float64(n))
	}
	if eval.MAPEWeeks > 0 {
		eval.MAPE = ape / float64(eval.MAPEWeeks) * 100
	}
	return eval
}
