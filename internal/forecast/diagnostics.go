package forecast

import (
	"github.com/sartorproj/goarima/stats"
	"github.com/sartorproj/goarima/timeseries"
)

// DiagnosticLags is the number of residual autocorrelation lags reported.
const DiagnosticLags = 30

// Diagnostics describe the autocorrelation left in a model's residuals.
// ACF and PACF are indexed by lag, starting at lag 0.
type Diagnostics struct {
	ACF       []float64
	PACF      []float64
	ConfBound float64
	// LjungBoxP is the p-value of the Ljung-Box test over all lags. Below
	// 0.05 the residuals are still autocorrelated.
	LjungBoxP float64
}

// ResidualDiagnostics computes ACF and PACF up to lags. It returns nil when
// the residuals are too short or have no variance.
func ResidualDiagnostics(residuals []float64, lags, fitdf int) *Diagnostics {
	if len(residuals) < 2 || lags < 1 {
		return nil
	}
	if lags >= len(residuals) {
		lags = len(residuals) - 1
	}

	ts := timeseries.New(residuals)
	acf := stats.ACFWithConfidence(ts, lags)
	pacf := stats.PACFWithConfidence(ts, lags)
	if acf == nil || pacf == nil {
		return nil
	}

	d := &Diagnostics{ACF: acf.Values, PACF: pacf.Values, ConfBound: acf.ConfBounds, LjungBoxP: 1}
	if lb := stats.LjungBox(ts, lags, fitdf); lb != nil {
		d.LjungBoxP = lb.PValue
	}
	return d
}

// Params is the number of ARMA coefficients the order estimates.
func (o Order) Params() int {
	return o.P + o.Q + o.SP + o.SQ
}
