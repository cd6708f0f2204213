package forecasting

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/logging"
	"github.com/carson-networks/forecast-server/internal/service"
)

// GetForecastInput is the Huma input for the test window forecast.
type GetForecastInput struct {
	TestMonthsParam
}

// Metrics is the API response model for the weekly evaluation.
type Metrics struct {
	RMSE      float64 `json:"rmse" doc:"Root mean squared error of weekly totals"`
	MAPE      float64 `json:"mape" doc:"Mean absolute percentage error over weeks with sales"`
	MAPEWeeks int     `json:"mapeWeeks" doc:"Weeks that entered the MAPE"`
}

// Residuals is the API response model for the residual autocorrelation.
type Residuals struct {
	ACF       []float64 `json:"acf" doc:"Autocorrelation of the fit residuals from lag 0"`
	PACF      []float64 `json:"pacf" doc:"Partial autocorrelation of the fit residuals from lag 0"`
	ConfBound float64   `json:"confBound" doc:"95% significance bound for both functions"`
	LjungBoxP float64   `json:"ljungBoxP" doc:"Ljung-Box p-value over all lags"`
}

// GetForecastResponse is the response body for the test window forecast.
type GetForecastResponse struct {
	Cutoff          string       `json:"cutoff" format:"date"`
	Train           []Point      `json:"train"`
	Test            []Point      `json:"test"`
	Predictions     []Prediction `json:"predictions" doc:"Daily forecast over the test window"`
	WeeklyActual    []Point      `json:"weeklyActual"`
	WeeklyPredicted []Point      `json:"weeklyPredicted"`
	Metrics         Metrics      `json:"metrics"`
	Residuals       *Residuals   `json:"residuals,omitempty" doc:"Missing when the residuals carry no variance"`
}

// GetForecastOutput is the Huma output for the test window forecast.
type GetForecastOutput struct {
	Body GetForecastResponse
}

type testForecaster interface {
	Forecast(ctx context.Context, opts service.ViewOptions) (*service.ForecastView, error)
}

// GetForecastHandler handles GET /v1/forecast.
type GetForecastHandler struct {
	Dashboard testForecaster
}

func NewGetForecastHandler(svc testForecaster) *GetForecastHandler {
	return &GetForecastHandler{Dashboard: svc}
}

// Register registers the forecast endpoint with the Huma API.
func (h *GetForecastHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/forecast",
		Summary:     "Forecast the test window",
		Description: "Fits the training days, forecasts the test window and scores it by week.",
		Tags:        []string{"Forecast"},
	}, h.handle)
}

func (h *GetForecastHandler) handle(ctx context.Context, input *GetForecastInput) (*GetForecastOutput, error) {
	view, err := h.Dashboard.Forecast(ctx, input.viewOptions())
	if err != nil {
		return nil, handlers.ToHumaError(err, "failed to forecast")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("rmse", view.Evaluation.RMSE)
		logData.AddData("mape", view.Evaluation.MAPE)
	}

	split := view.Session.Split
	return &GetForecastOutput{Body: GetForecastResponse{
		Cutoff:          split.Cutoff.Format(time.DateOnly),
		Train:           toPoints(split.Train),
		Test:            toPoints(split.Test),
		Predictions:     toPredictions(view.Predictions),
		WeeklyActual:    toPoints(view.Evaluation.Actual),
		WeeklyPredicted: toPoints(view.Evaluation.Predicted),
		Metrics: Metrics{
			RMSE:      view.Evaluation.RMSE,
			MAPE:      view.Evaluation.MAPE,
			MAPEWeeks: view.Evaluation.MAPEWeeks,
		},
		Residuals: toResiduals(view.Diagnostics),
	}}, nil
}

func toResiduals(d *forecast.Diagnostics) *Residuals {
	if d == nil {
		return nil
	}
	return &Residuals{ACF: d.ACF, PACF: d.PACF, ConfBound: d.ConfBound, LjungBoxP: d.LjungBoxP}
}
