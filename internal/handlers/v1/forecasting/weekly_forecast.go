package forecasting

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/service"
)

// WeeklyForecastInput is the Huma input for the weekly forecast and its export.
type WeeklyForecastInput struct {
	TestMonthsParam
	Date string `query:"date" required:"true" format:"date" doc:"Last day to forecast"`
}

// WeeklyForecastResponse is the response body for the weekly forecast.
type WeeklyForecastResponse struct {
	From string      `json:"from" format:"date" doc:"Earliest date that can be requested"`
	To   string      `json:"to" format:"date" doc:"Latest date that can be requested"`
	Rows []WeeklyRow `json:"rows"`
}

// WeeklyForecastOutput is the Huma output for the weekly forecast.
type WeeklyForecastOutput struct {
	Body WeeklyForecastResponse
}

// ExportWeeklyForecastOutput is the Huma output for the xlsx download.
type ExportWeeklyForecastOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type weeklyForecaster interface {
	WeeklyForecast(ctx context.Context, date time.Time, opts service.ViewOptions) (*service.WeeklyForecastView, error)
}

// WeeklyForecastHandler handles GET /v1/forecast/weekly and its export.
type WeeklyForecastHandler struct {
	Dashboard weeklyForecaster
}

func NewWeeklyForecastHandler(svc weeklyForecaster) *WeeklyForecastHandler {
	return &WeeklyForecastHandler{Dashboard: svc}
}

// Register registers the weekly forecast endpoints with the Huma API.
func (h *WeeklyForecastHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-weekly-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/forecast/weekly",
		Summary:     "Weekly forecast",
		Description: "Forecasts from the day after the training window through date, summed by week ending Sunday.",
		Tags:        []string{"Forecast"},
	}, h.handle)

	huma.Register(api, huma.Operation{
		OperationID: "export-weekly-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/forecast/weekly/export",
		Summary:     "Export weekly forecast",
		Description: "Downloads the weekly forecast as an xlsx workbook.",
		Tags:        []string{"Forecast"},
	}, h.export)
}

func (h *WeeklyForecastHandler) weekly(ctx context.Context, input *WeeklyForecastInput) (*service.WeeklyForecastView, error) {
	date, err := time.Parse(time.DateOnly, input.Date)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	view, err := h.Dashboard.WeeklyForecast(ctx, date, input.viewOptions())
	if err != nil {
		return nil, handlers.ToHumaError(err, "failed to forecast")
	}
	return view, nil
}

func (h *WeeklyForecastHandler) handle(ctx context.Context, input *WeeklyForecastInput) (*WeeklyForecastOutput, error) {
	view, err := h.weekly(ctx, input)
	if err != nil {
		return nil, err
	}

	return &WeeklyForecastOutput{Body: WeeklyForecastResponse{
		From: view.From.Format(time.DateOnly),
		To:   view.To.Format(time.DateOnly),
		Rows: toWeeklyRows(view.Rows),
	}}, nil
}

func (h *WeeklyForecastHandler) export(ctx context.Context, input *WeeklyForecastInput) (*ExportWeeklyForecastOutput, error) {
	view, err := h.weekly(ctx, input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := forecast.WriteWeeklyXLSX(&buf, view.Rows); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to write workbook", err)
	}

	return &ExportWeeklyForecastOutput{
		ContentType:        forecast.WeeklyExportFormat,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", forecast.WeeklyExportName),
		Body:               buf.Bytes(),
	}, nil
}
