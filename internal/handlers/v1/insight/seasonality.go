package insight

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/series"
	"github.com/carson-networks/forecast-server/internal/service"
)

// WeekdayTotal is the API response model for one weekday.
type WeekdayTotal struct {
	Weekday string  `json:"weekday" enum:"Monday,Tuesday,Wednesday,Thursday,Friday,Saturday,Sunday"`
	Total   float64 `json:"total"`
}

// SeasonalityResponse is the response body for weekday seasonality.
type SeasonalityResponse struct {
	LastDate  string         `json:"lastDate" format:"date" doc:"Last day of the series"`
	LastMonth []WeekdayTotal `json:"lastMonth" doc:"Totals over the month before lastDate"`
	LastYear  []WeekdayTotal `json:"lastYear" doc:"Totals over the year before lastDate"`
}

// SeasonalityOutput is the Huma output for weekday seasonality.
type SeasonalityOutput struct {
	Body SeasonalityResponse
}

type seasonalityViewer interface {
	Seasonality(ctx context.Context) (*service.SeasonalityView, error)
}

// SeasonalityHandler handles GET /v1/seasonality.
type SeasonalityHandler struct {
	Dashboard seasonalityViewer
}

func NewSeasonalityHandler(svc seasonalityViewer) *SeasonalityHandler {
	return &SeasonalityHandler{Dashboard: svc}
}

// Register registers the seasonality endpoint with the Huma API.
func (h *SeasonalityHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-seasonality",
		Method:      http.MethodGet,
		Path:        "/v1/seasonality",
		Summary:     "Weekday seasonality",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func toWeekdayTotals(totals []series.WeekdayTotal) []WeekdayTotal {
	out := make([]WeekdayTotal, len(totals))
	for i, t := range totals {
		out[i] = WeekdayTotal{Weekday: t.Weekday.String(), Total: t.Total}
	}
	return out
}

func (h *SeasonalityHandler) handle(ctx context.Context, _ *struct{}) (*SeasonalityOutput, error) {
	view, err := h.Dashboard.Seasonality(ctx)
	if err != nil {
		return nil, handlers.ToHumaError(err, "failed to compute seasonality")
	}

	return &SeasonalityOutput{Body: SeasonalityResponse{
		LastDate:  view.LastDate.Format(time.DateOnly),
		LastMonth: toWeekdayTotals(view.LastMonth),
		LastYear:  toWeekdayTotals(view.LastYear),
	}}, nil
}
