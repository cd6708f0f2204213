package forecasting

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/service"
)

// GetSeriesInput is the Huma input for the daily series.
type GetSeriesInput struct {
	TestMonthsParam
}

// GetSeriesResponse is the response body for the daily series.
type GetSeriesResponse struct {
	Cutoff string  `json:"cutoff" format:"date" doc:"Last training day"`
	Train  []Point `json:"train" doc:"Imputed daily totals up to the cutoff"`
	Test   []Point `json:"test" doc:"Imputed daily totals after the cutoff"`
}

// GetSeriesOutput is the Huma output for the daily series.
type GetSeriesOutput struct {
	Body GetSeriesResponse
}

type sessionBuilder interface {
	Session(ctx context.Context, opts service.ViewOptions) (*service.Session, error)
}

// GetSeriesHandler handles GET /v1/series.
type GetSeriesHandler struct {
	Dashboard sessionBuilder
}

func NewGetSeriesHandler(svc sessionBuilder) *GetSeriesHandler {
	return &GetSeriesHandler{Dashboard: svc}
}

// Register registers the daily series endpoint with the Huma API.
func (h *GetSeriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-series",
		Method:      http.MethodGet,
		Path:        "/v1/series",
		Summary:     "Daily series",
		Description: "Returns the imputed daily sales series split into train and test windows.",
		Tags:        []string{"Forecast"},
	}, h.handle)
}

func (h *GetSeriesHandler) handle(ctx context.Context, input *GetSeriesInput) (*GetSeriesOutput, error) {
	session, err := h.Dashboard.Session(ctx, input.viewOptions())
	if err != nil {
		return nil, handlers.ToHumaError(err, "failed to build series")
	}

	return &GetSeriesOutput{Body: GetSeriesResponse{
		Cutoff: session.Split.Cutoff.Format(time.DateOnly),
		Train:  toPoints(session.Split.Train),
		Test:   toPoints(session.Split.Test),
	}}, nil
}
