package history

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/service"
)

// SummaryResponse is the response body for the history summary.
type SummaryResponse struct {
	Rows      int    `json:"rows" doc:"Invoices in the history"`
	FirstDate string `json:"firstDate" format:"date" doc:"Earliest issue date"`
	LastDate  string `json:"lastDate" format:"date" doc:"Latest issue date"`
}

// SummaryOutput is the Huma output for the history summary.
type SummaryOutput struct {
	Body SummaryResponse
}

type historySummarizer interface {
	Summary(ctx context.Context) (*service.HistorySummary, error)
}

// SummaryHandler handles GET /v1/invoices.
type SummaryHandler struct {
	Dashboard historySummarizer
}

func NewSummaryHandler(svc historySummarizer) *SummaryHandler {
	return &SummaryHandler{Dashboard: svc}
}

// Register registers the history summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-history-summary",
		Method:      http.MethodGet,
		Path:        "/v1/invoices",
		Summary:     "History summary",
		Tags:        []string{"Invoices"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	summary, err := h.Dashboard.Summary(ctx)
	if err != nil {
		return nil, handlers.ToHumaError(err, "failed to load history")
	}

	return &SummaryOutput{Body: SummaryResponse{
		Rows:      summary.Rows,
		FirstDate: summary.First.Format(time.DateOnly),
		LastDate:  summary.Last.Format(time.DateOnly),
	}}, nil
}
