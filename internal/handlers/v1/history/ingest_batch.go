package history

import (
	"bytes"
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/logging"
	"github.com/carson-networks/forecast-server/internal/operator/actions"
)

// Batch formats accepted by the ingest endpoint.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// IngestBatchInput is the Huma input for ingesting a batch.
type IngestBatchInput struct {
	Format  string `query:"format" enum:"xlsx,csv" default:"xlsx" doc:"Encoding of the request body"`
	RawBody []byte `contentType:"application/octet-stream"`
}

// IngestBatchResponse is the response body for ingesting a batch.
type IngestBatchResponse struct {
	RunID        string `json:"runID" doc:"Identifier of this ingest run"`
	Status       string `json:"status" enum:"loaded,created,merged,no_new_data" doc:"What the merge did to the history"`
	Rows         int    `json:"rows" doc:"Rows in the history after the merge"`
	Added        int    `json:"added" doc:"Batch rows kept after deduplication"`
	Dropped      int    `json:"dropped" doc:"Batch rows with an unreadable date or amount"`
	PersistError string `json:"persistError,omitempty" doc:"Set when the merged history could not be saved"`
}

// IngestBatchOutput is the Huma output for ingesting a batch.
type IngestBatchOutput struct {
	Body IngestBatchResponse
}

// batchProcessor runs actions against the history one at a time.
type batchProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// IngestBatchHandler handles POST /v1/invoices/batch.
type IngestBatchHandler struct {
	Operator batchProcessor
}

// NewIngestBatchHandler creates a new IngestBatchHandler.
func NewIngestBatchHandler(op batchProcessor) *IngestBatchHandler {
	return &IngestBatchHandler{Operator: op}
}

// Register registers the ingest batch endpoint with the Huma API.
func (h *IngestBatchHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "ingest-batch",
		Method:       http.MethodPost,
		Path:         "/v1/invoices/batch",
		Summary:      "Ingest invoice batch",
		Description:  "Merges an xlsx or csv batch into the stored history. An empty body reloads the stored history.",
		Tags:         []string{"Invoices"},
		MaxBodyBytes: 32 << 20,
	}, h.handle)
}

// parseIngestBatchInput decodes the body. A nil table means no batch.
func parseIngestBatchInput(input *IngestBatchInput) (*invoice.Table, error) {
	if len(input.RawBody) == 0 {
		return nil, nil
	}

	var (
		table *invoice.Table
		err   error
	)
	switch input.Format {
	case FormatCSV:
		table, err = invoice.ReadCSV(bytes.NewReader(input.RawBody))
	default:
		table, err = invoice.ReadXLSX(bytes.NewReader(input.RawBody))
	}
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "unreadable batch", err)
	}
	return table, nil
}

func (h *IngestBatchHandler) handle(ctx context.Context, input *IngestBatchInput) (*IngestBatchOutput, error) {
	table, err := parseIngestBatchInput(input)
	if err != nil {
		return nil, err
	}

	action := &actions.IngestBatch{Table: table}
	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, handlers.ToHumaError(err, "failed to ingest batch")
	}

	result := action.Result
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("runID", result.RunID.String())
		logData.AddData("mergeStatus", string(result.Status))
		logData.AddData("rows", len(result.Records))
	}

	resp := IngestBatchResponse{
		RunID:   result.RunID.String(),
		Status:  string(result.Status),
		Rows:    len(result.Records),
		Added:   result.Added,
		Dropped: result.Dropped,
	}
	if result.PersistErr != nil {
		resp.PersistError = result.PersistErr.Error()
	}
	return &IngestBatchOutput{Body: resp}, nil
}
