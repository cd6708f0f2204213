package actions

import (
	"context"

	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/service"
	"github.com/carson-networks/forecast-server/internal/storage"
)

// IngestBatch merges an uploaded table into the history. Result is set when
// Perform succeeds.
type IngestBatch struct {
	Table  *invoice.Table
	Result *service.IngestResult
}

func (a *IngestBatch) Perform(ctx context.Context, history storage.HistoryStore) error {
	result, err := service.Ingest(ctx, history, a.Table)
	if err != nil {
		return err
	}
	a.Result = result
	return nil
}
