package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/logging"
	"github.com/carson-networks/forecast-server/internal/storage"
)

// IngestResult is the history after one ingest run.
type IngestResult struct {
	RunID   uuid.UUID
	Records []invoice.Record
	Status  invoice.MergeStatus
	Added   int
	Dropped int
	// PersistErr is set when the merged history could not be written. Records
	// still holds the merged history.
	PersistErr error
}

// Ingest loads the history, merges table into it when given, and persists
// the result when it changed.
//
// ReadError and SchemaError abort the run. ErrEmptyResult is returned when
// neither the history nor the batch has a usable row.
func Ingest(ctx context.Context, history storage.HistoryStore, table *invoice.Table) (*IngestResult, error) {
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	log := logrus.WithField("runID", runID.String())

	var existing []invoice.Record
	err = logging.Timed(ctx, "loadHistoryMs", func() error {
		existing, err = history.Load(ctx)
		return err
	})
	if err != nil {
		log.WithError(err).Error("service.Ingest.load")
		return nil, err
	}

	result := &IngestResult{RunID: runID, Records: existing, Status: invoice.StatusLoaded}
	if table == nil {
		if len(existing) == 0 {
			return nil, invoice.ErrEmptyResult
		}
		return result, nil
	}

	batch, err := invoice.ParseTable(table)
	if err != nil {
		log.WithError(err).Warn("service.Ingest.parse")
		return nil, err
	}
	result.Dropped = batch.Dropped
	if len(existing) == 0 && len(batch.Records) == 0 {
		return nil, invoice.ErrEmptyResult
	}

	outcome := invoice.Merge(existing, batch.Records)
	result.Records = outcome.Records
	result.Status = outcome.Status
	result.Added = outcome.Added

	log = log.WithFields(logrus.Fields{
		"status":  outcome.Status,
		"rows":    len(outcome.Records),
		"added":   outcome.Added,
		"dropped": batch.Dropped,
	})
	if outcome.Status == invoice.StatusNoNewData {
		log.Info("service.Ingest.noNewData")
		return result, nil
	}

	result.PersistErr = logging.Timed(ctx, "saveHistoryMs", func() error {
		return history.Save(ctx, outcome.Records)
	})
	if result.PersistErr != nil {
		log.WithError(result.PersistErr).Error("service.Ingest.persist")
		return result, nil
	}

	log.Info("service.Ingest.merged")
	return result, nil
}
