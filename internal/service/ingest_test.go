package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/storage/spreadsheet"
)

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("LoadOnly", func(t *testing.T) {
		store := &memoryStore{records: []invoice.Record{rec("2024-01-01", 10, "A", "Acme")}}

		result, err := Ingest(ctx, store, nil)

		assert.NoError(t, err)
		assert.Equal(t, invoice.StatusLoaded, result.Status)
		assert.Len(t, result.Records, 1)
		assert.Zero(t, store.saves)
		assert.NotEmpty(t, result.RunID.String())
	})

	t.Run("LoadOnlyEmptyHistory", func(t *testing.T) {
		_, err := Ingest(ctx, &memoryStore{}, nil)

		assert.ErrorIs(t, err, invoice.ErrEmptyResult)
	})

	t.Run("CreatesHistory", func(t *testing.T) {
		store := &memoryStore{}
		table := batchTable(
			[]string{"2024-01-02", "20", "B", "Beta"},
			[]string{"not a date", "5", "C", "Gamma"},
		)

		result, err := Ingest(ctx, store, table)

		assert.NoError(t, err)
		assert.Equal(t, invoice.StatusCreated, result.Status)
		assert.Equal(t, 1, result.Added)
		assert.Equal(t, 1, result.Dropped)
		assert.Equal(t, 1, store.saves)
		assert.Len(t, store.records, 1)
	})

	t.Run("MergesNewRows", func(t *testing.T) {
		store := &memoryStore{records: []invoice.Record{rec("2024-01-03", 10, "A", "Acme")}}
		table := batchTable([]string{"2024-01-01", "20", "B", "Beta"})

		result, err := Ingest(ctx, store, table)

		assert.NoError(t, err)
		assert.Equal(t, invoice.StatusMerged, result.Status)
		assert.Equal(t, 1, result.Added)
		assert.Equal(t, "B", store.records[0].AuxDocument)
		assert.Equal(t, "A", store.records[1].AuxDocument)
	})

	t.Run("NoNewDataSkipsSave", func(t *testing.T) {
		store := &memoryStore{records: []invoice.Record{rec("2024-01-03", 10, "A", "Acme")}}
		table := batchTable([]string{"2024-01-03", "10", "A", "Acme"})

		result, err := Ingest(ctx, store, table)

		assert.NoError(t, err)
		assert.Equal(t, invoice.StatusNoNewData, result.Status)
		assert.Zero(t, store.saves)
	})

	t.Run("EmptyBatchAndHistory", func(t *testing.T) {
		table := batchTable([]string{"bad", "bad", "A", "Acme"})

		_, err := Ingest(ctx, &memoryStore{}, table)

		assert.ErrorIs(t, err, invoice.ErrEmptyResult)
	})

	t.Run("SchemaError", func(t *testing.T) {
		table := &invoice.Table{Columns: []string{invoice.ColumnIssueDate}}

		_, err := Ingest(ctx, &memoryStore{}, table)

		var schemaErr *invoice.SchemaError
		assert.ErrorAs(t, err, &schemaErr)
	})

	t.Run("ReadError", func(t *testing.T) {
		loadErr := &invoice.ReadError{Source: "ventas_raw.xlsx", Err: errors.New("corrupt")}

		_, err := Ingest(ctx, &memoryStore{loadErr: loadErr}, batchTable())

		var readErr *invoice.ReadError
		assert.ErrorAs(t, err, &readErr)
	})

	t.Run("PersistFailureKeepsMergedHistory", func(t *testing.T) {
		store := &memoryStore{saveErr: errors.New("disk full")}
		table := batchTable([]string{"2024-01-02", "20", "B", "Beta"})

		result, err := Ingest(ctx, store, table)

		assert.NoError(t, err)
		assert.EqualError(t, result.PersistErr, "disk full")
		assert.Len(t, result.Records, 1)
	})
}

func TestIngest_RepeatedBatchThroughStoredHistory(t *testing.T) {
	ctx := context.Background()
	store := spreadsheet.NewStore(filepath.Join(t.TempDir(), "ventas_raw.xlsx"))
	table := batchTable(
		[]string{"2024-01-01", "100", "D1", "Acme"},
		[]string{"2024-01-02", "10.005", "D2", "Beta"},
	)

	for i, want := range []invoice.MergeStatus{invoice.StatusCreated, invoice.StatusNoNewData, invoice.StatusNoNewData} {
		result, err := Ingest(ctx, store, table)

		require.NoError(t, err, "run %d", i)
		require.NoError(t, result.PersistErr, "run %d", i)
		assert.Equal(t, want, result.Status, "run %d", i)
		assert.Len(t, result.Records, 2, "run %d", i)
	}

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "10.005", records[1].Amount.String())
}
