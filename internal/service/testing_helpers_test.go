package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/forecast-server/internal/invoice"
)

type memoryStore struct {
	mu      sync.Mutex
	records []invoice.Record
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStore) Load(_ context.Context) ([]invoice.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]invoice.Record(nil), m.records...), nil
}

func (m *memoryStore) Save(_ context.Context, records []invoice.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = append([]invoice.Record(nil), records...)
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(date string, amount int64, aux, client string) invoice.Record {
	return invoice.Record{
		IssueDate:   day(date),
		Amount:      decimal.NewFromInt(amount),
		AuxDocument: aux,
		Client:      client,
	}
}

// dailyRecords returns one record per day from start for n days, each worth
// base plus the day index.
func dailyRecords(start string, n int, base int64) []invoice.Record {
	first := day(start)
	records := make([]invoice.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, invoice.Record{
			IssueDate:   first.AddDate(0, 0, i),
			Amount:      decimal.NewFromInt(base + int64(i%7)),
			AuxDocument: "A",
			Client:      "Acme",
		})
	}
	return records
}

func batchTable(rows ...[]string) *invoice.Table {
	return &invoice.Table{
		Columns: []string{
			invoice.ColumnIssueDate, invoice.ColumnFinalAmount,
			invoice.ColumnAuxDocument, invoice.ColumnClient,
		},
		Rows: rows,
	}
}
