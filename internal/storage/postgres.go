package storage

import (
	"context"

	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/storage/sqlconfig"
)

// PostgresStore keeps the history in the invoices table.
type PostgresStore struct {
	table sqlconfig.IInvoiceTable
}

var _ HistoryStore = (*PostgresStore)(nil)

func NewPostgresStore(table sqlconfig.IInvoiceTable) *PostgresStore {
	return &PostgresStore{table: table}
}

func (s *PostgresStore) Load(ctx context.Context) ([]invoice.Record, error) {
	rows, err := s.table.List(ctx)
	if err != nil {
		return nil, &invoice.ReadError{Source: "invoices table", Err: err}
	}

	records := make([]invoice.Record, len(rows))
	for i, row := range rows {
		records[i] = invoice.Record{
			IssueDate:   invoice.Day(row.IssueDate),
			Amount:      row.FinalAmount,
			AuxDocument: row.AuxDocument,
			Client:      row.ClientName,
		}
	}
	return records, nil
}

func (s *PostgresStore) Save(ctx context.Context, records []invoice.Record) error {
	rows := make([]*sqlconfig.InvoiceCreate, len(records))
	for i, r := range records {
		rows[i] = &sqlconfig.InvoiceCreate{
			IssueDate:   r.IssueDate,
			FinalAmount: r.Amount,
			AuxDocument: r.AuxDocument,
			ClientName:  r.Client,
		}
	}
	return s.table.ReplaceAll(ctx, rows)
}
