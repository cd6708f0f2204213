package sqlconfig

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const invoicesTableName = "invoices"

// Invoice represents an invoices row.
type Invoice struct {
	Position    int64           `db:"position"`
	IssueDate   time.Time       `db:"issue_date"`
	FinalAmount decimal.Decimal `db:"final_amount"`
	AuxDocument string          `db:"aux_document"`
	ClientName  string          `db:"client_name"`
}

// InvoiceCreate is the input for writing an invoice row.
type InvoiceCreate struct {
	IssueDate   time.Time
	FinalAmount decimal.Decimal
	AuxDocument string
	ClientName  string
}

// IInvoiceTable defines the storage operations on the invoices table.
//
//go:generate mockery --name IInvoiceTable --output mock_IInvoiceTable.go
type IInvoiceTable interface {
	// List returns every row in stored order.
	List(ctx context.Context) ([]*Invoice, error)
	// ReplaceAll swaps the table contents for rows in one transaction.
	ReplaceAll(ctx context.Context, rows []*InvoiceCreate) error
}
