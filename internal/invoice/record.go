package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column headers of the spreadsheet store and of uploaded batches.
const (
	ColumnIssueDate   = "Fecha Emisión"
	ColumnFinalAmount = "Importe Final"
	ColumnAuxDocument = "Doc. Auxiliar"
	ColumnClient      = "Razón Social"
)

// RequiredColumns lists the batch columns in their canonical order.
var RequiredColumns = []string{
	ColumnIssueDate,
	ColumnFinalAmount,
	ColumnAuxDocument,
	ColumnClient,
}

// Record is one invoice row. IssueDate is always UTC midnight.
type Record struct {
	IssueDate   time.Time
	Amount      decimal.Decimal
	AuxDocument string
	Client      string
}

// uniqueKey identifies a record for deduplication. Client is not part of it.
type uniqueKey struct {
	issueDate   string
	auxDocument string
	amount      string
}

// presenceKey identifies a record for the "already present" check.
type presenceKey struct {
	uniqueKey
	client string
}

func (r Record) uniqueKey() uniqueKey {
	return uniqueKey{
		issueDate:   r.IssueDate.Format(time.DateOnly),
		auxDocument: r.AuxDocument,
		amount:      r.Amount.String(),
	}
}

func (r Record) presenceKey() presenceKey {
	return presenceKey{uniqueKey: r.uniqueKey(), client: r.Client}
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
