package sqlconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

// Rows per INSERT statement; keeps bind parameters well under the postgres limit.
const insertChunk = 500

var _ IInvoiceTable = (*InvoicesTable)(nil)

type InvoicesTable struct {
	db bob.DB
}

func NewInvoicesTable(db *sql.DB) InvoicesTable {
	return InvoicesTable{db: bob.NewDB(db)}
}

// List returns all invoices ordered by position.
func (t *InvoicesTable) List(ctx context.Context) ([]*Invoice, error) {
	query := psql.Select(
		sm.Columns("position", "issue_date", "final_amount", "aux_document", "client_name"),
		sm.From(invoicesTableName),
		sm.OrderBy("position").Asc(),
	)
	return bob.All(ctx, t.db, query, scan.StructMapper[*Invoice]())
}

// ReplaceAll deletes every row and inserts rows, numbering positions from zero.
func (t *InvoicesTable) ReplaceAll(ctx context.Context, rows []*InvoiceCreate) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if _, err := psql.Delete(dm.From(invoicesTableName)).Exec(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("delete invoices: %w", err)
	}

	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		queryMods := []bob.Mod[*dialect.InsertQuery]{
			im.Into(invoicesTableName, "position", "issue_date", "final_amount", "aux_document", "client_name"),
		}
		for i := start; i < end; i++ {
			row := rows[i]
			queryMods = append(queryMods, im.Values(psql.Arg(
				i, row.IssueDate, row.FinalAmount, row.AuxDocument, row.ClientName,
			)))
		}
		if _, err := psql.Insert(queryMods...).Exec(ctx, tx); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("insert invoices: %w", err)
		}
	}

	return tx.Commit(ctx)
}
