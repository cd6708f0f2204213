package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/carson-networks/forecast-server/internal/config"
	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/storage/spreadsheet"
	"github.com/carson-networks/forecast-server/internal/storage/sqlconfig"
)

// HistoryStore persists the full invoice history.
//
// Load returns an empty history when nothing has been stored yet and an
// *invoice.ReadError when stored data cannot be parsed. Save replaces the
// stored history wholesale.
type HistoryStore interface {
	Load(ctx context.Context) ([]invoice.Record, error)
	Save(ctx context.Context, records []invoice.Record) error
}

type Storage struct {
	Backend string
	History HistoryStore
	DB      *sql.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	switch env.StoreBackend {
	case config.StorePostgres:
		db, err := sql.Open("postgres", env.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		table := sqlconfig.NewInvoicesTable(db)
		return &Storage{
			Backend: env.StoreBackend,
			History: NewPostgresStore(&table),
			DB:      db,
		}, nil
	default:
		return &Storage{
			Backend: env.StoreBackend,
			History: spreadsheet.NewStore(env.StorePath),
		}, nil
	}
}

func (s *Storage) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
