//go:build integration

package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/storage/sqlconfig"
)

// newMigratedDB starts postgres in a container and applies ./migrations.
func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("forecast"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "forecast", driver)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	return db
}

func TestPostgresStore_Integration(t *testing.T) {
	db := newMigratedDB(t)
	table := sqlconfig.NewInvoicesTable(db)
	store := NewPostgresStore(&table)
	ctx := context.Background()

	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	history := []invoice.Record{
		{IssueDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("10.50"), AuxDocument: "A", Client: "Acme"},
		{IssueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("20"), AuxDocument: "B", Client: "Beta"},
	}
	require.NoError(t, store.Save(ctx, history))

	records, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].AuxDocument)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("10.50")))
	assert.Equal(t, history[1].IssueDate, records[1].IssueDate)

	require.NoError(t, store.Save(ctx, history[1:]))
	records, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestPostgresStore_Integration_KeepsSubCentAmounts(t *testing.T) {
	db := newMigratedDB(t)
	table := sqlconfig.NewInvoicesTable(db)
	store := NewPostgresStore(&table)
	ctx := context.Background()

	history := []invoice.Record{
		{IssueDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("10.005"), AuxDocument: "D2", Client: "Beta"},
	}
	require.NoError(t, store.Save(ctx, history))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "10.005", records[0].Amount.String())
}
