//go:build integration

package migration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/finops/backend/internal/domain/finance"
	"github.com/finops/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	_ "github.com/lib/pq"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("finops_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestMigrator_Postgres(t *testing.T) {
	dsn := startPostgres(t)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	m, err := New(sqlDB, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(3), version)
	assert.False(t, dirty)

	// running again is a no-op
	require.NoError(t, m.Up())

	t.Run("repositories work against the migrated schema", func(t *testing.T) {
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
		require.NoError(t, err)
		repo := persistence.NewGormAccountPayableRepository(db)
		ctx := context.Background()

		due := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		ap, err := finance.NewAccountPayable("Acme Supplies", "AP-100", due, decimal.NewFromInt(750))
		require.NoError(t, err)
		ap.Recalculate(due.AddDate(0, 0, 10))
		require.NoError(t, repo.Save(ctx, ap))

		overdue, err := repo.FindOverdue(ctx, due.AddDate(0, 0, 10))
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.True(t, overdue[0].BalanceDue.Equal(decimal.NewFromInt(750)))
	})

	require.NoError(t, m.Down(1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	require.NoError(t, m.Down(0))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)

	require.NoError(t, m.Close())
}
