package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestDatabase_PingAndStats(t *testing.T) {
	db, mock := setupMockDB(t)
	d := &Database{DB: db}

	mock.ExpectPing()
	require.NoError(t, d.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, d.Ping(context.Background()))

	stats, err := d.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)

	mock.ExpectClose()
	require.NoError(t, d.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormFeeLedgerRepository_SaveWithLock_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormFeeLedgerRepository(db)

	ledger := newLedger(t, uuid.New(), uuid.New(), uuid.New(), testNow.AddDate(0, 0, 30))
	require.NoError(t, ledger.RecordPayment(decimal.NewFromInt(100), testNow))
	require.Equal(t, 2, ledger.Version)

	update := regexp.QuoteMeta(`UPDATE "fee_ledgers" SET`)

	t.Run("guards on center and previous version", func(t *testing.T) {
		mock.ExpectExec(update + `.*WHERE \(center_id = \$\d+ AND version = \$\d+\) AND "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveWithLock(context.Background(), ledger))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row is a concurrency conflict", func(t *testing.T) {
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), ledger)
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver errors pass through", func(t *testing.T) {
		mock.ExpectExec(update).WillReturnError(errors.New("deadlock detected"))

		err := repo.SaveWithLock(context.Background(), ledger)
		require.Error(t, err)
		assert.False(t, errors.Is(err, shared.ErrConcurrencyConflict))
	})
}
