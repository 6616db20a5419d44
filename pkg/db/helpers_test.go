package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/db"
	"github.com/dmitrymomot/simplefw/pkg/sqlbuilder"
)

func TestExists(t *testing.T) {
	t.Parallel()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1").
		WithArgs("categories").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := db.Exists(context.Background(), sqlDB, sqlbuilder.Postgres, "categories")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	t.Run("commits", func(t *testing.T) {
		t.Parallel()

		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = db.WithTx(context.Background(), sqlDB, func(tx *sql.Tx) error {
			_, err := tx.Exec("DELETE FROM categories")
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()

		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = db.WithTx(context.Background(), sqlDB, func(*sql.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		t.Parallel()

		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		require.Panics(t, func() {
			_ = db.WithTx(context.Background(), sqlDB, func(*sql.Tx) error { panic("boom") })
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, db.Healthcheck(nil)(context.Background()), db.ErrHealthcheckFailed)

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectPing()
	require.NoError(t, db.Healthcheck(sqlDB)(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	require.ErrorIs(t, db.Healthcheck(sqlDB)(context.Background()), db.ErrHealthcheckFailed)
}
