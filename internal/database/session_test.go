package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestWithSession_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := WithSession(context.Background(), db, zap.NewNop(), func(s *Session) error {
		_, err := s.Ext().ExecContext(context.Background(), "INSERT INTO users (username) VALUES ($1)", "alice")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("duplicate key")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnError(boom)
	mock.ExpectRollback()

	err := WithSession(context.Background(), db, zap.NewNop(), func(s *Session) error {
		_, err := s.Ext().ExecContext(context.Background(), "INSERT INTO users (username) VALUES ($1)", "alice")
		return err
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithSession(context.Background(), db, zap.NewNop(), func(s *Session) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithSession_ReportsCommitFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := WithSession(context.Background(), db, zap.NewNop(), func(s *Session) error {
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithReadOnlySession_NeverCommits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	var count int
	err := WithReadOnlySession(context.Background(), db, zap.NewNop(), func(s *Session) error {
		return sqlx.GetContext(context.Background(), s.Ext(), &count, "SELECT count(*) FROM users")
	})

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CloseAfterCommitIsNoop(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	s, err := Begin(context.Background(), db, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Commit())
	assert.NoError(t, s.Close())
	assert.ErrorIs(t, s.Commit(), ErrSessionClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchema_StopsOnFirstFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS categories").WillReturnError(errors.New("permission denied"))

	err := CreateSchema(context.Background(), db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}
