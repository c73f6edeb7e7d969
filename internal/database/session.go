package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrSessionClosed = errors.New("session already closed")

// Session is a unit of work: one transaction spanning a single command's
// reads and writes. Close must be called on every exit path; it rolls back
// unless Commit succeeded first.
type Session struct {
	tx     *sqlx.Tx
	logger *zap.Logger
	closed bool
}

// Begin opens a read-write session
func Begin(ctx context.Context, db *sqlx.DB, logger *zap.Logger) (*Session, error) {
	return begin(ctx, db, logger, nil)
}

// BeginReadOnly opens a session that rejects writes
func BeginReadOnly(ctx context.Context, db *sqlx.DB, logger *zap.Logger) (*Session, error) {
	return begin(ctx, db, logger, &sql.TxOptions{ReadOnly: true})
}

func begin(ctx context.Context, db *sqlx.DB, logger *zap.Logger, opts *sql.TxOptions) (*Session, error) {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Session{tx: tx, logger: logger}, nil
}

// Ext exposes the transaction to repositories
func (s *Session) Ext() sqlx.ExtContext {
	return s.tx
}

// Commit makes the session's writes durable and closes it
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true

	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close rolls back any uncommitted work. It is safe to call after Commit.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.Error("Failed to roll back transaction", zap.Error(err))
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	s.logger.Debug("Transaction rolled back")
	return nil
}

// WithSession runs fn inside a read-write session, committing when fn
// returns nil and rolling back otherwise.
func WithSession(ctx context.Context, db *sqlx.DB, logger *zap.Logger, fn func(*Session) error) error {
	s, err := Begin(ctx, db, logger)
	if err != nil {
		return err
	}
	return run(s, fn, true)
}

// WithReadOnlySession runs fn inside a read-only session
func WithReadOnlySession(ctx context.Context, db *sqlx.DB, logger *zap.Logger, fn func(*Session) error) error {
	s, err := BeginReadOnly(ctx, db, logger)
	if err != nil {
		return err
	}
	return run(s, fn, false)
}

func run(s *Session, fn func(*Session) error, commit bool) (err error) {
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = fn(s); err != nil {
		return err
	}
	if commit {
		return s.Commit()
	}
	return nil
}
