package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const sqlStateSerializationFailure = "40001"

// isSerializationFailure detects SQLSTATE 40001 for both pgx and lib/pq errors.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateSerializationFailure
	}

	return false
}

// stdRows wraps sql.Rows to implement DBRows.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps sql.Result to implement DBResult.
type stdResult struct {
	result sql.Result
}

func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// beginner is satisfied by *sql.DB and *sqlx.DB.
type beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

func execSerializableStd(ctx context.Context, db beginner, query string) (DBResult, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()

		return nil, wrapSerializationFailure(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, wrapSerializationFailure(err)
	}

	return &stdResult{result: result}, nil
}

func wrapSerializationFailure(err error) error {
	if isSerializationFailure(err) {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}
