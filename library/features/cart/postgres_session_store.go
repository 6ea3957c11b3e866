package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
)

const (
	cartTable       = "cart_sessions"
	colSessionID    = "session_id"
	colEntries      = "entries"
	colUpdatedAt    = "updated_at"
	dialectPostgres = "postgres"
)

const createCartTableSQL = `CREATE TABLE IF NOT EXISTS cart_sessions (
	session_id text PRIMARY KEY,
	entries jsonb NOT NULL,
	updated_at timestamptz NOT NULL
)`

// ErrCartMigrationFailed is returned when the cart_sessions table could not be created.
var ErrCartMigrationFailed = errors.New("cart_sessions table migration failed")

// PostgresSessionStore keeps each cart as one jsonb blob in the cart_sessions table.
type PostgresSessionStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresSessionStore creates a PostgresSessionStore on db.
func NewPostgresSessionStore(db *sqlx.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db: db, now: time.Now}
}

// Migrate creates the cart_sessions table if it does not exist yet.
func (s *PostgresSessionStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCartTableSQL); err != nil {
		return errors.Join(ErrCartMigrationFailed, err)
	}

	return nil
}

func (s *PostgresSessionStore) Load(ctx context.Context, sessionID string) (Entries, error) {
	query, args, err := goqu.Dialect(dialectPostgres).
		From(cartTable).
		Select(colEntries).
		Where(goqu.C(colSessionID).Eq(sessionID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, errors.Join(ErrLoadingCartFailed, err)
	}

	var blob []byte
	if err = s.db.GetContext(ctx, &blob, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entries{}, nil
		}

		return nil, errors.Join(ErrLoadingCartFailed, err)
	}

	entries := Entries{}
	if err = jsoniter.ConfigFastest.Unmarshal(blob, &entries); err != nil {
		return nil, errors.Join(ErrLoadingCartFailed, err)
	}

	return entries, nil
}

func (s *PostgresSessionStore) Save(ctx context.Context, sessionID string, entries Entries) error {
	if entries == nil {
		entries = Entries{}
	}

	blob, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(entries)
	if err != nil {
		return errors.Join(ErrSavingCartFailed, err)
	}

	query, args, err := buildUpsert(sessionID, blob, s.now())
	if err != nil {
		return errors.Join(ErrSavingCartFailed, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Join(ErrSavingCartFailed, err)
	}

	return nil
}

func buildUpsert(sessionID string, blob []byte, at time.Time) (string, []any, error) {
	return goqu.Dialect(dialectPostgres).
		Insert(cartTable).
		Rows(goqu.Record{
			colSessionID: sessionID,
			colEntries:   string(blob),
			colUpdatedAt: at.UTC(),
		}).
		OnConflict(goqu.DoUpdate(colSessionID, goqu.Record{
			colEntries:   goqu.L("EXCLUDED." + colEntries),
			colUpdatedAt: goqu.L("EXCLUDED." + colUpdatedAt),
		})).
		Prepared(true).
		ToSQL()
}
