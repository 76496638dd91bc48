package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malusev998/xrate"
)

type (
	Dialect int

	sqlStorage struct {
		db          *sql.DB
		dialect     Dialect
		idGenerator IDGenerator
		tableName   string
	}
)

const (
	MySQLDialect Dialect = iota
	PostgresDialect
)

const insertColumns = "id, currency, base, rate, rate_date, created_at"

func (d Dialect) String() string {
	if d == PostgresDialect {
		return string(Postgres)
	}

	return string(MySQL)
}

func (d Dialect) bindVars(n int) string {
	vars := make([]string, 0, n)

	for i := 1; i <= n; i++ {
		if d == PostgresDialect {
			vars = append(vars, fmt.Sprintf("$%d", i))
		} else {
			vars = append(vars, "?")
		}
	}

	return strings.Join(vars, ",")
}

// idValue converts id into what the id column of the dialect accepts.
func (d Dialect) idValue(id uuid.UUID) interface{} {
	if d == PostgresDialect {
		return id.String()
	}

	return id[:]
}

func (d Dialect) migrations(table string) []string {
	if d == PostgresDialect {
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id UUID PRIMARY KEY,
	currency VARCHAR(16) NOT NULL,
	base VARCHAR(16) NOT NULL,
	rate DOUBLE PRECISION NOT NULL,
	rate_date DATE NOT NULL,
	created_at TIMESTAMP NOT NULL
);`, table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_currency_date ON %s(currency, rate_date);", table, table),
		}
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id BINARY(16) NOT NULL PRIMARY KEY,
	currency VARCHAR(16) NOT NULL,
	base VARCHAR(16) NOT NULL,
	rate DOUBLE NOT NULL,
	rate_date DATE NOT NULL,
	created_at DATETIME NOT NULL,
	INDEX idx_%s_currency_date(currency, rate_date)
);`, table, table),
	}
}

// NewSQLStorage stores rates into tableName through db. idGenerator may be
// nil, random UUIDs are used then.
func NewSQLStorage(db *sql.DB, dialect Dialect, idGenerator IDGenerator, tableName string) xrate.Storage {
	return sqlStorage{
		db:          db,
		dialect:     dialect,
		idGenerator: idGenerator,
		tableName:   tableName,
	}
}

func (s sqlStorage) insertQuery() string {
	return fmt.Sprintf("INSERT INTO %s(%s) VALUES (%s);", s.tableName, insertColumns, s.dialect.bindVars(6))
}

func (s sqlStorage) Store(ctx context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	tx, err := s.db.BeginTx(ctx, nil)

	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, s.insertQuery())

	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	defer stmt.Close()

	stored := make([]xrate.RateWithID, 0, len(rates))
	now := time.Now()

	for _, rate := range rates {
		id, err := nextID(s.idGenerator)

		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		if rate.CreatedAt.IsZero() {
			rate.CreatedAt = now
		}

		_, err = stmt.ExecContext(ctx, s.dialect.idValue(id), rate.Currency, rate.Base, rate.Value, rate.Date, rate.CreatedAt)

		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		stored = append(stored, xrate.RateWithID{Rate: rate, ID: id})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return stored, nil
}

func (s sqlStorage) Migrate(ctx context.Context) error {
	for _, query := range s.dialect.migrations(s.tableName) {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}

func (s sqlStorage) Drop(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.tableName))

	return err
}

func (s sqlStorage) Close(_ context.Context) error {
	return s.db.Close()
}

func (s sqlStorage) GetStorageProviderName() string {
	return s.dialect.String()
}
