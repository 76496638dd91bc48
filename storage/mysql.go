package storage

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/malusev998/xrate"
)

func NewMySQLStorage(ctx context.Context, config MySQLConfig) (xrate.Storage, error) {
	return openSQLStorage(ctx, "mysql", MySQLDialect, config.ConnectionString, config.TableName, config.IDGenerator)
}

func openSQLStorage(
	ctx context.Context,
	driver string,
	dialect Dialect,
	connectionString string,
	tableName string,
	idGenerator IDGenerator,
) (xrate.Storage, error) {
	db, err := sql.Open(driver, connectionString)

	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLStorage(db, dialect, idGenerator, tableName), nil
}
